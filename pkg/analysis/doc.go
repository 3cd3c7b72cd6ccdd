// Package analysis computes partitions and similarity suggestions for a
// flowchart.
//
// An [Analyzer] proposes a partition, nested as super group -> node group ->
// nid, which groupman.SeedPath turns into a path forest. [LoopAnalyzer]
// groups the blocks of each natural loop.
//
// A [SimilarityFinder] proposes groups of blocks that look alike, which
// groupman.SeedSimilar stores in the similar forest. [FingerprintFinder]
// groups blocks whose text is identical once literal values are masked.
package analysis
