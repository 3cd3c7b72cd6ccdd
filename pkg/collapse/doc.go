// Package collapse builds the graphs that are actually drawn for a function:
// either the flowchart itself, or a collapsed graph in which every node group
// of a partition becomes a single node.
//
// # Modes
//
// [Single] produces one node per block and one edge per flowchart edge.
//
// [Combined] walks blocks 0..n-1 and, for each block and each of its
// successors in order, resolves the owning node group through the
// partition's location index. Groups receive dense ids in the order they are
// first seen. Edges between blocks of the same group disappear; every other
// flowchart edge becomes one collapsed edge, so parallel edges are kept.
//
// The collapsed graph has one slot per node group of the path forest. When
// the partition covers more than the flowchart, some slots are never
// assigned; they stay empty and isolated, and [Graph.Used] is smaller than
// [Graph.NodeCount].
//
// # Labels
//
// A collapsed node with more than one member is labelled with its super
// group's display name when one is set. Otherwise the label is the rendered
// text of its members, concatenated. [Options.IDsOnly] replaces labels with
// the comma-separated member ids. Each node also keeps the full member text
// as a hint.
//
// # Errors
//
// [Combined] fails with [ErrUnresolvedNode] if a block has no group. Run
// [groupman.Sanitize] and [groupman.Manager.InitializeLookups] first.
package collapse
