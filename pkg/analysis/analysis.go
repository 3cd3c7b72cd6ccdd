package analysis

import "github.com/matzehuels/graphslick/pkg/flowchart"

// Analyzer proposes a partition of a flowchart.
type Analyzer interface {
	Analyze(fc *flowchart.Flowchart) ([][][]int, error)
}

// SimilarityFinder proposes groups of similar blocks among nids. An empty
// nids considers every block.
type SimilarityFinder interface {
	FindSimilar(fc *flowchart.Flowchart, nids []int) ([][]int, error)
}
