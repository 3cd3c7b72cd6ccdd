package collapse

import "github.com/matzehuels/graphslick/pkg/groupman"

// CFG is the flowchart view needed to build a graph. Block indices are nids.
type CFG interface {
	Size() int
	NSucc(n int) int
	Succ(n, i int) int
	Bounds(n int) (start, end uint64)
}

// Renderer produces the display text of an address range.
type Renderer interface {
	Render(start, end uint64) string
}

// RendererFunc adapts a function to [Renderer].
type RendererFunc func(start, end uint64) string

// Render calls f.
func (f RendererFunc) Render(start, end uint64) string { return f(start, end) }

// Options controls labelling.
type Options struct {
	// ShowIDs prefixes single-mode labels with "ID(n)".
	ShowIDs bool
	// IDsOnly labels combined nodes with their member ids only.
	IDsOnly bool
}

// Node is one node of a built graph.
type Node struct {
	ID        int
	Text      string // Label
	Hint      string // Rendered text of every member
	Members   []int  // Member nids in group order
	Group     string // Display name of the owning super group
	Synthetic bool   // Owning super group was created by Sanitize
}

// Empty reports whether the slot was never assigned.
func (n Node) Empty() bool { return len(n.Members) == 0 }

// Edge connects two node ids.
type Edge struct {
	From, To int
}

// Graph is a built graph. Node ids index [Graph.Nodes].
type Graph struct {
	nodes  []Node
	edges  []Edge
	used   int
	groups map[groupman.GroupRef]int
}

func newGraph(slots int) *Graph {
	g := &Graph{
		nodes:  make([]Node, slots),
		groups: make(map[groupman.GroupRef]int),
	}
	for i := range g.nodes {
		g.nodes[i].ID = i
	}
	return g
}

// NodeCount returns the number of node slots.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, parallel edges included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Used returns the number of slots that were assigned a node.
func (g *Graph) Used() int { return g.used }

// Nodes returns every slot in id order.
func (g *Graph) Nodes() []Node { return g.nodes }

// Node returns the node with the given id.
func (g *Graph) Node(id int) (Node, bool) {
	if id < 0 || id >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Edges returns the edges in creation order.
func (g *Graph) Edges() []Edge { return g.edges }

// GroupID returns the node id assigned to a node group by [Combined].
func (g *Graph) GroupID(ref groupman.GroupRef) (int, bool) {
	id, ok := g.groups[ref]
	return id, ok
}

// OutDegree returns the number of edges leaving id.
func (g *Graph) OutDegree(id int) int {
	n := 0
	for _, e := range g.edges {
		if e.From == id {
			n++
		}
	}
	return n
}

func (g *Graph) addEdge(from, to int) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}
