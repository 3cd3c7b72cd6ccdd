package flowchart

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/graphslick/pkg/errors"
)

// Block is one basic block.
type Block struct {
	Start uint64 // First address
	End   uint64 // One past the last address
	Succs []int  // Successor block indices, in order
	Text  string // Disassembly shown when rendering
}

// Flowchart is the control-flow graph of one function.
type Flowchart struct {
	Name   string
	Start  uint64
	Blocks []Block

	byStart map[uint64]int
}

// New creates a flowchart over blocks and validates it. If start is zero the
// start of the first block is used.
func New(name string, start uint64, blocks []Block) (*Flowchart, error) {
	if start == 0 && len(blocks) > 0 {
		start = blocks[0].Start
	}
	fc := &Flowchart{Name: name, Start: start, Blocks: blocks}
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	fc.index()
	return fc, nil
}

// Validate checks that every successor is a block index and that no block
// ends before it starts.
func (fc *Flowchart) Validate() error {
	for n, b := range fc.Blocks {
		if b.End < b.Start {
			return errors.New(errors.ErrCodeInvalidInput, "block %d: end %#x before start %#x", n, b.End, b.Start)
		}
		for _, s := range b.Succs {
			if s < 0 || s >= len(fc.Blocks) {
				return errors.New(errors.ErrCodeInvalidInput, "block %d: successor %d out of range", n, s)
			}
		}
	}
	return nil
}

func (fc *Flowchart) index() {
	fc.byStart = make(map[uint64]int, len(fc.Blocks))
	for n, b := range fc.Blocks {
		if _, ok := fc.byStart[b.Start]; !ok {
			fc.byStart[b.Start] = n
		}
	}
}

// Size returns the number of blocks.
func (fc *Flowchart) Size() int { return len(fc.Blocks) }

// NSucc returns the number of successors of block n.
func (fc *Flowchart) NSucc(n int) int { return len(fc.Blocks[n].Succs) }

// Succ returns the i-th successor of block n.
func (fc *Flowchart) Succ(n, i int) int { return fc.Blocks[n].Succs[i] }

// Bounds returns the address range of block n.
func (fc *Flowchart) Bounds(n int) (start, end uint64) {
	b := fc.Blocks[n]
	return b.Start, b.End
}

// BlockAt returns the index of the block starting at addr.
func (fc *Flowchart) BlockAt(addr uint64) (int, bool) {
	if fc.byStart == nil {
		fc.index()
	}
	n, ok := fc.byStart[addr]
	return n, ok
}

// Preds returns the predecessors of block n in ascending order. A block
// listed twice as successor of the same predecessor appears once.
func (fc *Flowchart) Preds(n int) []int {
	var preds []int
	for p, b := range fc.Blocks {
		if slices.Contains(b.Succs, n) {
			preds = append(preds, p)
		}
	}
	return preds
}

// EdgeCount returns the number of successor entries across all blocks.
func (fc *Flowchart) EdgeCount() int {
	n := 0
	for _, b := range fc.Blocks {
		n += len(b.Succs)
	}
	return n
}

// Directed returns a gonum view of the flowchart with one node per block,
// identified by its index. Self loops and repeated edges are dropped.
func (fc *Flowchart) Directed() *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for n := range fc.Blocks {
		g.AddNode(simple.Node(n))
	}
	for n, b := range fc.Blocks {
		for _, s := range b.Succs {
			if s == n {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(n), simple.Node(s)))
		}
	}
	return g
}

// String returns a short description such as "sub_401000 (12 blocks)".
func (fc *Flowchart) String() string {
	name := fc.Name
	if name == "" {
		name = fmt.Sprintf("sub_%x", fc.Start)
	}
	return fmt.Sprintf("%s (%d blocks)", name, len(fc.Blocks))
}
