package analysis

import (
	"slices"

	"gonum.org/v1/gonum/graph/flow"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/graphslick/pkg/flowchart"
)

// LoopAnalyzer groups blocks by natural loop. A back edge n -> h, where h
// dominates n, defines the loop headed by h; loops sharing a header are
// merged. Every block is assigned to the innermost loop containing it.
//
// The result holds a single super group with one node group per loop,
// ordered by header. Blocks outside any loop are left out, and an acyclic
// flowchart yields nil.
type LoopAnalyzer struct{}

// Loop is a natural loop.
type Loop struct {
	Header int
	Body   []int // Every block of the loop in ascending order, header included
}

// Analyze implements [Analyzer].
func (LoopAnalyzer) Analyze(fc *flowchart.Flowchart) ([][][]int, error) {
	loops := Loops(fc)
	if len(loops) == 0 {
		return nil, nil
	}

	owner := make(map[int]int) // nid -> index into loops
	for i, l := range loops {
		for _, n := range l.Body {
			if j, ok := owner[n]; !ok || len(l.Body) < len(loops[j].Body) {
				owner[n] = i
			}
		}
	}

	groups := make([][]int, len(loops))
	for n := 0; n < fc.Size(); n++ {
		if i, ok := owner[n]; ok {
			groups[i] = append(groups[i], n)
		}
	}
	return [][][]int{groups}, nil
}

// Loops returns the natural loops of fc ordered by header. Blocks that are
// not reachable from the entry block never belong to a loop.
func Loops(fc *flowchart.Flowchart) []Loop {
	if fc.Size() == 0 {
		return nil
	}
	entry, ok := fc.BlockAt(fc.Start)
	if !ok {
		entry = 0
	}
	reach := reachable(fc, entry)
	dt := flow.Dominators(simple.Node(entry), fc.Directed())

	dominates := func(h, n int) bool {
		for {
			if n == h {
				return true
			}
			d := dt.DominatorOf(int64(n))
			if d == nil {
				return false
			}
			n = int(d.ID())
		}
	}

	bodies := make(map[int]map[int]bool)
	for n := 0; n < fc.Size(); n++ {
		if !reach[n] {
			continue
		}
		for i := 0; i < fc.NSucc(n); i++ {
			h := fc.Succ(n, i)
			if !dominates(h, n) {
				continue
			}
			body := bodies[h]
			if body == nil {
				body = map[int]bool{h: true}
				bodies[h] = body
			}
			collect(fc, reach, body, n)
		}
	}

	loops := make([]Loop, 0, len(bodies))
	for h, body := range bodies {
		l := Loop{Header: h}
		for n := range body {
			l.Body = append(l.Body, n)
		}
		slices.Sort(l.Body)
		loops = append(loops, l)
	}
	slices.SortFunc(loops, func(a, b Loop) int { return a.Header - b.Header })
	return loops
}

// collect adds the latch n and every reachable block that reaches it
// backwards without passing an existing body member.
func collect(fc *flowchart.Flowchart, reach []bool, body map[int]bool, n int) {
	stack := []int{n}
	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if body[x] || !reach[x] {
			continue
		}
		body[x] = true
		stack = append(stack, fc.Preds(x)...)
	}
}

func reachable(fc *flowchart.Flowchart, entry int) []bool {
	seen := make([]bool, fc.Size())
	stack := []int{entry}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		for i := 0; i < fc.NSucc(n); i++ {
			stack = append(stack, fc.Succ(n, i))
		}
	}
	return seen
}
