// Package flowchart models the control-flow graph of a single function.
//
// # Overview
//
// A [Flowchart] is an ordered list of basic blocks. The index of a block is
// its node id (nid), the id space used by partitions in
// [github.com/matzehuels/graphslick/pkg/groupman]. Each block has a half-open
// address range, an ordered list of successor indices and the disassembly
// text shown when the block is rendered.
//
// Successor order is significant: the collapsed-graph builder assigns group
// ids in discovery order while walking blocks and their successors, so the
// flowchart keeps successors exactly as given instead of delegating storage
// to a graph library.
//
// # JSON Format
//
//	{
//	  "name": "sub_401000",
//	  "start": 4198400,
//	  "blocks": [
//	    {"start": 4198400, "end": 4198416, "succs": [1, 2], "text": "push ebp\n..."},
//	    {"start": 4198416, "end": 4198432},
//	    {"start": 4198432, "end": 4198440}
//	  ]
//	}
//
// Use [ImportJSON] or [ReadJSON] to load a flowchart and [ExportJSON] or
// [WriteJSON] to save one. Successors must be valid block indices and a
// block's end may not precede its start.
//
// # Graph View
//
// [Flowchart.Directed] returns a gonum directed graph over the same node ids
// for use with gonum algorithms such as dominator trees. Self loops are not
// representable in a gonum simple graph and are left out of that view; use
// [Flowchart.Succ] when they matter.
package flowchart
