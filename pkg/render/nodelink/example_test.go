package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/graphslick/pkg/collapse"
	"github.com/matzehuels/graphslick/pkg/flowchart"
	"github.com/matzehuels/graphslick/pkg/render/nodelink"
)

func ExampleToDOT() {
	fc, _ := flowchart.New("sub_10", 0, []flowchart.Block{
		{Start: 0x10, End: 0x20, Succs: []int{1}, Text: "push ebp\n"},
		{Start: 0x20, End: 0x30, Text: "ret\n"},
	})
	g := collapse.Single(fc, flowchart.NewTextRenderer(fc), collapse.Options{})

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontname="Courier", fontsize=12, margin="0.2,0.1"];
	//   ranksep=0.4;
	//   nodesep=0.3;
	//
	//   n0 [label="push ebp\l"];
	//   n1 [label="ret\l"];
	//
	//   n0 -> n1;
	// }
}
