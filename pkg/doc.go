// Package pkg provides the core libraries for graphslick.
//
// # Overview
//
// Graphslick collapses the control flow graph of a function into a smaller
// graph whose nodes are groups of basic blocks. The grouping is a two-level
// partition: super groups hold node groups, and node groups hold blocks. A
// partition is kept in two forests. The path forest partitions the blocks and
// drives the collapsed graph; the similar forest records sets of look-alike
// blocks and is carried along untouched.
//
// # Architecture
//
// The typical data flow:
//
//	flowchart JSON + bbgroup partition
//	         ↓
//	    [flowchart] + [bbgroup] packages (load)
//	         ↓
//	    [groupman] package (sanitize, merge, split, promote)
//	         ↓
//	    [collapse] package (collapsed graph)
//	         ↓
//	    [render/nodelink] package (DOT, SVG) → [render] (PDF, PNG)
//
// # Quick Start
//
//	fc, _ := flowchart.ImportJSON("sub_401000.json")
//	m, _ := bbgroup.Import("sub_401000.bbgroup")
//
//	// Every block must belong to exactly one path node group.
//	groupman.Sanitize(m, fc)
//	m.InitializeLookups()
//
//	g, _ := collapse.Combined(fc, m, flowchart.NewTextRenderer(fc), collapse.Options{})
//	dot := nodelink.ToDOT(g, nodelink.Options{Title: fc.Name})
//	svg, _ := nodelink.RenderSVG(ctx, dot)
//
// # Main Packages
//
// [groupman] - The partition model. Handles are generation-checked arena
// indices, so a handle to a removed super group never resolves again. Lookups
// by block id and by address are served from an index that is rebuilt on
// demand with [groupman.Manager.InitializeLookups].
//
// [bbgroup] - The line-oriented bbgroup text format. Reading is lenient and
// skips malformed fragments; writing validates field values first.
//
// [flowchart] - Basic blocks with address ranges and successor lists, read
// from JSON.
//
// [collapse] - Builds the collapsed graph in single (one node per block) or
// combined (one node per node group) mode.
//
// [analysis] - Derives partitions from the flowchart: natural loops become
// node groups, and blocks with identical normalized text become similar sets.
//
// [render/nodelink] - DOT generation and SVG rendering using Graphviz.
//
// [render] - SVG to PDF/PNG conversion.
//
// [pipeline] - The load → build → render sequence shared by every command,
// with artifact caching and observability hooks.
//
// [cache] - File and null caches for rendered artifacts.
//
// [errors] - Coded errors and field validation.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/groupman/... # Specific package
//	go test -run Example       # Examples only
//
// [groupman]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/groupman
// [bbgroup]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/bbgroup
// [flowchart]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/flowchart
// [collapse]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/collapse
// [analysis]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/analysis
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphslick/pkg/errors
package pkg
