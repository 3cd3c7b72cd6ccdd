// Package nodelink renders collapsed flowchart graphs as node-link diagrams.
//
// # Overview
//
// Every node of a [collapse.Graph] becomes a box holding its label, and
// every edge an arrow. Labels are left-justified so disassembly lines stay
// aligned.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Title: fc.Name})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, convert the SVG:
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Styling
//
// Nodes whose super group was synthesized by the sanitizer are drawn with a
// dashed outline and grey fill, so filler groups stand out from loaded
// structure. Node group slots that were never assigned are emitted as
// invisible points to keep node ids aligned with slot indices.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [collapse.Graph]: github.com/matzehuels/graphslick/pkg/collapse.Graph
package nodelink
