// Package render provides output rendering for collapsed flowchart graphs.
//
// # Overview
//
// This package holds the format conversion shared by the renderers:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Node-link diagrams of collapsed graphs (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/graphslick/pkg/render/nodelink
package render
