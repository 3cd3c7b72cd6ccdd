package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphslick/pkg/collapse"
	"github.com/matzehuels/graphslick/pkg/render"
	"github.com/matzehuels/graphslick/pkg/render/nodelink"
)

// DOT converts g to Graphviz source. The flowchart name is used as title
// unless opts.Title is set.
func DOT(g *collapse.Graph, name string, opts Options) string {
	title := opts.Title
	if title == "" {
		title = name
	}
	return nodelink.ToDOT(g, nodelink.Options{Title: title, Tooltips: opts.Tooltips})
}

// Render produces one artifact per requested format from dot. The SVG is
// laid out at most once and PDF and PNG are converted from it.
func Render(ctx context.Context, dot string, formats []string, scale float64) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	var svg []byte
	for _, format := range formats {
		if format == FormatDOT {
			artifacts[format] = []byte(dot)
			continue
		}
		if svg == nil {
			var err error
			if svg, err = nodelink.RenderSVG(ctx, dot); err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
		}
		data, err := convert(svg, format, scale)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func convert(svg []byte, format string, scale float64) ([]byte, error) {
	switch format {
	case FormatPDF:
		return render.ToPDF(svg)
	case FormatPNG:
		return render.ToPNG(svg, scale)
	default:
		return svg, nil
	}
}
