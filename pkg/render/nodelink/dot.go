package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphslick/pkg/collapse"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Title is drawn above the graph when set.
	Title string
	// Tooltips attaches each node's full member text as a tooltip.
	Tooltips bool
}

// ToDOT converts a collapsed graph to Graphviz DOT format. Nodes are named
// n<id> after their slot, and unassigned slots are kept as invisible points.
func ToDOT(g *collapse.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Courier\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=\"%s\";\n  labelloc=t;\n", escape(opts.Title))
	}
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(n.ID), strings.Join(fmtAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeName(e.From), nodeName(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeName(id int) string { return "n" + strconv.Itoa(id) }

// fmtLabel left-justifies every line of text.
func fmtLabel(text string) string {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return ""
	}
	return strings.ReplaceAll(escape(text), "\n", `\l`) + `\l`
}

// escape quotes text for a DOT string literal without touching newlines.
func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}

func fmtAttrs(n collapse.Node, opts Options) []string {
	if n.Empty() {
		return []string{"shape=point", "style=invis"}
	}
	attrs := []string{fmt.Sprintf("label=\"%s\"", fmtLabel(n.Text))}
	if opts.Tooltips && n.Hint != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=\"%s\"", strings.ReplaceAll(escape(n.Hint), "\n", `&#10;`)))
	}
	if n.Synthetic {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with the embedded Graphviz and returns the
// SVG document. The root element is sized in pixels from its viewBox; use
// [render.ToPDF] or [render.ToPNG] for other formats.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return fitViewBox(buf.Bytes()), nil
}

var (
	svgTagRe   = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe  = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
	sizeAttrRe = regexp.MustCompile(`\s(?:width|height|viewBox)="[^"]*"`)
)

// fitViewBox moves the viewBox origin to 0,0 and replaces Graphviz's point
// sizes with pixel sizes. Other attributes of the root element, such as the
// xlink namespace used by tooltips, are kept.
func fitViewBox(svg []byte) []byte {
	tag := svgTagRe.Find(svg)
	if tag == nil {
		return svg
	}
	m := viewBoxRe.FindSubmatch(tag)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	fitted := sizeAttrRe.ReplaceAll(tag, nil)
	fitted = append(fitted[:len(fitted)-1],
		fmt.Sprintf(` viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)...)
	return bytes.Replace(svg, tag, fitted, 1)
}
