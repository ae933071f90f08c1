package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
)

// Options configures box-tree diagram rendering.
type Options struct {
	// Detailed adds the computed geometry to node labels.
	// When false, only the node ID and kind are shown.
	Detailed bool
}

// ToDOT converts a snapshot to Graphviz DOT format, one node per box and
// one edge per parent-child link. The resulting DOT string can be rendered
// using [RenderSVG].
//
// Containers that clip their children get a dashed outline; nodes with an
// overflowing axis are filled light yellow.
func ToDOT(s *document.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for _, g := range s.Nodes {
		attrs := fmtAttrs(g, fmtLabel(g, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", g.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, g := range s.Nodes {
		if g.Parent != "" {
			fmt.Fprintf(&buf, "  %q -> %q;\n", g.Parent, g.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g document.Geometry, detailed bool) string {
	head := fmt.Sprintf("%s (%s)", g.ID, g.Kind)
	if !detailed {
		return head
	}

	parts := []string{
		fmt.Sprintf("at %s,%s", num(g.Position.X), num(g.Position.Y)),
		fmt.Sprintf("size %sx%s", num(g.Size.Width), num(g.Size.Height)),
		fmt.Sprintf("natural %sx%s", num(g.Natural.Width), num(g.Natural.Height)),
	}
	if len(g.Lines) > 0 {
		parts = append(parts, fmt.Sprintf("lines: %d", len(g.Lines)))
	}
	if sb := g.Scrollbar; sb != nil {
		parts = append(parts, fmt.Sprintf("scroll %s,%s", num(sb.CurrentScrollPosition.X), num(sb.CurrentScrollPosition.Y)))
	}
	return head + "\n" + strings.Join(parts, "\n")
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtAttrs(g document.Geometry, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	style := []string{"rounded", "filled"}
	switch g.Kind {
	case box.Text:
		attrs = append(attrs, "shape=note")
		style = []string{"filled"}
	case box.Image:
		attrs = append(attrs, "shape=component")
		style = []string{"filled"}
	case box.Button:
		style = append(style, "bold")
	}
	if g.Clips {
		style = append(style, "dashed")
	}
	if g.Scrollbar != nil && g.Scrollbar.Overflowing() {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	if g.Kind != box.Container || len(style) != 2 {
		attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(style, ",")))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Graphviz runs in process through its WebAssembly build.
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
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element, whose pt units and
// transform break scaling, with a plain pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
