// Package nodelink renders box trees as node-link diagrams.
//
// # Overview
//
// Where the sink package draws boxes where the layout put them, this package
// draws the tree itself: one Graphviz node per box and one arrow per
// parent-child link. It is a debugging view for deep or generated documents
// where the nesting is hard to see in the rendered page.
//
// # Usage
//
// Convert a snapshot to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(snapshot, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The pipeline exposes the SVG as the "tree" format.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is needed.
package nodelink
