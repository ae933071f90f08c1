// Package render turns laid-out box geometry into images and diagrams.
//
// # Overview
//
// Renderers consume a [document.Snapshot], the recorded geometry of a laid
// out tree, so a cached layout can be rendered without running the engine
// again:
//
//   - [sink]: SVG, PNG, PDF and JSON output of the boxes themselves
//   - [nodelink]: a Graphviz diagram of the box tree (parent to child)
//
// # Format Conversion
//
// [ToPDF] converts any SVG with the external rsvg-convert tool (from
// librsvg). PNG output is rasterized natively by [sink.RenderPNG].
//
//	svg := sink.RenderSVG(snapshot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// # Colors
//
// Styles carry CSS hex colors. [ParseColor] converts them for both the
// vector and the raster sinks.
//
// [document.Snapshot]: github.com/matzehuels/boxflow/pkg/document.Snapshot
// [sink]: github.com/matzehuels/boxflow/pkg/render/sink
// [sink.RenderPNG]: github.com/matzehuels/boxflow/pkg/render/sink.RenderPNG
// [nodelink]: github.com/matzehuels/boxflow/pkg/render/nodelink
package render
