// Package sink writes laid-out box geometry in output formats.
//
// # Supported Formats
//
//   - SVG: [RenderSVG], vector output with optional embedded fonts
//   - PNG: [RenderPNG], rasterized with fogleman/gg, no external tools
//   - PDF: [RenderPDF], the SVG converted by rsvg-convert
//   - JSON: [RenderJSON], the geometry snapshot itself
//
// # Styles
//
// A [Style] decides how boxes are painted:
//
//   - [Painted] uses the colors and borders from the document
//   - [Wireframe] outlines every box in a color per tree depth and ignores
//     document colors, which makes layout problems easy to spot
//
// # Drawing Model
//
// Boxes are drawn in pre-order so parents paint below their children.
// Children of a node whose overflow is not visible are clipped to its box,
// including any clip inherited from further up. Overflowing containers get
// scrollbar tracks along their bottom and right edges, drawn above their
// content.
//
// Images are not part of a snapshot; pass their bytes with [WithImages] or
// [WithPNGImages]. Image boxes without data are drawn as placeholders.
package sink
