// Package box defines the box tree consumed by the layout engine.
//
// A box tree is a hierarchy of [Node] values. Each node carries CSS-like
// [Styles] (flex direction, wrapping, alignment, overflow, sizing policy,
// margins, padding, spacing, shrink factor and text handling) and, after a
// layout pass, the computed geometry the paint step reads back.
//
// # Node Kinds
//
// Nodes are a closed set of kinds dispatched by the engine:
//
//   - [Container]: lays out its children along the main axis
//   - [Text]: a leaf whose natural size comes from text measurement
//   - [Image]: a leaf whose natural size comes from the image header
//   - [Button]: a pass-through wrapper that takes the size of its only child
//
// # Geometry
//
// Every node exposes four geometry values:
//
//   - NaturalSize: intrinsic size derived from content or children
//   - RequestedSize: the sizing policy converted to pixels, per axis optional
//   - EffectiveSize: requested if present, else natural
//   - Position and Size: the final allocated box
//
// Percentages in a sizing policy stay pending (a zero-valued [Percent]
// dimension) until the parent resolves them against its allocated size.
//
// # Dimensions
//
// [Dimension] values pair a number with a [Unit]. They parse from CSS-like
// strings:
//
//	d, err := box.ParseDimension("50%")   // {50 Percent}
//	d, err := box.ParseDimension("2rem")  // {2 Rem}
//	d, err := box.ParseDimension("12")    // {12 Px}
//
// Styles, edges and dimensions implement [encoding.TextUnmarshaler] so box
// trees decode from JSON and TOML documents without extra glue.
package box
