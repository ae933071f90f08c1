// Package document reads and writes box-tree documents and geometry
// snapshots.
//
// # Overview
//
// A document is the plain data form of a layout tree: a viewport, an
// optional rem base and a root node. Nodes carry their kind, styles and
// content. Documents are written by hand or by tools and turned into a
// [box.Node] tree with [Document.Build].
//
// # JSON Format
//
//	{
//	  "viewport": {"width": 800, "height": 600},
//	  "root_font_size": 16,
//	  "root": {
//	    "id": "page",
//	    "styles": {"flex_direction": "row", "padding": "8px 16px"},
//	    "children": [
//	      {"kind": "text", "text": "Hello", "styles": {"font_size": "2rem"}},
//	      {"kind": "image", "image": "logo.png", "styles": {"sizing": {"width": "25%"}}}
//	    ]
//	  }
//	}
//
// TOML documents use the same keys:
//
//	[viewport]
//	width = 800
//	height = 600
//
//	[root]
//	id = "page"
//	styles = { flex_direction = "row" }
//
//	[[root.children]]
//	kind = "text"
//	text = "Hello"
//
// # Node Fields
//
//   - id: optional; a random UUID is assigned when missing
//   - kind: container (default), text, image or button
//   - text: content of a text node
//   - image: path of an image file, relative to the document
//   - styles: CSS-like properties; dimensions are strings such as "10px",
//     "50%", "20vw" or "2rem", edges accept the 1 to 4 value shorthand
//   - children: child nodes; text and image nodes have none, a button has
//     exactly one
//
// # Snapshots
//
// [Capture] records the computed geometry of a laid-out tree: position,
// size, natural size, text lines and scrollbar state per node. Snapshots are
// what the pipeline caches and what the HTTP API returns. [Snapshot.Apply]
// restores scroll positions from a snapshot onto a fresh tree so a
// re-layout continues where the user left off.
package document
