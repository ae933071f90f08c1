// Package pkg provides the libraries behind boxflow, a two-pass flexbox layout
// engine for trees of boxes.
//
// # Overview
//
// A box tree is made of containers, text, images and buttons. Layout runs in
// two passes: a bottom-up pass estimates every node's natural size from its
// content, and a top-down pass hands each child its share of the parent's
// space, resolving percentages, shrinking under deficit, growing or wrapping
// under surplus, and aligning along both axes. Containers with overflow auto
// or scroll keep scrollbar state and can be reflowed after a scroll.
//
// The packages are organized in three layers:
//
//  1. Engine: [box], [layout], [scroll]
//  2. Collaborators: [measure], [fonts], [document]
//  3. Plumbing: [pipeline], [render], [cache], [storage], [observability], [errors]
//
// # Data flow
//
//	JSON/TOML document
//	         ↓
//	    [document] (decode, validate, build the box tree)
//	         ↓
//	    [layout] (estimate sizes, allocate space)
//	         ↓
//	    [document] Snapshot (geometry of every node)
//	         ↓
//	    [render] (SVG, PNG, PDF, JSON, DOT, tree diagram)
//
// # Quick Start
//
// Lay out a tree directly:
//
//	root := box.NewContainer("root", box.Styles{FlexDirection: box.Row},
//	    box.NewText("title", "hello", box.Styles{}),
//	)
//	layout.New().Layout(root, box.Position{}, box.Size{Width: 320, Height: 200})
//	pos, size := root.Children()[0].Bounds()
//
// Run the whole pipeline with caching:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, "page.json", pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// [box] - The node type, styles, dimensions (px, %, rem) and scrollbar state.
//
// [layout] - The two-pass engine. [layout.Engine] owns the measurer and the
// rem base; Layout runs both passes and Reflow re-allocates one subtree after
// a scroll.
//
// [scroll] - Scrollbar tracks and the controller that turns press, drag,
// release and wheel events into scroll positions and reflows.
//
// [measure] - Text and image measurement: real font metrics or terminal
// cells, plus image header decoding.
//
// [document] - The document format and the geometry snapshot.
//
// [pipeline] - Decode, layout and render with caching, shared by the CLI and
// the HTTP server.
//
// [render] - Color parsing, SVG to PDF conversion, and the [render/sink]
// (SVG, PNG, JSON) and [render/nodelink] (Graphviz) renderers.
//
// [cache] - Layout and artifact caches: file, Redis, null.
//
// [storage] - Stored layout snapshots: memory, file, MongoDB.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [box]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/box
// [layout]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/layout
// [layout.Engine]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/layout#Engine
// [scroll]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/scroll
// [measure]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/measure
// [fonts]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/fonts
// [document]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/cache
// [storage]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/storage
// [observability]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/errors
package pkg
