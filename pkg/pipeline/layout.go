package pipeline

import (
	"fmt"
	"maps"
	"slices"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/cache"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/layout"
	"github.com/matzehuels/boxflow/pkg/measure"
)

// Layout is a laid-out document ready to render.
type Layout struct {
	Snapshot *document.Snapshot
	// Images holds the encoded bytes of image nodes by ID. Snapshots carry
	// geometry only.
	Images map[string][]byte
	// Hash identifies the snapshot and image content for artifact caching.
	Hash string
}

// Tree builds the box tree of doc. Nodes without an ID are numbered in
// document order, skipping IDs the document already uses, so the same
// document always yields the same IDs.
func Tree(doc *document.Document) (*box.Node, error) {
	return doc.Build(document.BuildOptions{NewID: autoIDs(doc)})
}

func autoIDs(doc *document.Document) func() string {
	taken := make(map[string]bool)
	var walk func(*document.Node)
	walk = func(n *document.Node) {
		if n == nil {
			return
		}
		if n.ID != "" {
			taken[n.ID] = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(doc.Root)

	next := 0
	return func() string {
		for {
			next++
			id := fmt.Sprintf("node-%d", next)
			if !taken[id] {
				return id
			}
		}
	}
}

// Images collects the image bytes of every image node under root.
func Images(root *box.Node) map[string][]byte {
	images := make(map[string][]byte)
	root.Walk(func(n *box.Node) bool {
		if n.Kind == box.Image && len(n.Image) > 0 {
			images[n.ID] = n.Image
		}
		return true
	})
	return images
}

// NewEngine returns a layout engine for doc configured by opts. The caller
// must call the returned release func when done with the engine.
func NewEngine(doc *document.Document, opts Options) (*layout.Engine, func()) {
	engineOpts := []layout.Option{layout.WithRootFontSize(opts.RemBase(doc))}
	release := func() {}

	switch opts.Measurer {
	case MeasurerCell:
		engineOpts = append(engineOpts, layout.WithMeasurer(measure.CellMeasurer{}))
	default:
		m := measure.New()
		engineOpts = append(engineOpts, layout.WithMeasurer(m))
		release = func() { _ = m.Close() }
	}
	return layout.New(engineOpts...), release
}

// ComputeLayout builds and lays out doc without caching.
func ComputeLayout(doc *document.Document, opts Options) (*Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	root, err := Tree(doc)
	if err != nil {
		return nil, err
	}
	return layoutTree(doc, root, opts), nil
}

func layoutTree(doc *document.Document, root *box.Node, opts Options) *Layout {
	engine, release := NewEngine(doc, opts)
	defer release()

	vp := opts.Viewport(doc)
	engine.Layout(root, box.Position{}, vp)
	snap := document.Capture(root, vp, document.WithPadding(func(n *box.Node) box.Insets {
		return engine.Padding(n, vp)
	}))
	return newLayout(snap, Images(root))
}

func newLayout(snap *document.Snapshot, images map[string][]byte) *Layout {
	l := &Layout{Snapshot: snap, Images: images}
	l.Hash = contentHash(snap, images)
	return l
}

// contentHash hashes the snapshot geometry together with image content.
// The snapshot ID is left out so a stored copy hashes like the original.
func contentHash(snap *document.Snapshot, images map[string][]byte) string {
	s := *snap
	s.ID = ""
	data, _ := s.Marshal()
	return hashWithImages(data, images)
}

func hashWithImages(data []byte, images map[string][]byte) string {
	for _, id := range slices.Sorted(maps.Keys(images)) {
		data = append(data, id...)
		data = append(data, cache.Hash(images[id])...)
	}
	return cache.Hash(data)
}
