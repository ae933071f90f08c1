package layout

import (
	"github.com/matzehuels/boxflow/pkg/box"
)

// DefaultRootFontSize is the rem base in pixels.
const DefaultRootFontSize = 16.0

// Engine lays out box trees. An Engine is immutable after construction and
// may be shared between goroutines, but a single tree must not be laid out
// concurrently.
type Engine struct {
	measurer     box.Measurer
	rootFontSize float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithMeasurer sets the text and image measurer. Without one, text and image
// leaves measure as empty content.
func WithMeasurer(m box.Measurer) Option {
	return func(e *Engine) { e.measurer = m }
}

// WithRootFontSize sets the pixel size of 1rem.
func WithRootFontSize(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.rootFontSize = px
		}
	}
}

// New returns an Engine configured with opts.
func New(opts ...Option) *Engine {
	e := &Engine{rootFontSize: DefaultRootFontSize}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RootFontSize returns the pixel size of 1rem.
func (e *Engine) RootFontSize() float64 { return e.rootFontSize }

// Layout estimates the tree and then allocates the viewport to root at origin.
func (e *Engine) Layout(root *box.Node, origin box.Position, viewport box.Size) {
	p := e.newPass(viewport)
	p.estimate(root, e.rootFont())
	p.allocate(root, origin, viewport)
}

// EstimateSizes runs the bottom-up pass. The viewport is needed to convert
// vw and vh units.
func (e *Engine) EstimateSizes(root *box.Node, viewport box.Size) {
	e.newPass(viewport).estimate(root, e.rootFont())
}

// AllocateSpace runs the top-down pass, giving root the viewport box at
// origin. It panics if root has not been estimated.
func (e *Engine) AllocateSpace(root *box.Node, origin box.Position, viewport box.Size) {
	e.newPass(viewport).allocate(root, origin, viewport)
}

// Reflow re-estimates the children of n and allocates n again in its current
// box. Call it after changing the scroll position of n.
func (e *Engine) Reflow(n *box.Node, viewport box.Size) {
	p := e.newPass(viewport)
	for _, c := range n.Children() {
		p.estimate(c, n.Font())
	}
	pos, size := n.Bounds()
	p.allocate(n, pos, size)
}

// Padding returns the padding of n in pixels for viewport. Percent padding
// counts as zero, as it does during layout.
func (e *Engine) Padding(n *box.Node, viewport box.Size) box.Insets {
	return e.newPass(viewport).units.insets(n.Styles.Padding)
}

func (e *Engine) rootFont() box.Font {
	f := box.DefaultFont
	f.Size = e.rootFontSize
	return f
}

// pass carries the state shared by one estimation or allocation traversal.
type pass struct {
	*Engine
	units units
}

func (e *Engine) newPass(viewport box.Size) *pass {
	return &pass{
		Engine: e,
		units:  units{viewport: viewport, rootFontSize: e.rootFontSize},
	}
}
