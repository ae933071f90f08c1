package scroll

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/layout"
)

const (
	// DefaultIncrement is the scroll fraction one wheel notch moves.
	DefaultIncrement = 0.05
	// DefaultSensitivity scales wheel deltas.
	DefaultSensitivity = 1.0
)

// Controller applies pointer events to the scrollbar state of a laid-out
// tree and reflows containers whose scroll position changed.
//
// A Controller is not safe for concurrent use; it mutates the tree it is
// given.
type Controller struct {
	engine   *layout.Engine
	viewport box.Size
	logger   *log.Logger

	thickness   float64
	increment   float64
	sensitivity float64
}

// Option configures a Controller.
type Option func(*Controller)

// WithThickness sets the cross-axis size of scrollbar tracks.
func WithThickness(px float64) Option {
	return func(c *Controller) {
		if px > 0 {
			c.thickness = px
		}
	}
}

// WithIncrement sets the scroll fraction of one wheel notch.
func WithIncrement(v float64) Option {
	return func(c *Controller) {
		if v > 0 {
			c.increment = v
		}
	}
}

// WithSensitivity scales wheel deltas.
func WithSensitivity(v float64) Option {
	return func(c *Controller) {
		if v > 0 {
			c.sensitivity = v
		}
	}
}

// WithLogger sets the logger for scroll changes.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Controller that reflows with engine inside viewport.
func New(engine *layout.Engine, viewport box.Size, opts ...Option) *Controller {
	c := &Controller{
		engine:      engine,
		viewport:    viewport,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		thickness:   DefaultThickness,
		increment:   DefaultIncrement,
		sensitivity: DefaultSensitivity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Thickness returns the track thickness in pixels.
func (c *Controller) Thickness() float64 { return c.thickness }

// SetViewport updates the viewport used for reflows after a resize.
func (c *Controller) SetViewport(v box.Size) { c.viewport = v }

// Dispatch offers ev to every overflowing or dragging container under root,
// parents before children. It reports whether any container consumed it.
func (c *Controller) Dispatch(root *box.Node, ev Event) bool {
	var targets []*box.Node
	root.Walk(func(n *box.Node) bool {
		if sb := n.Scrollbar(); sb.Overflowing() || sb.IsDragging {
			targets = append(targets, n)
		}
		return true
	})

	handled := false
	for _, n := range targets {
		if c.Handle(n, ev) {
			handled = true
		}
	}
	return handled
}

// Handle applies ev to the scrollbars of n. It reports whether n consumed
// the event.
func (c *Controller) Handle(n *box.Node, ev Event) bool {
	switch ev.Action {
	case Press:
		return c.press(n, ev)
	case Drag:
		return c.drag(n, ev)
	case Release:
		return c.release(n)
	case Wheel:
		return c.wheel(n, ev)
	default:
		return false
	}
}

func (c *Controller) press(n *box.Node, ev Event) bool {
	sb := n.Scrollbar()
	for _, a := range []box.Axis{box.Vertical, box.Horizontal} {
		t, ok := TrackOf(n, a, c.thickness)
		if !ok || !t.Contains(ev.X, ev.Y) {
			continue
		}

		cursor := box.Position{X: ev.X, Y: ev.Y}.Along(a)
		if t.OnThumb(cursor) {
			sb.IsDragging = true
			sb.DragAxis = a
			sb.DragStartPosition = cursor - t.ThumbStart
			c.logger.Debug("scroll drag start", "node", n.ID, "axis", a)
			return true
		}

		// Jump so the thumb centers on the cursor.
		c.scrollTo(n, a, t.PositionAt(cursor-t.ThumbLength/2))
		return true
	}
	return false
}

func (c *Controller) drag(n *box.Node, ev Event) bool {
	sb := n.Scrollbar()
	if !sb.IsDragging {
		return false
	}
	a := sb.DragAxis
	t, ok := TrackOf(n, a, c.thickness)
	if !ok {
		return false
	}
	cursor := box.Position{X: ev.X, Y: ev.Y}.Along(a)
	c.scrollTo(n, a, t.PositionAt(cursor-sb.DragStartPosition))
	return true
}

func (c *Controller) release(n *box.Node) bool {
	sb := n.Scrollbar()
	if !sb.IsDragging {
		return false
	}
	sb.IsDragging = false
	sb.DragStartPosition = 0
	c.logger.Debug("scroll drag end", "node", n.ID)
	return true
}

// wheel scrolls the vertical axis with DeltaY and the horizontal axis with
// DeltaX. A container that only overflows horizontally scrolls with DeltaY
// too.
func (c *Controller) wheel(n *box.Node, ev Event) bool {
	if !n.Contains(ev.X, ev.Y) {
		return false
	}
	sb := n.Scrollbar()
	dx, dy := ev.DeltaX, ev.DeltaY
	if !sb.IsOverflowing.Vertical && dx == 0 {
		dx, dy = dy, 0
	}

	handled := false
	for _, step := range []struct {
		axis  box.Axis
		delta float64
	}{{box.Horizontal, dx}, {box.Vertical, dy}} {
		if step.delta == 0 || !sb.IsOverflowing.Along(step.axis) {
			continue
		}
		pos := sb.CurrentScrollPosition.Along(step.axis) + step.delta*c.increment*c.sensitivity
		c.scrollTo(n, step.axis, pos)
		handled = true
	}
	return handled
}

// scrollTo moves n to pos on axis a and reflows it when the position
// actually changed.
func (c *Controller) scrollTo(n *box.Node, a box.Axis, pos float64) {
	sb := n.Scrollbar()
	before := sb.CurrentScrollPosition.Along(a)
	sb.ScrollTo(a, pos)
	after := sb.CurrentScrollPosition.Along(a)
	if after == before {
		return
	}
	c.logger.Debug("scroll", "node", n.ID, "axis", a, "position", after)
	c.engine.Reflow(n, c.viewport)
}
