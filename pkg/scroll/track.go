package scroll

import "github.com/matzehuels/boxflow/pkg/box"

// DefaultThickness is the cross-axis size of a scrollbar track in pixels.
const DefaultThickness = 10.0

// Track is the scrollbar geometry of one axis of a container.
type Track struct {
	Axis box.Axis
	// Origin and Size bound the whole track.
	Origin box.Position
	Size   box.Size
	// ThumbStart is the main-axis coordinate where the thumb begins.
	ThumbStart float64
	// ThumbLength is the main-axis extent of the thumb.
	ThumbLength float64
}

// TrackOf returns the track of n on axis a. It reports false when n does
// not overflow on a.
func TrackOf(n *box.Node, a box.Axis, thickness float64) (Track, bool) {
	pos, size := n.Bounds()
	return TrackFor(pos, size, n.Scrollbar(), a, thickness)
}

// TrackFor computes the track of a box at pos with the given size and
// scrollbar state. Renderers use it with recorded geometry.
func TrackFor(pos box.Position, size box.Size, sb *box.ScrollbarState, a box.Axis, thickness float64) (Track, bool) {
	if sb == nil || !sb.IsOverflowing.Along(a) {
		return Track{}, false
	}

	t := Track{Axis: a}
	switch a {
	case box.Horizontal:
		t.Origin = box.Position{X: pos.X, Y: pos.Y + size.Height - thickness}
		t.Size = box.Size{Width: size.Width, Height: thickness}
	default:
		t.Origin = box.Position{X: pos.X + size.Width - thickness, Y: pos.Y}
		t.Size = box.Size{Width: thickness, Height: size.Height}
	}

	t.ThumbLength = t.Length() * sb.ThumbRatio.Along(a)
	t.ThumbStart = t.Start() + sb.CurrentScrollPosition.Along(a)*t.Travel()
	return t, true
}

// Start is the main-axis coordinate of the track origin.
func (t Track) Start() float64 { return t.Origin.Along(t.Axis) }

// Length is the main-axis extent of the track.
func (t Track) Length() float64 { return t.Size.Along(t.Axis) }

// Travel is how far the thumb can move.
func (t Track) Travel() float64 { return t.Length() - t.ThumbLength }

// Contains reports whether (x, y) lies on the track.
func (t Track) Contains(x, y float64) bool {
	return x >= t.Origin.X && x < t.Origin.X+t.Size.Width &&
		y >= t.Origin.Y && y < t.Origin.Y+t.Size.Height
}

// OnThumb reports whether the main-axis coordinate v lies on the thumb.
func (t Track) OnThumb(v float64) bool {
	return v >= t.ThumbStart && v < t.ThumbStart+t.ThumbLength
}

// PositionAt converts a thumb start coordinate to a scroll fraction.
func (t Track) PositionAt(thumbStart float64) float64 {
	if t.Travel() <= 0 {
		return 0
	}
	return (thumbStart - t.Start()) / t.Travel()
}
