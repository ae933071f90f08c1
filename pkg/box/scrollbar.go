package box

// Directions holds a flag per axis.
type Directions struct {
	Horizontal bool `json:"horizontal"`
	Vertical   bool `json:"vertical"`
}

// Along returns the flag for axis a.
func (d Directions) Along(a Axis) bool {
	if a == Vertical {
		return d.Vertical
	}
	return d.Horizontal
}

// Set assigns the flag for axis a.
func (d *Directions) Set(a Axis, v bool) {
	if a == Vertical {
		d.Vertical = v
	} else {
		d.Horizontal = v
	}
}

// Ratios holds a fraction per axis.
type Ratios struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Along returns the fraction for axis a.
func (r Ratios) Along(a Axis) float64 {
	if a == Vertical {
		return r.Y
	}
	return r.X
}

// Set assigns the fraction for axis a.
func (r *Ratios) Set(a Axis, v float64) {
	if a == Vertical {
		r.Y = v
	} else {
		r.X = v
	}
}

// ScrollbarState is the per-container scroll overlay. The layout engine
// writes IsOverflowing and ThumbRatio; the input side writes
// CurrentScrollPosition and the drag fields.
type ScrollbarState struct {
	IsOverflowing Directions `json:"is_overflowing"`

	// ThumbRatio is the fraction of the track the thumb covers, in (0, 1].
	// A ratio of 1 means the axis is not overflowing.
	ThumbRatio Ratios `json:"thumb_ratio"`

	// CurrentScrollPosition is the scroll fraction per axis, in [0, 1].
	CurrentScrollPosition Ratios `json:"current_scroll_position"`

	IsDragging bool `json:"is_dragging"`
	// DragAxis is the axis of the thumb being dragged.
	DragAxis Axis `json:"drag_axis"`
	// DragStartPosition is the cursor offset from the thumb origin at press time.
	DragStartPosition float64 `json:"drag_start_position"`
}

// NewScrollbarState returns a state with no overflow and full-track thumbs.
func NewScrollbarState() ScrollbarState {
	return ScrollbarState{ThumbRatio: Ratios{X: 1, Y: 1}}
}

// Reset clears the overflow flag on axis a and restores a full thumb.
// The scroll position is kept so content stays put across reflows.
func (s *ScrollbarState) Reset(a Axis) {
	s.IsOverflowing.Set(a, false)
	s.ThumbRatio.Set(a, 1)
}

// SetOverflow marks axis a as overflowing with the given thumb ratio,
// clamped to (0, 1]. A ratio of 1 or more clears the overflow instead.
func (s *ScrollbarState) SetOverflow(a Axis, ratio float64) {
	if ratio >= 1 {
		s.Reset(a)
		return
	}
	if ratio <= 0 {
		ratio = minThumbRatio
	}
	s.IsOverflowing.Set(a, true)
	s.ThumbRatio.Set(a, ratio)
}

// ScrollTo sets the scroll fraction on axis a, clamped to [0, 1].
func (s *ScrollbarState) ScrollTo(a Axis, pos float64) {
	s.CurrentScrollPosition.Set(a, clamp01(pos))
}

// Overflowing reports whether either axis overflows.
func (s *ScrollbarState) Overflowing() bool {
	return s.IsOverflowing.Horizontal || s.IsOverflowing.Vertical
}

const minThumbRatio = 1e-3

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
