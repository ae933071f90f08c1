package box

// Axis selects the horizontal or vertical component of a geometry value.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Cross returns the perpendicular axis.
func (a Axis) Cross() Axis { return 1 - a }

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Size is a width and height in pixels.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Along returns the component of s on axis a.
func (s Size) Along(a Axis) float64 {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

// With returns a copy of s with the component on axis a replaced.
func (s Size) With(a Axis, v float64) Size {
	if a == Vertical {
		s.Height = v
	} else {
		s.Width = v
	}
	return s
}

// Position is a point in pixels, relative to the layout origin.
type Position struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Along returns the component of p on axis a.
func (p Position) Along(a Axis) float64 {
	if a == Vertical {
		return p.Y
	}
	return p.X
}

// With returns a copy of p with the component on axis a replaced.
func (p Position) With(a Axis, v float64) Position {
	if a == Vertical {
		p.Y = v
	} else {
		p.X = v
	}
	return p
}

// OptionalSize is a size whose axes may be absent.
// A present axis holding a zero [UnitPercent] dimension is a pending
// percentage that the parent resolves during allocation.
type OptionalSize struct {
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`
}

// Along returns the dimension on axis a, or nil.
func (o OptionalSize) Along(a Axis) *Dimension {
	if a == Vertical {
		return o.Height
	}
	return o.Width
}

// With returns a copy of o with the dimension on axis a replaced.
func (o OptionalSize) With(a Axis, d *Dimension) OptionalSize {
	if a == Vertical {
		o.Height = d
	} else {
		o.Width = d
	}
	return o
}

// Or fills absent axes from natural.
func (o OptionalSize) Or(natural Size) Size {
	s := natural
	if o.Width != nil {
		s.Width = o.Width.Value
	}
	if o.Height != nil {
		s.Height = o.Height.Value
	}
	return s
}

// Insets are resolved edge widths in pixels.
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Sum returns the total inset along axis a.
func (in Insets) Sum(a Axis) float64 {
	if a == Vertical {
		return in.Vertical()
	}
	return in.Horizontal()
}

// Start returns the leading inset along axis a (left or top).
func (in Insets) Start(a Axis) float64 {
	if a == Vertical {
		return in.Top
	}
	return in.Left
}

// End returns the trailing inset along axis a (right or bottom).
func (in Insets) End(a Axis) float64 {
	if a == Vertical {
		return in.Bottom
	}
	return in.Right
}
