package layout

import "github.com/matzehuels/boxflow/pkg/box"

// units converts dimensions to pixels for one pass.
type units struct {
	viewport     box.Size
	rootFontSize float64
}

// length converts an absolute or viewport-relative dimension to pixels.
// It reports false for percentages, which depend on the parent's box.
func (u units) length(d box.Dimension) (float64, bool) {
	switch d.Unit {
	case box.UnitPx:
		return d.Value, true
	case box.UnitVw:
		return d.Value / 100 * u.viewport.Width, true
	case box.UnitVh:
		return d.Value / 100 * u.viewport.Height, true
	case box.UnitRem:
		return d.Value * u.rootFontSize, true
	default:
		return 0, false
	}
}

// resolve converts d to pixels, resolving percentages against basis.
func (u units) resolve(d box.Dimension, basis float64) float64 {
	if px, ok := u.length(d); ok {
		return px
	}
	return d.Value / 100 * basis
}

// insets converts margin or padding edges. Percent edges have no basis
// during estimation and count as zero.
func (u units) insets(e box.Edges) box.Insets {
	px := func(d box.Dimension) float64 {
		v, _ := u.length(d)
		return v
	}
	return box.Insets{Top: px(e.Top), Right: px(e.Right), Bottom: px(e.Bottom), Left: px(e.Left)}
}

// font applies the font properties of s on top of the inherited font.
func (u units) font(s box.Styles, inherited box.Font) box.Font {
	f := inherited
	if s.FontFamily != "" {
		f.Family = s.FontFamily
	}
	if s.FontSize != nil {
		if size := u.resolve(*s.FontSize, inherited.Size); size > 0 {
			f.Size = size
		}
	}
	if s.FontWeight != 0 {
		f.Weight = s.FontWeight
	}
	if s.FontStyle != nil {
		f.Style = *s.FontStyle
	}
	return f
}

// clampAxis applies the min and max policies of s on axis a to v.
// Percent bounds resolve against basis; a negative basis means the parent
// box is not known yet and percent bounds are skipped.
func (u units) clampAxis(s box.SizingPolicy, a box.Axis, v, basis float64) float64 {
	if px, ok := u.bound(s.MaxAlong(a), basis); ok {
		v = min(v, px)
	}
	if px, ok := u.bound(s.MinAlong(a), basis); ok {
		v = max(v, px)
	}
	return max(0, v)
}

// minAxis returns the floor a shrinking child may not go below.
func (u units) minAxis(s box.SizingPolicy, a box.Axis, basis float64) float64 {
	if px, ok := u.bound(s.MinAlong(a), basis); ok {
		return max(0, px)
	}
	return 0
}

func (u units) bound(d *box.Dimension, basis float64) (float64, bool) {
	switch {
	case d == nil:
		return 0, false
	case d.IsPercent() && basis < 0:
		return 0, false
	default:
		return u.resolve(*d, basis), true
	}
}
