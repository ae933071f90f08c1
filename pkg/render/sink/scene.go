package sink

import (
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/fonts"
	"github.com/matzehuels/boxflow/pkg/render"
	"github.com/matzehuels/boxflow/pkg/scroll"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: max(0, x1-x0), H: max(0, y1-y0)}
}

func rectOf(g document.Geometry) Rect {
	return Rect{X: g.Position.X, Y: g.Position.Y, W: g.Size.Width, H: g.Size.Height}
}

// Line is a text line placed on its baseline.
type Line struct {
	Text     string
	X        float64
	Baseline float64
}

// Item is one box ready to draw.
type Item struct {
	Geometry document.Geometry

	Fill        render.Color
	Stroke      render.Color
	StrokeWidth float64
	TextColor   render.Color

	// Clip is the area the box may paint in; nil means unclipped.
	Clip  *Rect
	Lines []Line
}

// Overlay is a scrollbar drawn above all boxes.
type Overlay struct {
	Track scroll.Track
	Clip  *Rect
}

// Scene is a snapshot prepared for drawing.
type Scene struct {
	Width, Height float64
	Items         []Item
	Overlays      []Overlay
}

// BuildScene places every node of s. Boxes come out in pre-order.
func BuildScene(s *document.Snapshot, style Style, thickness float64) *Scene {
	if style == nil {
		style = Painted{}
	}
	sc := &Scene{Width: s.Viewport.Width, Height: s.Viewport.Height}
	childClip := make(map[string]*Rect, len(s.Nodes))
	ascents := make(map[box.Font]float64)

	for _, g := range s.Nodes {
		it := Item{Geometry: g, Clip: childClip[g.Parent]}
		style.Decorate(&it)

		if g.Clips {
			r := rectOf(g)
			if it.Clip != nil {
				r = r.Intersect(*it.Clip)
			}
			childClip[g.ID] = &r
		} else {
			childClip[g.ID] = it.Clip
		}

		if g.Font != nil && len(g.Lines) > 0 {
			asc, ok := ascents[*g.Font]
			if !ok {
				asc = ascent(*g.Font)
				ascents[*g.Font] = asc
			}
			x := g.Position.X + g.Padding.Left
			y := g.Position.Y + g.Padding.Top
			for _, l := range g.Lines {
				it.Lines = append(it.Lines, Line{Text: l.Text, X: x, Baseline: y + l.Y + asc})
			}
		}
		sc.Items = append(sc.Items, it)

		for _, a := range []box.Axis{box.Horizontal, box.Vertical} {
			if t, ok := scroll.TrackFor(g.Position, g.Size, g.Scrollbar, a, thickness); ok {
				sc.Overlays = append(sc.Overlays, Overlay{Track: t, Clip: it.Clip})
			}
		}
	}
	return sc
}

// ascent returns the distance from the top of a line to its baseline.
func ascent(f box.Font) float64 {
	face, err := fonts.NewFace(f)
	if err != nil {
		return f.Size * 0.8
	}
	defer face.Close()
	return fixedToFloat(face.Metrics().Ascent)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
