package sink

import (
	"github.com/matzehuels/boxflow/pkg/render"
)

// Style decides how a box is painted.
type Style interface {
	// Name identifies the style in cache keys and flags.
	Name() string
	// Decorate sets the colors of it.
	Decorate(it *Item)
}

// Style names.
const (
	StylePainted   = "painted"
	StyleWireframe = "wireframe"
)

// StyleByName returns the style called name.
func StyleByName(name string) (Style, bool) {
	switch name {
	case "", StylePainted:
		return Painted{}, true
	case StyleWireframe:
		return Wireframe{}, true
	}
	return nil, false
}

// Painted paints boxes with their document colors.
type Painted struct{}

func (Painted) Name() string { return StylePainted }

func (Painted) Decorate(it *Item) {
	it.Fill = render.MustColor(it.Geometry.Paint.Background, render.Transparent)
	if w := it.Geometry.Paint.BorderWidth; w > 0 {
		it.Stroke = render.MustColor(it.Geometry.Paint.Border, render.Black)
		it.StrokeWidth = w
	}
	it.TextColor = render.MustColor(it.Geometry.Paint.Color, render.Black)
}

// Wireframe outlines boxes by tree depth.
type Wireframe struct{}

func (Wireframe) Name() string { return StyleWireframe }

func (Wireframe) Decorate(it *Item) {
	it.Fill = render.Transparent
	it.Stroke = render.DepthColor(it.Geometry.Depth)
	it.StrokeWidth = 1
	it.TextColor = render.Black
}
