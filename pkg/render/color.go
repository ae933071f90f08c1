package render

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// Color is a parsed style color with straight alpha.
type Color struct {
	colorful.Color
	Alpha float64
}

// ParseColor parses #rgb, #rgba, #rrggbb or #rrggbbaa. The empty string
// parses as fully transparent.
func ParseColor(s string) (Color, error) {
	if s == "" {
		return Color{}, nil
	}
	if err := errors.ValidateColor(s); err != nil {
		return Color{}, err
	}

	hex := s[1:]
	alpha := 1.0
	switch len(hex) {
	case 4:
		a, _ := strconv.ParseUint(hex[3:]+hex[3:], 16, 8)
		alpha = float64(a) / 255
		hex = hex[:3]
	case 8:
		a, _ := strconv.ParseUint(hex[6:], 16, 8)
		alpha = float64(a) / 255
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid color %q", s)
	}
	return Color{Color: c, Alpha: alpha}, nil
}

// MustColor parses s and falls back to fallback when s is empty or invalid.
func MustColor(s string, fallback Color) Color {
	if s == "" {
		return fallback
	}
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

// Visible reports whether c paints anything.
func (c Color) Visible() bool { return c.Alpha > 0 }

// SVG returns the color as an SVG paint value and an opacity.
func (c Color) SVG() (string, string) {
	if !c.Visible() {
		return "none", "0"
	}
	return c.Hex(), strconv.FormatFloat(c.Alpha, 'f', -1, 64)
}

// NRGBA returns c as a non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(c.Alpha*255 + 0.5)}
}

// String returns c as #rrggbb or #rrggbbaa.
func (c Color) String() string {
	if c.Alpha >= 1 {
		return c.Hex()
	}
	return fmt.Sprintf("%s%02x", c.Hex(), uint8(c.Alpha*255+0.5))
}

// Palette colors.
var (
	Black       = Color{Color: colorful.Color{}, Alpha: 1}
	Transparent = Color{}
	TrackColor  = Color{Color: colorful.Color{}, Alpha: 0.08}
	ThumbColor  = Color{Color: colorful.Color{}, Alpha: 0.35}
)

// DepthColor returns a distinct outline color for tree depth d. Adjacent
// depths differ by the golden angle in hue.
func DepthColor(d int) Color {
	h := float64(d) * 137.508
	for h >= 360 {
		h -= 360
	}
	return Color{Color: colorful.Hcl(h, 0.55, 0.55).Clamped(), Alpha: 1}
}
