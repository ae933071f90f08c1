package box

import (
	"strconv"
	"strings"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// =============================================================================
// Enumerations
// =============================================================================

// The zero value of every enumeration is its default.

// FlexDirection selects the main axis of a container.
type FlexDirection uint8

const (
	Column FlexDirection = iota
	Row
)

// FlexWrap controls whether children break into multiple lines.
type FlexWrap uint8

const (
	NoWrap FlexWrap = iota
	Wrap
	WrapReverse
)

// JustifyContent distributes surplus main-axis space.
type JustifyContent uint8

const (
	JustifyFlexStart JustifyContent = iota
	JustifyFlexEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
)

// AlignItems positions children on the cross axis.
type AlignItems uint8

const (
	AlignStretch AlignItems = iota
	AlignFlexStart
	AlignFlexEnd
	AlignCenter
	AlignBaseline
)

// Overflow decides what happens when children need more room than allocated.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
	OverflowAuto
)

// WhiteSpace controls text wrapping.
type WhiteSpace uint8

const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpaceNoWrap
	WhiteSpacePre
	WhiteSpacePreWrap
)

// FontStyle selects an upright or slanted face.
type FontStyle uint8

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
	FontStyleOblique
)

var (
	flexDirectionNames  = []string{"column", "row"}
	flexWrapNames       = []string{"nowrap", "wrap", "wrap-reverse"}
	justifyContentNames = []string{"flex-start", "flex-end", "center", "space-between", "space-around"}
	alignItemsNames     = []string{"stretch", "flex-start", "flex-end", "center", "baseline"}
	overflowNames       = []string{"visible", "hidden", "scroll", "auto"}
	whiteSpaceNames     = []string{"normal", "nowrap", "pre", "pre-wrap"}
	fontStyleNames      = []string{"normal", "italic", "oblique"}
)

func enumName[T ~uint8](v T, names []string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return strconv.Itoa(int(v))
}

func parseEnum[T ~uint8](property string, text []byte, names []string) (T, error) {
	s := strings.TrimSpace(strings.ToLower(string(text)))
	for i, name := range names {
		if s == name {
			return T(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle, "invalid %s %q (want one of %s)", property, s, strings.Join(names, ", "))
}

func (v FlexDirection) String() string {
	return enumName(v, flexDirectionNames)
}

func (v FlexWrap) String() string {
	return enumName(v, flexWrapNames)
}

func (v JustifyContent) String() string {
	return enumName(v, justifyContentNames)
}

func (v AlignItems) String() string {
	return enumName(v, alignItemsNames)
}

func (v Overflow) String() string {
	return enumName(v, overflowNames)
}

func (v WhiteSpace) String() string {
	return enumName(v, whiteSpaceNames)
}

func (v FontStyle) String() string {
	return enumName(v, fontStyleNames)
}

func (v FlexDirection) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v FlexWrap) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v JustifyContent) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v AlignItems) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v Overflow) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v WhiteSpace) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v FontStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *FlexDirection) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[FlexDirection]("flex-direction", b, flexDirectionNames)
	return err
}

func (v *FlexWrap) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[FlexWrap]("flex-wrap", b, flexWrapNames)
	return err
}

func (v *JustifyContent) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[JustifyContent]("justify-content", b, justifyContentNames)
	return err
}

func (v *AlignItems) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[AlignItems]("align-items", b, alignItemsNames)
	return err
}

func (v *Overflow) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[Overflow]("overflow", b, overflowNames)
	return err
}

func (v *WhiteSpace) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[WhiteSpace]("white-space", b, whiteSpaceNames)
	return err
}

func (v *FontStyle) UnmarshalText(b []byte) (err error) {
	*v, err = parseEnum[FontStyle]("font-style", b, fontStyleNames)
	return err
}

// MainAxis returns the axis children are laid out along.
func (v FlexDirection) MainAxis() Axis {
	if v == Row {
		return Horizontal
	}
	return Vertical
}

// Scrollable reports whether overflowing content gets a scrollbar.
func (v Overflow) Scrollable() bool { return v == OverflowAuto || v == OverflowScroll }

// Wraps reports whether text may break across lines.
func (v WhiteSpace) Wraps() bool { return v == WhiteSpaceNormal || v == WhiteSpacePreWrap }

// =============================================================================
// Styles
// =============================================================================

// SizingPolicy holds the optional explicit size constraints of a box.
type SizingPolicy struct {
	Width     *Dimension `json:"width,omitempty" toml:"width"`
	Height    *Dimension `json:"height,omitempty" toml:"height"`
	MinWidth  *Dimension `json:"min_width,omitempty" toml:"min_width"`
	MaxWidth  *Dimension `json:"max_width,omitempty" toml:"max_width"`
	MinHeight *Dimension `json:"min_height,omitempty" toml:"min_height"`
	MaxHeight *Dimension `json:"max_height,omitempty" toml:"max_height"`
}

// Along returns the width or height policy.
func (p SizingPolicy) Along(a Axis) *Dimension {
	if a == Vertical {
		return p.Height
	}
	return p.Width
}

// MinAlong returns the minimum size policy on axis a.
func (p SizingPolicy) MinAlong(a Axis) *Dimension {
	if a == Vertical {
		return p.MinHeight
	}
	return p.MinWidth
}

// MaxAlong returns the maximum size policy on axis a.
func (p SizingPolicy) MaxAlong(a Axis) *Dimension {
	if a == Vertical {
		return p.MaxHeight
	}
	return p.MaxWidth
}

// Spacing is the gap inserted between adjacent children, in pixels.
type Spacing struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Along returns the gap on axis a.
func (s Spacing) Along(a Axis) float64 {
	if a == Vertical {
		return s.Y
	}
	return s.X
}

// Styles is the style record of a box. The zero value is a column container
// with no sizing policy, no margins and no padding.
type Styles struct {
	FlexDirection  FlexDirection  `json:"flex_direction,omitempty" toml:"flex_direction"`
	FlexWrap       FlexWrap       `json:"flex_wrap,omitempty" toml:"flex_wrap"`
	JustifyContent JustifyContent `json:"justify_content,omitempty" toml:"justify_content"`
	AlignItems     AlignItems     `json:"align_items,omitempty" toml:"align_items"`
	Overflow       Overflow       `json:"overflow,omitempty" toml:"overflow"`
	Sizing         SizingPolicy   `json:"sizing" toml:"sizing"`
	Margin         Edges          `json:"margin" toml:"margin"`
	Padding        Edges          `json:"padding" toml:"padding"`
	Spacing        Spacing        `json:"spacing" toml:"spacing"`
	FlexShrink     float64        `json:"flex_shrink,omitempty" toml:"flex_shrink"`
	WhiteSpace     WhiteSpace     `json:"white_space,omitempty" toml:"white_space"`

	// Font properties cascade to text descendants when unset.
	FontFamily string     `json:"font_family,omitempty" toml:"font_family"`
	FontSize   *Dimension `json:"font_size,omitempty" toml:"font_size"`
	FontWeight int        `json:"font_weight,omitempty" toml:"font_weight"`
	FontStyle  *FontStyle `json:"font_style,omitempty" toml:"font_style"`

	// Paint properties. Colors are CSS hex strings.
	BackgroundColor string  `json:"background_color,omitempty" toml:"background_color"`
	TextColor       string  `json:"text_color,omitempty" toml:"text_color"`
	BorderColor     string  `json:"border_color,omitempty" toml:"border_color"`
	BorderWidth     float64 `json:"border_width,omitempty" toml:"border_width"`
}

// Font is a resolved font description handed to the text measurer.
type Font struct {
	Family string    `json:"family"`
	Size   float64   `json:"size"`
	Weight int       `json:"weight"`
	Style  FontStyle `json:"style"`
}

// Font defaults.
const (
	DefaultFontFamily = "sans-serif"
	DefaultFontSize   = 16.0
	DefaultFontWeight = 400
)

// DefaultFont is the font used at the root of a tree.
var DefaultFont = Font{Family: DefaultFontFamily, Size: DefaultFontSize, Weight: DefaultFontWeight}

// Bold reports whether the weight selects a bold face.
func (f Font) Bold() bool { return f.Weight >= 600 }

// Italic reports whether the style selects a slanted face.
func (f Font) Italic() bool { return f.Style != FontStyleNormal }

// ValidateFontWeight checks that w is zero (inherit) or a multiple of 100
// between 100 and 900.
func ValidateFontWeight(w int) error {
	if w == 0 {
		return nil
	}
	if w < 100 || w > 900 || w%100 != 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid font-weight %d (want 100..900 in steps of 100)", w)
	}
	return nil
}
