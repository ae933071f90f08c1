// Package fonts provides the embedded Go font family for text measurement
// and rendering.
//
// The fonts ship inside golang.org/x/image, so the binary needs no font
// files on disk. Faces are selected from a [box.Font] by family, weight and
// style, and parsed at most once.
package fonts

import (
	"encoding/base64"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/boxflow/pkg/box"
)

// FontFamily is the CSS font-family name of the proportional face.
const FontFamily = "Go"

// MonoFontFamily is the CSS font-family name of the monospace face.
const MonoFontFamily = "Go Mono"

// FallbackFontFamily lists fallbacks for viewers without the embedded font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// MonoFallbackFontFamily lists fallbacks for the monospace face.
const MonoFallbackFontFamily = `'Go Mono', Menlo, Consolas, monospace`

// Face identifies one embedded font file.
type Face uint8

const (
	Regular Face = iota
	Bold
	Italic
	BoldItalic
	Mono
	MonoBold
	MonoItalic
	MonoBoldItalic
	numFaces
)

var faceTTF = [numFaces][]byte{
	Regular:        goregular.TTF,
	Bold:           gobold.TTF,
	Italic:         goitalic.TTF,
	BoldItalic:     gobolditalic.TTF,
	Mono:           gomono.TTF,
	MonoBold:       gomonobold.TTF,
	MonoItalic:     gomonoitalic.TTF,
	MonoBoldItalic: gomonobolditalic.TTF,
}

var faceNames = [numFaces]string{
	"regular", "bold", "italic", "bold-italic",
	"mono", "mono-bold", "mono-italic", "mono-bold-italic",
}

func (f Face) String() string {
	if f < numFaces {
		return faceNames[f]
	}
	return "unknown"
}

// IsMono reports whether f is a monospace face.
func (f Face) IsMono() bool { return f >= Mono && f < numFaces }

// Family returns the CSS font-family value for f including fallbacks.
func (f Face) Family() string {
	if f.IsMono() {
		return MonoFallbackFontFamily
	}
	return FallbackFontFamily
}

// Select picks the face that best matches font. Families naming a
// monospace font map to Go Mono; everything else maps to Go.
func Select(f box.Font) Face {
	base := Regular
	if isMonoFamily(f.Family) {
		base = Mono
	}
	switch {
	case f.Bold() && f.Italic():
		return base + BoldItalic
	case f.Bold():
		return base + Bold
	case f.Italic():
		return base + Italic
	default:
		return base
	}
}

func isMonoFamily(family string) bool {
	for _, name := range strings.Split(family, ",") {
		name = strings.ToLower(strings.Trim(strings.TrimSpace(name), `'"`))
		switch name {
		case "monospace", "mono", "go mono", "courier", "courier new", "menlo", "consolas":
			return true
		}
	}
	return false
}

// TTF returns the TrueType data of f.
func TTF(f Face) []byte {
	if f >= numFaces {
		return faceTTF[Regular]
	}
	return faceTTF[f]
}

var (
	parseOnce [numFaces]sync.Once
	parsed    [numFaces]*opentype.Font
	parseErr  [numFaces]error
)

// Parsed returns the parsed font for f. The result is cached after the
// first call.
func Parsed(f Face) (*opentype.Font, error) {
	if f >= numFaces {
		f = Regular
	}
	parseOnce[f].Do(func() {
		parsed[f], parseErr[f] = opentype.Parse(faceTTF[f])
	})
	return parsed[f], parseErr[f]
}

// NewFace returns a face for f at f.Size pixels. At 72 DPI one point is one
// pixel. The caller owns the face and must close it.
func NewFace(f box.Font) (font.Face, error) {
	parsed, err := Parsed(Select(f))
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Cache for base64-encoded fonts (computed once on first access).
var (
	b64     [numFaces]string
	b64Once [numFaces]sync.Once
)

// Base64 returns the TrueType data of f as a base64 string for embedding
// in SVG @font-face rules.
func Base64(f Face) string {
	if f >= numFaces {
		f = Regular
	}
	b64Once[f].Do(func() {
		b64[f] = base64.StdEncoding.EncodeToString(faceTTF[f])
	})
	return b64[f]
}
