// Package measure implements [box.Measurer] for the layout engine.
//
// [New] measures text with the embedded Go fonts at the requested pixel
// size. [CellMeasurer] measures text in terminal cells, which is what the
// interactive inspector lays out with. Both break lines greedily at word
// boundaries; a word wider than the line gets a line of its own.
//
// Image sizes come from the image header only. PNG, JPEG, GIF, BMP, TIFF
// and WebP are recognized.
package measure

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/fonts"
)

// FontMeasurer measures text with the embedded fonts. It is safe for
// concurrent use.
type FontMeasurer struct {
	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	face fonts.Face
	size float64
}

var _ box.Measurer = (*FontMeasurer)(nil)

// New returns a FontMeasurer.
func New() *FontMeasurer {
	return &FontMeasurer{faces: make(map[faceKey]font.Face)}
}

// MeasureText returns the advance width and line height of content set in
// f on a single line.
func (m *FontMeasurer) MeasureText(content string, f box.Font) box.Size {
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f)
	if face == nil {
		return fallbackSize(content, f)
	}
	return box.Size{Width: width(face, content), Height: lineHeight(face)}
}

// WrapText breaks content into lines no wider than maxWidth.
func (m *FontMeasurer) WrapText(content string, f box.Font, maxWidth float64) []box.TextLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	face := m.face(f)
	if face == nil {
		fb := fallbackSize("", f)
		return Wrap(content, maxWidth, fb.Height, func(s string) float64 { return fallbackSize(s, f).Width })
	}
	return Wrap(content, maxWidth, lineHeight(face), func(s string) float64 { return width(face, s) })
}

// ImageSize decodes the image header in data.
func (m *FontMeasurer) ImageSize(data []byte) (box.Size, error) {
	return ImageSize(data)
}

// Close releases the cached font faces.
func (m *FontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, face := range m.faces {
		face.Close()
		delete(m.faces, k)
	}
	return nil
}

// face returns the cached face for f. The caller holds m.mu.
func (m *FontMeasurer) face(f box.Font) font.Face {
	if f.Size <= 0 {
		return nil
	}
	key := faceKey{face: fonts.Select(f), size: f.Size}
	if face, ok := m.faces[key]; ok {
		return face
	}

	face, err := fonts.NewFace(f)
	if err != nil {
		return nil
	}
	m.faces[key] = face
	return face
}

func width(face font.Face, s string) float64 {
	return fromFixed(font.MeasureString(face, s))
}

func lineHeight(face font.Face) float64 {
	return fromFixed(face.Metrics().Height)
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// fallbackSize estimates text extent when no face is available.
func fallbackSize(content string, f box.Font) box.Size {
	return box.Size{
		Width:  float64(len([]rune(content))) * f.Size * 0.6,
		Height: f.Size * 1.2,
	}
}

// Wrap breaks content greedily at whitespace into lines no wider than
// maxWidth, as measured by width. Every line is lineHeight tall and Y is
// the offset of the line's top from the first line.
func Wrap(content string, maxWidth, lineHeight float64, width func(string) float64) []box.TextLine {
	words := strings.Fields(content)
	if len(words) == 0 {
		return nil
	}

	var lines []box.TextLine
	emit := func(text string) {
		lines = append(lines, box.TextLine{
			Text:  text,
			Width: width(text),
			Y:     float64(len(lines)) * lineHeight,
		})
	}

	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if width(candidate) <= maxWidth {
			current = candidate
			continue
		}
		emit(current)
		current = word
	}
	emit(current)
	return lines
}
