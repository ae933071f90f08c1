package measure

import (
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/boxflow/pkg/box"
)

// CellMeasurer measures text in fixed-size terminal cells. Wide runes such
// as CJK ideographs take two cells. Font size and face are ignored.
type CellMeasurer struct {
	// CellWidth and LineHeight are the size of one cell. Zero means 1.
	CellWidth  float64
	LineHeight float64
}

var _ box.Measurer = CellMeasurer{}

// MeasureText returns the cell extent of content on one line.
func (c CellMeasurer) MeasureText(content string, _ box.Font) box.Size {
	return box.Size{Width: c.width(content), Height: c.lineHeight()}
}

// WrapText breaks content into lines no wider than maxWidth.
func (c CellMeasurer) WrapText(content string, _ box.Font, maxWidth float64) []box.TextLine {
	return Wrap(content, maxWidth, c.lineHeight(), c.width)
}

// ImageSize decodes the image header in data and scales it to cells.
func (c CellMeasurer) ImageSize(data []byte) (box.Size, error) {
	s, err := ImageSize(data)
	if err != nil {
		return box.Size{}, err
	}
	return box.Size{Width: s.Width / c.cellWidth(), Height: s.Height / c.lineHeight()}, nil
}

func (c CellMeasurer) width(s string) float64 {
	return float64(runewidth.StringWidth(s)) * c.cellWidth()
}

func (c CellMeasurer) cellWidth() float64 {
	if c.CellWidth <= 0 {
		return 1
	}
	return c.CellWidth
}

func (c CellMeasurer) lineHeight() float64 {
	if c.LineHeight <= 0 {
		return 1
	}
	return c.LineHeight
}
