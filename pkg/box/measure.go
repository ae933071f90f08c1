package box

// TextLine is one line of wrapped text, positioned relative to its text box.
type TextLine struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
	Y     float64 `json:"y"`
}

// Measurer supplies intrinsic sizes for leaf content.
// Implementations must be fast and side-effect free; the engine calls them
// synchronously from inside a layout pass.
type Measurer interface {
	// MeasureText returns the single-line extent of content.
	MeasureText(content string, font Font) Size

	// WrapText breaks content into lines no wider than maxWidth where
	// possible. A word longer than maxWidth gets a line of its own.
	WrapText(content string, font Font, maxWidth float64) []TextLine

	// ImageSize decodes the pixel dimensions from an encoded image header.
	ImageSize(data []byte) (Size, error)
}
