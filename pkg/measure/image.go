package measure

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/errors"
)

// ImageSize reads the pixel dimensions from an encoded image header
// without decoding the pixels.
func ImageSize(data []byte) (box.Size, error) {
	if len(data) == 0 {
		return box.Size{}, errors.New(errors.ErrCodeInvalidInput, "empty image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return box.Size{}, errors.Wrap(errors.ErrCodeUnsupported, err, "unrecognized image format")
	}
	return box.Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}
