package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/boxflow/pkg/errors"
)

// converterBinary is the librsvg command line tool used for SVG conversion.
const converterBinary = "rsvg-convert"

// ToPDF converts SVG bytes to PDF with rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// HasConverter reports whether rsvg-convert is on PATH.
func HasConverter() bool {
	_, err := exec.LookPath(converterBinary)
	return err == nil
}

// convert pipes svg through rsvg-convert. A missing binary is reported as
// ErrCodeUnsupported so callers can tell it apart from a conversion failure.
func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !HasConverter() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s output needs librsvg (brew install librsvg, or apt install librsvg2-bin)", format)
	}

	cmd := exec.CommandContext(ctx, converterBinary, append([]string{"-f", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", converterBinary, strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
