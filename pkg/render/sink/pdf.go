package sink

import (
	"context"

	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/render"
)

// RenderPDF renders the snapshot as PDF via SVG conversion. Fonts are always
// embedded so the converter does not substitute its own.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s *document.Snapshot, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(s, append(opts[:len(opts):len(opts)], WithEmbeddedFonts())...)
	return render.ToPDF(ctx, svg)
}
