package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/boxflow/pkg/render/nodelink"
	"github.com/matzehuels/boxflow/pkg/render/sink"
)

// RenderLayout generates output artifacts in the requested formats without
// caching.
func RenderLayout(ctx context.Context, l *Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	style, _ := sink.StyleByName(opts.Style)

	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithImages(l.Images)}
	pngOpts := []sink.PNGOption{sink.WithPNGStyle(style), sink.WithPNGImages(l.Images), sink.WithScale(opts.Scale)}
	if !opts.ShowScrollbars() {
		svgOpts = append(svgOpts, sink.WithoutScrollbars())
		pngOpts = append(pngOpts, sink.WithoutPNGScrollbars())
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			o := svgOpts
			if opts.EmbedFonts {
				o = append(o[:len(o):len(o)], sink.WithEmbeddedFonts())
			}
			data = sink.RenderSVG(l.Snapshot, o...)
		case FormatPNG:
			data, err = sink.RenderPNG(l.Snapshot, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l.Snapshot, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l.Snapshot)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l.Snapshot, nodelink.Options{Detailed: opts.Detailed}))
		case FormatTree:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(l.Snapshot, nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
