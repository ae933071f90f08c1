package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"slices"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/fonts"
	"github.com/matzehuels/boxflow/pkg/render"
	"github.com/matzehuels/boxflow/pkg/scroll"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      Style
	embedFonts bool
	images     map[string][]byte
	scrollbars bool
	thickness  float64
}

func WithStyle(s Style) SVGOption                   { return func(r *svgRenderer) { r.style = s } }
func WithEmbeddedFonts() SVGOption                  { return func(r *svgRenderer) { r.embedFonts = true } }
func WithImages(images map[string][]byte) SVGOption { return func(r *svgRenderer) { r.images = images } }
func WithoutScrollbars() SVGOption                  { return func(r *svgRenderer) { r.scrollbars = false } }

// WithThickness sets the scrollbar track thickness.
func WithThickness(t float64) SVGOption { return func(r *svgRenderer) { r.thickness = t } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: Painted{}, scrollbars: true, thickness: scroll.DefaultThickness}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the snapshot as an SVG document sized to its viewport.
func RenderSVG(s *document.Snapshot, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	sc := BuildScene(s, r.style, r.thickness)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		sc.Width, sc.Height, sc.Width, sc.Height)

	clips := r.renderDefs(&buf, sc)
	for _, it := range sc.Items {
		r.renderItem(&buf, it, clips)
	}
	if r.scrollbars {
		for _, o := range sc.Overlays {
			renderTrack(&buf, o, clips)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderDefs writes font faces and clip paths. It returns the clip path id
// of every distinct clip rectangle.
func (r *svgRenderer) renderDefs(buf *bytes.Buffer, sc *Scene) map[Rect]string {
	clips := make(map[Rect]string)
	var order []Rect
	faces := make(map[fonts.Face]bool)
	for _, it := range sc.Items {
		if it.Clip != nil {
			if _, ok := clips[*it.Clip]; !ok {
				clips[*it.Clip] = fmt.Sprintf("clip-%d", len(order))
				order = append(order, *it.Clip)
			}
		}
		if it.Geometry.Font != nil {
			faces[fonts.Select(*it.Geometry.Font)] = true
		}
	}
	if len(order) == 0 && (!r.embedFonts || len(faces) == 0) {
		return clips
	}

	buf.WriteString("  <defs>\n")
	if r.embedFonts && len(faces) > 0 {
		buf.WriteString("    <style>\n")
		used := make([]fonts.Face, 0, len(faces))
		for f := range faces {
			used = append(used, f)
		}
		slices.Sort(used)
		for _, f := range used {
			family := fonts.FontFamily
			if f.IsMono() {
				family = fonts.MonoFontFamily
			}
			weight, style := "normal", "normal"
			if f == fonts.Bold || f == fonts.BoldItalic || f == fonts.MonoBold || f == fonts.MonoBoldItalic {
				weight = "bold"
			}
			if f == fonts.Italic || f == fonts.BoldItalic || f == fonts.MonoItalic || f == fonts.MonoBoldItalic {
				style = "italic"
			}
			fmt.Fprintf(buf, "      @font-face { font-family: '%s'; font-weight: %s; font-style: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
				family, weight, style, fonts.Base64(f))
		}
		buf.WriteString("    </style>\n")
	}
	for _, c := range order {
		fmt.Fprintf(buf, `    <clipPath id="%s"><rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/></clipPath>`+"\n",
			clips[c], c.X, c.Y, c.W, c.H)
	}
	buf.WriteString("  </defs>\n")
	return clips
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, it Item, clips map[Rect]string) {
	g := it.Geometry
	fmt.Fprintf(buf, `  <g id="box-%s"`, escape(g.ID))
	if it.Clip != nil {
		fmt.Fprintf(buf, ` clip-path="url(#%s)"`, clips[*it.Clip])
	}
	buf.WriteString(">\n")

	if it.Fill.Visible() || it.StrokeWidth > 0 {
		fill, fillOpacity := it.Fill.SVG()
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%s"`,
			g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height, fill, fillOpacity)
		if it.StrokeWidth > 0 {
			stroke, strokeOpacity := it.Stroke.SVG()
			fmt.Fprintf(buf, ` stroke="%s" stroke-opacity="%s" stroke-width="%.2f"`, stroke, strokeOpacity, it.StrokeWidth)
		}
		buf.WriteString("/>\n")
	}

	if g.Kind == box.Image {
		r.renderImage(buf, g)
	}

	if len(it.Lines) > 0 {
		renderText(buf, it)
	}
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderImage(buf *bytes.Buffer, g document.Geometry) {
	data := r.images[g.ID]
	if len(data) == 0 {
		fmt.Fprintf(buf, `    <rect class="placeholder" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="#cccccc" fill-opacity="0.5"/>`+"\n",
			g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height)
		return
	}
	fmt.Fprintf(buf, `    <image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="none" href="data:%s;base64,%s"/>`+"\n",
		g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height,
		http.DetectContentType(data), base64.StdEncoding.EncodeToString(data))
}

func renderText(buf *bytes.Buffer, it Item) {
	f := *it.Geometry.Font
	face := fonts.Select(f)
	fill, opacity := it.TextColor.SVG()
	fmt.Fprintf(buf, `    <text font-family="%s" font-size="%.2f" font-weight="%d" fill="%s" fill-opacity="%s"`,
		escape(face.Family()), f.Size, f.Weight, fill, opacity)
	if f.Italic() {
		buf.WriteString(` font-style="italic"`)
	}
	buf.WriteString(">")
	for _, l := range it.Lines {
		fmt.Fprintf(buf, `<tspan x="%.2f" y="%.2f">%s</tspan>`, l.X, l.Baseline, escape(l.Text))
	}
	buf.WriteString("</text>\n")
}

func renderTrack(buf *bytes.Buffer, o Overlay, clips map[Rect]string) {
	t := o.Track
	buf.WriteString(`  <g class="scrollbar"`)
	if o.Clip != nil {
		fmt.Fprintf(buf, ` clip-path="url(#%s)"`, clips[*o.Clip])
	}
	buf.WriteString(">\n")

	track, trackOpacity := render.TrackColor.SVG()
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="%s"/>`+"\n",
		t.Origin.X, t.Origin.Y, t.Size.Width, t.Size.Height, track, trackOpacity)

	thumb, thumbOpacity := render.ThumbColor.SVG()
	x, y, w, h := thumbRect(t)
	fmt.Fprintf(buf, `    <rect class="thumb" x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%.2f" fill="%s" fill-opacity="%s"/>`+"\n",
		x, y, w, h, min(w, h)/2, thumb, thumbOpacity)
	buf.WriteString("  </g>\n")
}

func thumbRect(t scroll.Track) (x, y, w, h float64) {
	if t.Axis == box.Horizontal {
		return t.ThumbStart, t.Origin.Y, t.ThumbLength, t.Size.Height
	}
	return t.Origin.X, t.ThumbStart, t.Size.Width, t.ThumbLength
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
