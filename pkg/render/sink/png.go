package sink

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/fonts"
	"github.com/matzehuels/boxflow/pkg/render"
	"github.com/matzehuels/boxflow/pkg/scroll"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style      Style
	scale      float64
	images     map[string][]byte
	scrollbars bool
	thickness  float64

	dc    *gg.Context
	faces map[box.Font]font.Face
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGStyle sets the paint style.
func WithPNGStyle(s Style) PNGOption { return func(r *pngRenderer) { r.style = s } }

// WithPNGImages supplies encoded image data by node ID.
func WithPNGImages(images map[string][]byte) PNGOption {
	return func(r *pngRenderer) { r.images = images }
}

// WithoutPNGScrollbars leaves scrollbar tracks out.
func WithoutPNGScrollbars() PNGOption { return func(r *pngRenderer) { r.scrollbars = false } }

// RenderPNG rasterizes the snapshot. Everything is drawn in device pixels;
// faces are created at the scaled size so glyphs stay sharp.
func RenderPNG(s *document.Snapshot, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{style: Painted{}, scale: 2.0, scrollbars: true, thickness: scroll.DefaultThickness}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %v", r.scale)
	}

	sc := BuildScene(s, r.style, r.thickness)
	w := max(1, int(math.Ceil(sc.Width*r.scale)))
	h := max(1, int(math.Ceil(sc.Height*r.scale)))
	r.dc = gg.NewContext(w, h)
	r.faces = make(map[box.Font]font.Face)
	defer r.closeFaces()

	for _, it := range sc.Items {
		r.clip(it.Clip)
		r.drawItem(it)
	}
	if r.scrollbars {
		for _, o := range sc.Overlays {
			r.clip(o.Clip)
			r.drawTrack(o.Track)
		}
	}
	r.dc.ResetClip()

	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// clip replaces the current clip. gg intersects masks and Pop does not
// restore them, so every item starts from ResetClip.
func (r *pngRenderer) clip(c *Rect) {
	r.dc.ResetClip()
	if c == nil {
		return
	}
	r.rect(c.X, c.Y, c.W, c.H)
	r.dc.Clip()
}

func (r *pngRenderer) rect(x, y, w, h float64) {
	s := r.scale
	r.dc.DrawRectangle(x*s, y*s, w*s, h*s)
}

func (r *pngRenderer) drawItem(it Item) {
	g := it.Geometry
	if it.Fill.Visible() {
		r.rect(g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height)
		r.dc.SetColor(it.Fill.NRGBA())
		r.dc.Fill()
	}

	if g.Kind == box.Image {
		r.drawImage(g)
	}

	if it.StrokeWidth > 0 && it.Stroke.Visible() {
		r.rect(g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height)
		r.dc.SetColor(it.Stroke.NRGBA())
		r.dc.SetLineWidth(it.StrokeWidth * r.scale)
		r.dc.Stroke()
	}

	if len(it.Lines) > 0 && it.TextColor.Visible() {
		face := r.face(*g.Font)
		if face == nil {
			return
		}
		r.dc.SetFontFace(face)
		r.dc.SetColor(it.TextColor.NRGBA())
		for _, l := range it.Lines {
			r.dc.DrawString(l.Text, l.X*r.scale, l.Baseline*r.scale)
		}
	}
}

func (r *pngRenderer) drawImage(g document.Geometry) {
	w := int(math.Round(g.Size.Width * r.scale))
	h := int(math.Round(g.Size.Height * r.scale))
	if w <= 0 || h <= 0 {
		return
	}

	src, err := decodeImage(r.images[g.ID])
	if err != nil {
		r.rect(g.Position.X, g.Position.Y, g.Size.Width, g.Size.Height)
		r.dc.SetColor(placeholder.NRGBA())
		r.dc.Fill()
		return
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	r.dc.DrawImage(dst, int(math.Round(g.Position.X*r.scale)), int(math.Round(g.Position.Y*r.scale)))
}

func (r *pngRenderer) drawTrack(t scroll.Track) {
	r.rect(t.Origin.X, t.Origin.Y, t.Size.Width, t.Size.Height)
	r.dc.SetColor(render.TrackColor.NRGBA())
	r.dc.Fill()

	x, y, w, h := thumbRect(t)
	s := r.scale
	r.dc.DrawRoundedRectangle(x*s, y*s, w*s, h*s, min(w, h)*s/2)
	r.dc.SetColor(render.ThumbColor.NRGBA())
	r.dc.Fill()
}

func (r *pngRenderer) face(f box.Font) font.Face {
	if face, ok := r.faces[f]; ok {
		return face
	}
	scaled := f
	scaled.Size *= r.scale
	face, err := fonts.NewFace(scaled)
	if err != nil {
		face = nil
	}
	r.faces[f] = face
	return face
}

func (r *pngRenderer) closeFaces() {
	for _, face := range r.faces {
		if face != nil {
			face.Close()
		}
	}
}

var placeholder = render.MustColor("#cccccc80", render.Transparent)

func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
