// Package pipeline provides the decode → layout → render pipeline of boxflow.
//
// The CLI and the HTTP API both run documents through this package so they
// behave the same way: same defaults, same validation, same cache keys.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: read a JSON or TOML box document and build its tree
//  2. Layout: estimate and allocate the tree, capture a geometry snapshot
//  3. Render: draw the snapshot in the requested formats
//
// Layout snapshots and rendered artifacts are cached; each stage can be run
// on its own.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, "page.json", pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatPNG},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Run individual stages:
//
//	doc, err := runner.Decode(ctx, "page.json")
//	l, err := runner.Layout(ctx, doc, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
package pipeline

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxflow/pkg/box"
	"github.com/matzehuels/boxflow/pkg/cache"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/errors"
	"github.com/matzehuels/boxflow/pkg/layout"
	"github.com/matzehuels/boxflow/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultStyle is the paint style.
	DefaultStyle = sink.StylePainted

	// DefaultMeasurer measures text with real font metrics.
	DefaultMeasurer = MeasurerFont
)

// DefaultRootFontSize is the rem base used when neither the options nor the
// document set one.
const DefaultRootFontSize = layout.DefaultRootFontSize

// Measurer names.
const (
	// MeasurerFont measures with the embedded Go fonts.
	MeasurerFont = "font"
	// MeasurerCell measures in terminal cells; one cell is one pixel.
	MeasurerCell = "cell"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatTree = "tree"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatTree: true,
}

// ValidStyles is the set of supported paint styles.
var ValidStyles = map[string]bool{
	sink.StylePainted:   true,
	sink.StyleWireframe: true,
}

// ValidMeasurers is the set of supported measurers.
var ValidMeasurers = map[string]bool{
	MeasurerFont: true,
	MeasurerCell: true,
}

// ContentType returns the MIME type of an artifact format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatTree:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// Extension returns the file extension for an artifact format.
func Extension(format string) string {
	if format == FormatTree {
		return ".tree.svg"
	}
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Width and Height override the document viewport when
	// both are set; RootFontSize overrides the document rem base.
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	RootFontSize float64 `json:"root_font_size,omitempty"`
	Measurer     string  `json:"measurer,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	EmbedFonts bool     `json:"embed_fonts,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // geometry in dot/tree labels
	Scrollbars *bool    `json:"scrollbars,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded document.
	Document *document.Document

	// DocumentHash is the content hash of the document.
	DocumentHash string

	// Layout is the laid-out document.
	Layout *Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	DecodeTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the snapshot came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

func names(set map[string]bool) string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return strings.Join(out, ", ")
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, names(ValidFormats))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid style: %q (must be one of: %s)", style, names(ValidStyles))
	}
	return nil
}

// ValidateMeasurer checks that a measurer name is valid.
func ValidateMeasurer(m string) error {
	if !ValidMeasurers[m] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid measurer: %q (must be one of: %s)", m, names(ValidMeasurers))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and validates the options for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Measurer == "" {
		o.Measurer = DefaultMeasurer
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport must not be negative")
	}
	if (o.Width > 0) != (o.Height > 0) {
		return errors.New(errors.ErrCodeInvalidViewport, "width and height must be set together")
	}
	if o.Width > 0 {
		if err := errors.ValidateViewport(o.Width, o.Height); err != nil {
			return err
		}
	}
	if o.RootFontSize < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "root font size must not be negative")
	}
	return ValidateMeasurer(o.Measurer)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	return ValidateStyle(o.Style)
}

// ShowScrollbars reports whether scrollbar tracks are drawn. Default true.
func (o *Options) ShowScrollbars() bool {
	return o.Scrollbars == nil || *o.Scrollbars
}

// Viewport returns the viewport to lay doc out in.
func (o *Options) Viewport(doc *document.Document) box.Size {
	if o.Width > 0 && o.Height > 0 {
		return box.Size{Width: o.Width, Height: o.Height}
	}
	return doc.Viewport
}

// RemBase returns the rem base to lay doc out with.
func (o *Options) RemBase(doc *document.Document) float64 {
	switch {
	case o.RootFontSize > 0:
		return o.RootFontSize
	case doc.RootFontSize > 0:
		return doc.RootFontSize
	}
	return DefaultRootFontSize
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts(doc *document.Document) cache.LayoutKeyOpts {
	vp := o.Viewport(doc)
	return cache.LayoutKeyOpts{
		Width:        vp.Width,
		Height:       vp.Height,
		RootFontSize: o.RemBase(doc),
		Measurer:     o.Measurer,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		k.Style = o.Style
		k.HideScrollbars = !o.ShowScrollbars()
		k.EmbedFonts = o.EmbedFonts && format == FormatSVG
		if format == FormatPNG {
			k.Scale = o.Scale
		}
	case FormatDOT, FormatTree:
		k.Detailed = o.Detailed
	}
	return k
}
