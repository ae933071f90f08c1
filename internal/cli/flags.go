package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxflow/pkg/pipeline"
)

// layoutFlags are shared by every command that lays out a document. Only
// flags given on the command line override the config file.
type layoutFlags struct {
	width    float64
	height   float64
	rem      float64
	measurer string
	noCache  bool
	refresh  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.width, "width", 0, "viewport width (default: the document's)")
	fl.Float64Var(&f.height, "height", 0, "viewport height (default: the document's)")
	fl.Float64Var(&f.rem, "rem", 0, "root font size in px (default: the document's, else 16)")
	fl.StringVar(&f.measurer, "measurer", pipeline.DefaultMeasurer, "text measurer: font (default), cell")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("width") {
		opts.Width = f.width
	}
	if fl.Changed("height") {
		opts.Height = f.height
	}
	if fl.Changed("rem") {
		opts.RootFontSize = f.rem
	}
	if fl.Changed("measurer") {
		opts.Measurer = f.measurer
	}
	opts.Refresh = f.refresh
}

// renderFlags are the artifact options of the render command.
type renderFlags struct {
	formats      string
	style        string
	scale        float64
	embedFonts   bool
	detailed     bool
	noScrollbars bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.formats, "format", "f", "", "output formats, comma-separated: svg, png, pdf, json, dot, tree")
	fl.StringVar(&f.style, "style", pipeline.DefaultStyle, "paint style: painted (default), wireframe")
	fl.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	fl.BoolVar(&f.embedFonts, "embed-fonts", false, "embed fonts in SVG output")
	fl.BoolVar(&f.detailed, "detailed", false, "show geometry in dot and tree labels")
	fl.BoolVar(&f.noScrollbars, "no-scrollbars", false, "do not draw scrollbar tracks")
}

func (f *renderFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fl := cmd.Flags()
	if fl.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if fl.Changed("style") {
		opts.Style = f.style
	}
	if fl.Changed("scale") {
		opts.Scale = f.scale
	}
	if fl.Changed("embed-fonts") {
		opts.EmbedFonts = f.embedFonts
	}
	opts.Detailed = f.detailed
	if fl.Changed("no-scrollbars") {
		show := !f.noScrollbars
		opts.Scrollbars = &show
	}
}
