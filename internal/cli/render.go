package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxflow/pkg/pipeline"
)

// renderCommand runs the full pipeline and writes one file per format.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
		rf     renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a box document to SVG, PNG, PDF, JSON or a tree diagram",
		Long: `Render a box document.

The document is laid out and drawn once per requested format:
  svg   vector drawing of the boxes, text and scrollbars
  png   raster drawing, scaled by --scale
  pdf   the SVG converted with rsvg-convert
  json  the geometry snapshot
  dot   the box tree as a Graphviz graph
  tree  the box tree diagram rendered to SVG

Outputs are named after the input, or after -o with the format's extension.`,
		Example: `  boxflow render page.json
  boxflow render page.toml -f svg,png --scale 3 -o build/page
  boxflow render page.json -f tree --detailed`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			lf.apply(cmd, &opts)
			rf.apply(cmd, &opts)
			return c.runRender(cmd.Context(), args[0], output, lf.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input path without extension)")
	lf.register(cmd)
	rf.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, input, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(output, input)
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	printSuccess("Rendered %s", input)
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return fmt.Errorf("missing %s artifact", format)
		}
		path := base + pipeline.Extension(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path, len(data))
	}
	printStats(result.Stats.NodeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printOverflow(result.Layout.Snapshot, input)
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(opts.Formats)))
	return nil
}

// basePath returns the output path without extension. Without -o it is the
// input path minus its extension; a known artifact extension on -o is
// stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	if strings.HasSuffix(output, pipeline.Extension(pipeline.FormatTree)) {
		return strings.TrimSuffix(output, pipeline.Extension(pipeline.FormatTree))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
