package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/pipeline"
)

// layoutCommand computes a layout and writes its geometry snapshot.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute the layout of a box document",
		Long: `Compute the layout of a box document.

The document is a JSON or TOML box tree. The output is a geometry snapshot:
position, size, natural size, text lines and scrollbar state of every node,
as JSON. Use "-o -" to write it to stdout.

Results are cached, so laying out an unchanged document again is instant.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			lf.apply(cmd, &opts)
			return c.runLayout(cmd.Context(), args[0], output, lf.noCache, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	lf.register(cmd)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, noCache bool, opts pipeline.Options) error {
	runner, err := c.newRunner(ctx, noCache, "")
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	doc, err := runner.Decode(ctx, input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	l, cached, err := runner.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var buf bytes.Buffer
	if err := document.WriteSnapshot(l.Snapshot, &buf); err != nil {
		return err
	}

	if output == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if output == "" {
		output = basePath("", input) + ".layout.json"
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output, buf.Len())
	printStats(doc.Count(), cached)
	printOverflow(l.Snapshot, input)
	fmt.Fprintln(stdout)
	printNextStep("Render", appName+" render "+input)
	return nil
}
