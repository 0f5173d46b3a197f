package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/pipeline"
)

// previewCommand creates the preview command for rendering the node graph.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		formatsStr  string
		output      string
		inputFormat string
		noCache     bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "preview [graph-file|-]",
		Short: "Render a node graph as DOT or SVG",
		Long: `Render the node graph itself (not the compiled script) as Graphviz DOT or SVG.

Each root and its attached children are drawn as one cluster in chain order.
Nodes the compiler would skip are outlined in red; --detailed adds every
node's configuration to its label.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Previews = parseFormats(formatsStr)
			if err := pipeline.ValidatePreviewFormats(opts.Previews); err != nil {
				return err
			}
			if output == "-" && len(opts.Previews) > 1 {
				return fmt.Errorf("stdout output supports a single format")
			}
			if err := setInput(&opts, cmd.InOrStdin(), args[0], inputFormat); err != nil {
				return err
			}
			return c.runPreview(cmd.Context(), cmd.OutOrStdout(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", `output file (single format), base path (multiple), or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot (comma-separated)")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: json, yaml, toml (default from extension)")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include node configuration in labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runPreview compiles the graph (for diagnostics) and writes each preview.
func (c *CLI) runPreview(ctx context.Context, stdout io.Writer, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("preview %s: %w", input, err)
	}

	if output == "-" {
		_, err := stdout.Write(result.Previews[opts.Previews[0]])
		return err
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.StatementCount, result.CacheInfo.PreviewHit)
	for _, format := range opts.Previews {
		path := previewPath(input, output, format, len(opts.Previews) > 1)
		if err := os.WriteFile(path, result.Previews[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printDiagnostics(result.Script.Diagnostics)
	return nil
}

// previewPath names the file for one format. A single-format output path
// is used as given; otherwise the extension is replaced by the format.
func previewPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		if input == "-" {
			base = "graph"
		} else {
			base = input
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + format
}

// parseFormats parses the --format flag into a slice of preview formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
