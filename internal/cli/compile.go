package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/pipeline"
)

// compileOpts holds the command-line flags for the compile command.
type compileOpts struct {
	output  string // output file; stdout when empty
	format  string // input format override: json, yaml, toml
	noCache bool   // bypass the script cache
	jsonOut bool   // emit the structured script instead of text
}

// compileCommand creates the compile command.
func (c *CLI) compileCommand() *cobra.Command {
	var flags compileOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "compile [graph-file|-]",
		Short: "Compile a node graph into a Sequencer script",
		Long: `Compile a node graph into Sequencer fluent-API script text.

The graph is read from a JSON, YAML or TOML file (chosen by extension, or
--input-format), or from stdin when the argument is "-". Nodes the compiler
cannot use are skipped and reported as warnings; --strict turns them into
an error.

Results are cached locally, keyed by the graph's content hash.`,
		Example: `  visualencer compile fireball.yaml
  visualencer compile fireball.yaml --standalone -o fireball.js
  cat graph.json | visualencer compile -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("standalone") {
				opts.Standalone = c.cfg().Standalone
			}
			return c.runCompile(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&flags.format, "input-format", "", "input format: json, yaml, toml (default from extension)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the structured script as JSON")
	cmd.Flags().BoolVar(&opts.Standalone, "standalone", false, "wrap the script with sequence construction and play()")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when any node is skipped")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompile even when a cached script exists")

	return cmd
}

// runCompile loads the graph, compiles it and writes the script.
func (c *CLI) runCompile(ctx context.Context, stdin io.Reader, stdout io.Writer, input string, opts pipeline.Options, flags compileOpts) error {
	if err := setInput(&opts, stdin, input, flags.format); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return fmt.Errorf("compile %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Compiled %s", input))

	text := result.Output + "\n"
	if flags.jsonOut {
		data, err := json.MarshalIndent(result.Script, "", "  ")
		if err != nil {
			return err
		}
		text = string(data) + "\n"
	}

	if flags.output == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := os.WriteFile(flags.output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	printSuccess("Compiled %s", input)
	printStats(result.Stats.NodeCount, result.Stats.StatementCount, result.CacheInfo.CompileHit)
	printFile(flags.output)
	printDiagnostics(result.Script.Diagnostics)
	return nil
}

// setInput points opts at a file, or decodes stdin when input is "-".
func setInput(opts *pipeline.Options, stdin io.Reader, input, format string) error {
	if format != "" {
		f, err := graph.ParseFormat(format)
		if err != nil {
			return err
		}
		opts.Format = f
	}
	if input != "-" {
		opts.Path = input
		return nil
	}
	doc, err := graph.Read(stdin, opts.Format)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	opts.Document = doc
	return nil
}
