// Package cli implements the visualencer command-line interface.
//
// The CLI compiles node graph files into Sequencer scripts, renders graph
// previews, browses the node catalog, manages stored graphs and the script
// cache, and runs the HTTP API server. It is built using cobra and logs
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compile: Compile a graph file (JSON, YAML or TOML) into script text
//   - preview: Render a graph as DOT or SVG
//   - nodes: List, show or interactively browse node types
//   - graphs: Manage the named graph store
//   - serve: Run the HTTP API
//   - cache: Manage the compiled script cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Compiler
// diagnostics are logged at warn level.
//
// # Example
//
//	import "github.com/matzehuels/visualencer/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Compiled fireball.yaml (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
