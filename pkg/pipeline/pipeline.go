// Package pipeline provides the load → compile → preview pipeline shared by
// the CLI and the API server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: decode a graph document (JSON, YAML or TOML), assign missing
//     node ids and validate its structure
//  2. Compile: turn the document into Sequencer script text
//  3. Preview: optionally render the node graph as DOT or SVG
//
// Compile and preview results are cached under the document's content
// hash, so an unchanged graph is never compiled twice.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:       "fireball.yaml",
//	    Standalone: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Output)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visualencer/pkg/cache"
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/preview"
)

// Preview format constants.
const (
	FormatDOT = preview.FormatDOT
	FormatSVG = preview.FormatSVG
)

// ValidPreviewFormats is the set of supported preview formats.
var ValidPreviewFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Input: Document wins over Path when both are set.
	Path     string          `json:"-"`
	Format   graph.Format    `json:"format,omitempty"` // decoder for Path; inferred from the extension when empty
	Document *graph.Document `json:"document,omitempty"`

	// Compile options
	Standalone bool `json:"standalone,omitempty"`
	Strict     bool `json:"strict,omitempty"` // fail when the compiler reports diagnostics
	Refresh    bool `json:"refresh,omitempty"`

	// Preview options
	Previews []string `json:"previews,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded, validated graph.
	Document *graph.Document `json:"-"`

	// GraphHash is the content hash of the document.
	GraphHash string `json:"graph_hash"`

	// Script is the compiled result; Output is its rendered text.
	Script *compiler.Script `json:"script"`
	Output string           `json:"output"`

	// Previews contains rendered previews keyed by format.
	Previews map[string][]byte `json:"-"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount       int           `json:"nodes"`
	StatementCount  int           `json:"statements"`
	DiagnosticCount int           `json:"diagnostics"`
	LoadTime        time.Duration `json:"load_ns"`
	CompileTime     time.Duration `json:"compile_ns"`
	PreviewTime     time.Duration `json:"preview_ns"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CompileHit bool `json:"compile_hit"`
	PreviewHit bool `json:"preview_hit"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidatePreviewFormat checks that a preview format is valid.
func ValidatePreviewFormat(format string) error {
	if !ValidPreviewFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid preview format: %q (must be one of: dot, svg)", format)
	}
	return nil
}

// ValidatePreviewFormats checks that all preview formats are valid.
func ValidatePreviewFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidatePreviewFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Document == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document or path is required")
	}
	if o.Path != "" && o.Format == "" {
		o.Format = graph.FormatFromPath(o.Path)
	}
	if err := ValidatePreviewFormats(o.Previews); err != nil {
		return err
	}
	o.Previews = slices.Compact(slices.Sorted(slices.Values(o.Previews)))
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ScriptKeyOpts returns cache key options for compilation.
func (o *Options) ScriptKeyOpts(catalog string) cache.ScriptKeyOpts {
	return cache.ScriptKeyOpts{Standalone: o.Standalone, Catalog: catalog}
}

// PreviewKeyOpts returns cache key options for one preview format.
func (o *Options) PreviewKeyOpts(format string) cache.PreviewKeyOpts {
	if o.Detailed {
		format += "+detailed"
	}
	return cache.PreviewKeyOpts{Format: format}
}
