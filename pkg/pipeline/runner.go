package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/visualencer/pkg/buildinfo"
	"github.com/matzehuels/visualencer/pkg/cache"
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/compiler/nodes"
	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/observability"
	"github.com/matzehuels/visualencer/pkg/preview"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching and diagnostic logging behave the
// same everywhere.
//
// The Runner stores no pipeline results. Multiple goroutines can safely use
// the same Runner with different options, provided the registry is not
// modified concurrently.
type Runner struct {
	Registry *compiler.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner over the built-in node catalog.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: nodes.NewRegistry(),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete load → compile → preview pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = len(doc.Nodes)

	result.GraphHash, err = graph.Hash(doc)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("loaded graph",
		"name", doc.Name,
		"nodes", len(doc.Nodes),
		"duration", result.Stats.LoadTime)

	// Stage 2: Compile
	compileStart := time.Now()
	script, hit := r.CompileWithCacheInfo(ctx, doc, result.GraphHash, opts)
	result.Script = script
	result.Output = script.String()
	result.Stats.CompileTime = time.Since(compileStart)
	result.Stats.StatementCount = len(script.Statements)
	result.Stats.DiagnosticCount = len(script.Diagnostics)
	result.CacheInfo.CompileHit = hit

	opts.Logger.Info("compiled graph",
		"statements", len(script.Statements),
		"diagnostics", len(script.Diagnostics),
		"cached", hit,
		"duration", result.Stats.CompileTime)

	if opts.Strict && len(script.Diagnostics) > 0 {
		return result, errors.New(errors.ErrCodeInvalidGraph,
			"%d node(s) dropped during compilation, first: %s", len(script.Diagnostics), script.Diagnostics[0])
	}

	// Stage 3: Preview
	if len(opts.Previews) > 0 {
		previewStart := time.Now()
		previews, hit, err := r.PreviewWithCacheInfo(ctx, doc, result.GraphHash, script.Diagnostics, opts)
		if err != nil {
			return nil, err
		}
		result.Previews = previews
		result.Stats.PreviewTime = time.Since(previewStart)
		result.CacheInfo.PreviewHit = hit

		opts.Logger.Info("rendered previews",
			"formats", opts.Previews,
			"duration", result.Stats.PreviewTime)
	}

	return result, nil
}

// Compile compiles doc without consulting the cache. Diagnostics are
// logged at warn level as they are produced.
func (r *Runner) Compile(ctx context.Context, doc *graph.Document, opts Options) *compiler.Script {
	r.applyLogger(&opts)
	c := compiler.New(r.Registry,
		compiler.WithStandalone(opts.Standalone),
		compiler.WithDiagnosticHandler(func(d compiler.Diagnostic) { logDiagnostic(opts.Logger, d) }),
	)

	start := time.Now()
	script := c.Compile(doc)
	nodeCount := 0
	if doc != nil {
		nodeCount = len(doc.Nodes)
	}
	observability.Pipeline().OnCompile(ctx, nodeCount, len(script.Statements), len(script.Diagnostics), time.Since(start))
	return script
}

// CompileWithCacheInfo compiles doc, reusing a cached script for the same
// graph hash, options and catalog. It reports whether the cache was hit.
// Cache failures degrade to a fresh compile.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, doc *graph.Document, graphHash string, opts Options) (*compiler.Script, bool) {
	r.applyLogger(&opts)
	key := r.Keyer.ScriptKey(graphHash, opts.ScriptKeyOpts(r.Catalog()))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var script compiler.Script
			if err := json.Unmarshal(data, &script); err == nil {
				observability.Cache().OnCacheHit(ctx, "script")
				for _, d := range script.Diagnostics {
					logDiagnostic(opts.Logger, d)
				}
				return &script, true
			}
		} else if err != nil {
			opts.Logger.Debug("script cache lookup failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "script")
	}

	script := r.Compile(ctx, doc, opts)

	if data, err := json.Marshal(script); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.ScriptTTL); err != nil {
			opts.Logger.Debug("script cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "script", len(data))
		}
	}
	return script, false
}

// PreviewWithCacheInfo renders every format in opts.Previews. It reports a
// hit only when all formats came from the cache.
func (r *Runner) PreviewWithCacheInfo(ctx context.Context, doc *graph.Document, graphHash string, diags []compiler.Diagnostic, opts Options) (map[string][]byte, bool, error) {
	if err := ValidatePreviewFormats(opts.Previews); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	hash := cache.Hash([]byte(graphHash + r.Catalog()))

	previews := make(map[string][]byte, len(opts.Previews))
	if !opts.Refresh {
		for _, format := range opts.Previews {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.PreviewKey(hash, opts.PreviewKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			previews[format] = data
		}
		if len(previews) == len(opts.Previews) {
			observability.Cache().OnCacheHit(ctx, "preview")
			return previews, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "preview")
	}

	dot := preview.ToDOT(doc, r.Registry, preview.Options{Detailed: opts.Detailed, Diagnostics: diags})
	for _, format := range opts.Previews {
		start := time.Now()
		data, err := preview.Render(ctx, dot, format)
		observability.Pipeline().OnPreview(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		previews[format] = data
		if err := r.Cache.Set(ctx, r.Keyer.PreviewKey(hash, opts.PreviewKeyOpts(format)), data, cache.PreviewTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "preview", len(data))
		}
	}
	return previews, false, nil
}

// Catalog returns a short fingerprint of the registry and the build
// version. It is part of every cache key, so registering or overriding a
// node type, or upgrading the binary, invalidates cached scripts.
func (r *Runner) Catalog() string {
	return cache.Hash([]byte(r.Registry.Fingerprint() + "\n" + buildinfo.Version))[:16]
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func logDiagnostic(logger *log.Logger, d compiler.Diagnostic) {
	logger.Warn(d.Message, "kind", d.Kind, "node", d.Node, "type", d.Type)
}
