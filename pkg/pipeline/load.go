package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/observability"
)

// Load returns the document named by opts, with missing node ids assigned,
// after structural validation. An inline Document is cloned first so the
// caller's value is never modified.
func Load(ctx context.Context, opts Options) (*graph.Document, error) {
	start := time.Now()
	source := opts.Path
	if opts.Document != nil {
		source = "inline"
	}

	doc, err := load(opts)
	nodes := 0
	if doc != nil {
		nodes = len(doc.Nodes)
	}
	observability.Pipeline().OnLoad(ctx, source, nodes, time.Since(start), err)
	return doc, err
}

func load(opts Options) (*graph.Document, error) {
	var doc *graph.Document
	if opts.Document != nil {
		doc = opts.Document.Clone()
	} else {
		var err error
		doc, err = readPath(opts)
		if err != nil {
			return nil, err
		}
	}

	if n := graph.AssignIDs(doc); n > 0 && opts.Logger != nil {
		opts.Logger.Debug("assigned node ids", "count", n)
	}
	if err := graph.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func readPath(opts Options) (*graph.Document, error) {
	if opts.Format == "" || opts.Format == graph.FormatFromPath(opts.Path) {
		return graph.ReadFile(opts.Path)
	}
	f, err := os.Open(opts.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Path)
		}
		return nil, err
	}
	defer f.Close()
	return graph.Read(f, opts.Format)
}
