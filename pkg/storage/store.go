// Package storage persists named graph documents.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON file per graph in a local directory, used by the
//     CLI and single-instance servers
//   - [MongoStore]: a MongoDB collection keyed by graph name, used when
//     several API servers share one graph library
//
// Names are validated with errors.ValidateGraphName before they reach a
// backend. Missing graphs are reported with the GRAPH_NOT_FOUND code and
// match [ErrNotFound] under errors.Is from the standard library.
package storage

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
)

// ErrNotFound is returned when a graph does not exist.
var ErrNotFound = stderrors.New("graph not found")

// Store is a named graph library.
type Store interface {
	// Get returns the stored document. The caller owns the result.
	Get(ctx context.Context, name string) (*graph.Document, error)

	// Put validates doc and stores it under name, replacing any previous
	// version. The stored document's Name is set to name.
	Put(ctx context.Context, name string, doc *graph.Document) error

	// Delete removes the named graph.
	Delete(ctx context.Context, name string) error

	// List returns a summary of every stored graph, sorted by name.
	List(ctx context.Context) ([]Info, error)

	Close() error
}

// Info summarizes a stored graph.
type Info struct {
	Name      string    `json:"name"`
	Nodes     int       `json:"nodes"`
	UpdatedAt time.Time `json:"updated_at"`
}

func notFound(name string) error {
	return errors.Wrap(errors.ErrCodeGraphNotFound, ErrNotFound, "graph %q", name)
}

// prepare validates name and doc and returns the copy to persist.
func prepare(name string, doc *graph.Document) (*graph.Document, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	out := doc.Clone()
	out.Name = name
	graph.AssignIDs(out)
	if err := graph.Validate(out); err != nil {
		return nil, err
	}
	return out, nil
}
