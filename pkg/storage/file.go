package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
)

const fileExt = ".json"

// FileStore keeps each graph as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based graph store.
// If baseDir is empty, defaults to ~/.config/visualencer/graphs/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "visualencer", "graphs")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create graph dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) graphPath(name string) string {
	return filepath.Join(s.baseDir, name+fileExt)
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, name string) (*graph.Document, error) {
	if err := errors.ValidateGraphName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.graphPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read graph %q", name)
	}
	defer f.Close()
	return graph.Read(f, graph.FormatJSON)
}

// Put implements Store. The file is replaced atomically.
func (s *FileStore) Put(_ context.Context, name string, doc *graph.Document) error {
	out, err := prepare(name, doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.baseDir, ".graph-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write graph %q", name)
	}
	defer os.Remove(tmp.Name())

	if err := graph.Write(out, tmp, graph.FormatJSON); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write graph %q", name)
	}
	if err := os.Rename(tmp.Name(), s.graphPath(name)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write graph %q", name)
	}
	return nil
}

// Delete implements Store.
func (s *FileStore) Delete(_ context.Context, name string) error {
	if err := errors.ValidateGraphName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.graphPath(name)); err != nil {
		if os.IsNotExist(err) {
			return notFound(name)
		}
		return errors.Wrap(errors.ErrCodeStorage, err, "remove graph %q", name)
	}
	return nil
}

// List implements Store. Files that fail to decode are skipped.
func (s *FileStore) List(_ context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read graph dir")
	}

	var out []Info
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), fileExt)
		if entry.IsDir() || !ok || strings.HasPrefix(name, ".") {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		f, err := os.Open(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		doc, err := graph.Read(f, graph.FormatJSON)
		f.Close()
		if err != nil {
			continue
		}
		out = append(out, Info{Name: name, Nodes: len(doc.Nodes), UpdatedAt: fi.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for graph files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
