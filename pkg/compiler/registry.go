package compiler

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
)

// Registry is a catalog of node type descriptors keyed by type id.
//
// Registries are plain values: a compiler owns the one it was built with,
// and tests can build as many independent catalogs as they like.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Descriptor
	revs  map[string]int
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]Descriptor),
		revs:  make(map[string]int),
	}
}

// Register inserts d under typeID, replacing any previous descriptor for
// the same id in full. Later registrations win, which lets extensions refine
// built-in node types.
//
// The descriptor's Type is set to typeID. Returns an INVALID_DESCRIPTOR
// error if the id is malformed or the compile entry point does not match
// the role.
func (r *Registry) Register(typeID string, d Descriptor) error {
	if err := d.Validate(typeID); err != nil {
		return err
	}
	d.Type = typeID

	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[typeID] = d
	r.revs[typeID]++
	return nil
}

// MustRegister is like Register but panics on error.
// Intended for built-in catalogs assembled at init time.
func (r *Registry) MustRegister(typeID string, d Descriptor) {
	if err := r.Register(typeID, d); err != nil {
		panic(err)
	}
}

// Get returns the descriptor registered under typeID.
func (r *Registry) Get(typeID string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[typeID]
	return d, ok
}

// Lookup is like Get but returns an UNKNOWN_NODE_TYPE error when missing.
func (r *Registry) Lookup(typeID string) (Descriptor, error) {
	d, ok := r.Get(typeID)
	if !ok {
		return Descriptor{}, errors.New(errors.ErrCodeUnknownNodeType, "unknown node type: %q", typeID)
	}
	return d, nil
}

// DefaultConfig returns a fresh default configuration for typeID, or an
// empty map when the type is unknown or declares no defaults.
func (r *Registry) DefaultConfig(typeID string) graph.Config {
	d, ok := r.Get(typeID)
	if !ok {
		return graph.Config{}
	}
	return d.DefaultConfig()
}

// Types returns all registered type ids in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for id := range r.types {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Descriptors returns all registered descriptors sorted by type id.
func (r *Registry) Descriptors() []Descriptor {
	ids := r.Types()
	out := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.Get(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Families returns every family anchored by a registered root, sorted.
func (r *Registry) Families() []string {
	seen := make(map[string]bool)
	for _, d := range r.Descriptors() {
		if d.Role == RoleRoot {
			seen[d.Family] = true
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Revision returns how many times typeID has been registered. Built-in
// types start at 1; every override bumps it.
func (r *Registry) Revision(typeID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revs[typeID]
}

// Fingerprint returns the hex SHA-256 of every registered descriptor's
// summary and revision, in type id order. Any registration, override
// included, changes it; equal catalogs built the same way agree on it.
func (r *Registry) Fingerprint() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.types))
	for id := range r.types {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		d := r.types[id]
		info, _ := json.Marshal(d.Info())
		fmt.Fprintf(h, "%s#%d\n%s\n", id, r.revs[id], info)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}
