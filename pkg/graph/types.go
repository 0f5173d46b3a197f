package graph

import (
	"slices"
	"strings"

	"github.com/matzehuels/visualencer/pkg/script"
)

// =============================================================================
// Document - Node Graph Serialization
// =============================================================================

// Document is the canonical serialization format for node graphs.
// Used for graph files, API requests, storage, and cache keys.
type Document struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" bson:"name,omitempty"`
	Nodes []Node `json:"nodes" yaml:"nodes" toml:"nodes" bson:"nodes" validate:"dive"`
}

// Node is one configurable unit of the graph.
//
// A node with a Parent is a child attached to that root; Order positions it
// among its siblings. X and Y are canvas coordinates kept for round-trip
// fidelity with the editor; the compiler ignores them.
type Node struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty" bson:"id,omitempty" validate:"max=128"`
	Type   string  `json:"type" yaml:"type" toml:"type" bson:"type" validate:"required,typeid"`
	Parent string  `json:"parent,omitempty" yaml:"parent,omitempty" toml:"parent,omitempty" bson:"parent,omitempty" validate:"max=128"`
	Order  int     `json:"order,omitempty" yaml:"order,omitempty" toml:"order,omitempty" bson:"order,omitempty"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty" bson:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty" bson:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty" bson:"y,omitempty"`
	Config Config  `json:"config,omitempty" yaml:"config,omitempty" toml:"config,omitempty" bson:"config,omitempty"`
}

// IsAttached reports whether the node hangs off a root.
func (n *Node) IsAttached() bool { return n.Parent != "" }

// DisplayLabel returns the label if set, otherwise the ID, otherwise the type.
func (n *Node) DisplayLabel() string {
	switch {
	case n.Label != "":
		return n.Label
	case n.ID != "":
		return n.ID
	default:
		return n.Type
	}
}

// Node returns the node with the given id.
func (d *Document) Node(id string) (*Node, bool) {
	if id == "" {
		return nil, false
	}
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// TopLevel returns the unattached nodes in document order.
func (d *Document) TopLevel() []*Node {
	var out []*Node
	for i := range d.Nodes {
		if !d.Nodes[i].IsAttached() {
			out = append(out, &d.Nodes[i])
		}
	}
	return out
}

// Children returns the nodes attached to parent, sorted by Order.
// Siblings with equal Order keep document order.
func (d *Document) Children(parent string) []*Node {
	if parent == "" {
		return nil
	}
	var out []*Node
	for i := range d.Nodes {
		if d.Nodes[i].Parent == parent {
			out = append(out, &d.Nodes[i])
		}
	}
	slices.SortStableFunc(out, func(a, b *Node) int { return a.Order - b.Order })
	return out
}

// Clone returns a deep copy of the document. Config maps are copied so the
// clone can be mutated without affecting the original.
func (d *Document) Clone() *Document {
	out := &Document{Name: d.Name, Nodes: make([]Node, len(d.Nodes))}
	for i, n := range d.Nodes {
		n.Config = n.Config.Clone()
		out.Nodes[i] = n
	}
	return out
}

// =============================================================================
// Config - Node Options
// =============================================================================

// Config maps option names to primitive values (numbers, strings, booleans).
// It is partial: descriptors apply per-field fallbacks inline, so every
// accessor is total and never fails.
type Config map[string]any

// Get returns the raw value stored under key.
func (c Config) Get(key string) any {
	if c == nil {
		return nil
	}
	return c[key]
}

// Num returns the value coerced to a finite number, 0 otherwise.
func (c Config) Num(key string) float64 {
	return script.Number(c.Get(key))
}

// Float returns the numeric value and whether the option is present and
// finite. Absent, null and empty-string values are not present.
func (c Config) Float(key string) (float64, bool) {
	if !c.Present(key) {
		return 0, false
	}
	return script.Finite(c.Get(key))
}

// Str returns the value converted to text; absent values are "".
func (c Config) Str(key string) string {
	return script.String(c.Get(key))
}

// StrOr returns Str(key), or fallback when that is empty.
func (c Config) StrOr(key, fallback string) string {
	if s := c.Str(key); s != "" {
		return s
	}
	return fallback
}

// Trim returns Str(key) with surrounding whitespace removed.
func (c Config) Trim(key string) string {
	return strings.TrimSpace(c.Str(key))
}

// Bool reports whether the value is truthy.
func (c Config) Bool(key string) bool {
	return script.Truthy(c.Get(key))
}

// BoolOr returns Bool(key), or fallback when the option is absent.
func (c Config) BoolOr(key string, fallback bool) bool {
	if v := c.Get(key); v != nil {
		return script.Truthy(v)
	}
	return fallback
}

// Present reports whether the option holds a value other than null or "".
func (c Config) Present(key string) bool {
	switch v := c.Get(key).(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

// Clone returns a shallow copy; values are primitives so this is a full copy.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
