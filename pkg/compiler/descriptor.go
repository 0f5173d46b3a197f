package compiler

import (
	"slices"

	"github.com/matzehuels/visualencer/pkg/errors"
	"github.com/matzehuels/visualencer/pkg/graph"
)

// Role determines which compile entry point a node type provides and where
// its nodes may appear in a graph.
type Role string

const (
	// RoleRoot nodes anchor a family and open a method chain.
	RoleRoot Role = "root"
	// RoleChild nodes attach to a root and add continuation lines.
	RoleChild Role = "child"
	// RoleUtility nodes stand alone and emit complete statements.
	RoleUtility Role = "utility"
)

// FieldKind is the editor widget a field is edited with.
type FieldKind string

const (
	FieldNumber FieldKind = "number"
	FieldString FieldKind = "string"
	FieldBool   FieldKind = "bool"
	FieldText   FieldKind = "text" // multi-line free text or code
	FieldEnum   FieldKind = "enum" // one of Options
)

// Field describes one configuration option of a node type.
// Default seeds newly created nodes; compile functions never read it.
type Field struct {
	Name    string    `json:"name"`
	Kind    FieldKind `json:"kind"`
	Default any       `json:"default,omitempty"`
	Options []string  `json:"options,omitempty"`
}

// RootCompiler compiles a root node's opening lines into a fresh Block.
type RootCompiler interface {
	CompileRoot(n *graph.Node, b *Block, ctx *Context)
}

// ChildCompiler compiles an attached child into its root's Block.
type ChildCompiler interface {
	CompileChild(n *graph.Node, b *Block, ctx *Context)
}

// UtilityCompiler compiles a standalone node into the Context.
type UtilityCompiler interface {
	Compile(n *graph.Node, ctx *Context)
}

// RootFunc adapts a function to RootCompiler.
type RootFunc func(n *graph.Node, b *Block, ctx *Context)

// CompileRoot calls f(n, b, ctx).
func (f RootFunc) CompileRoot(n *graph.Node, b *Block, ctx *Context) { f(n, b, ctx) }

// ChildFunc adapts a function to ChildCompiler.
type ChildFunc func(n *graph.Node, b *Block, ctx *Context)

// CompileChild calls f(n, b, ctx).
func (f ChildFunc) CompileChild(n *graph.Node, b *Block, ctx *Context) { f(n, b, ctx) }

// UtilityFunc adapts a function to UtilityCompiler.
type UtilityFunc func(n *graph.Node, ctx *Context)

// Compile calls f(n, ctx).
func (f UtilityFunc) Compile(n *graph.Node, ctx *Context) { f(n, ctx) }

// Descriptor defines the behavior of one node type.
//
// Label, Category and Description are presentation-only. Family is set on
// roots and names the family they anchor; Families is set on children and
// lists the root families they may attach to. Exactly one of Root, Child
// and Utility is set, matching Role.
type Descriptor struct {
	// Type is the registry key (e.g., "effect", "atLocation"). Case-sensitive.
	Type string

	Label       string
	Category    string
	Description string

	Role     Role
	Family   string
	Families []string

	// Fields lists the configurable options in editor order.
	Fields []Field

	Root    RootCompiler
	Child   ChildCompiler
	Utility UtilityCompiler
}

// Accepts reports whether a child descriptor may attach under family.
func (d *Descriptor) Accepts(family string) bool {
	return d.Role == RoleChild && family != "" && slices.Contains(d.Families, family)
}

// DefaultConfig returns a new configuration seeded from Fields.
// Each call returns an independent map.
func (d *Descriptor) DefaultConfig() graph.Config {
	cfg := make(graph.Config, len(d.Fields))
	for _, f := range d.Fields {
		if f.Default != nil {
			cfg[f.Name] = f.Default
		}
	}
	return cfg
}

// Validate checks that the descriptor can be registered under typeID.
func (d *Descriptor) Validate(typeID string) error {
	if err := errors.ValidateTypeID(typeID); err != nil {
		return err
	}

	entries := []struct {
		role Role
		set  bool
	}{
		{RoleRoot, d.Root != nil},
		{RoleChild, d.Child != nil},
		{RoleUtility, d.Utility != nil},
	}
	known := false
	for _, e := range entries {
		known = known || e.role == d.Role
	}
	if !known {
		return errors.New(errors.ErrCodeInvalidDescriptor, "%s: unknown role %q", typeID, d.Role)
	}
	for _, e := range entries {
		if e.role == d.Role && !e.set {
			return errors.New(errors.ErrCodeInvalidDescriptor, "%s: %s descriptor has no %s compile function", typeID, d.Role, e.role)
		}
		if e.role != d.Role && e.set {
			return errors.New(errors.ErrCodeInvalidDescriptor, "%s: %s descriptor defines a %s compile function", typeID, d.Role, e.role)
		}
	}

	switch d.Role {
	case RoleRoot:
		if d.Family == "" {
			return errors.New(errors.ErrCodeInvalidDescriptor, "%s: root descriptor has no family", typeID)
		}
	case RoleChild:
		if len(d.Families) == 0 {
			return errors.New(errors.ErrCodeInvalidDescriptor, "%s: child descriptor has no families", typeID)
		}
	}
	return nil
}

// Info is the serializable summary of a descriptor, as served to editors.
type Info struct {
	Type        string       `json:"type"`
	Label       string       `json:"label"`
	Category    string       `json:"category"`
	Description string       `json:"description,omitempty"`
	Role        Role         `json:"role"`
	Family      string       `json:"family,omitempty"`
	Families    []string     `json:"families,omitempty"`
	Fields      []Field      `json:"fields"`
	Defaults    graph.Config `json:"defaults"`
}

// Info returns the descriptor's summary.
func (d *Descriptor) Info() Info {
	fields := d.Fields
	if fields == nil {
		fields = []Field{}
	}
	return Info{
		Type:        d.Type,
		Label:       d.Label,
		Category:    d.Category,
		Description: d.Description,
		Role:        d.Role,
		Family:      d.Family,
		Families:    d.Families,
		Fields:      fields,
		Defaults:    d.DefaultConfig(),
	}
}
