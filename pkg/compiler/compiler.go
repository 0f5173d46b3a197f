package compiler

import (
	"fmt"

	"github.com/matzehuels/visualencer/pkg/graph"
)

// Options configures a Compiler.
type Options struct {
	// Standalone wraps the output in sequence construction and play calls
	// so it can be pasted into a macro as-is.
	Standalone bool

	// OnDiagnostic, if set, receives every diagnostic as it is produced.
	OnDiagnostic DiagnosticHandler
}

// Option mutates Options.
type Option func(*Options)

// WithStandalone enables or disables standalone framing.
func WithStandalone(on bool) Option {
	return func(o *Options) { o.Standalone = on }
}

// WithDiagnosticHandler installs h as the diagnostic callback.
func WithDiagnosticHandler(h DiagnosticHandler) Option {
	return func(o *Options) { o.OnDiagnostic = h }
}

// Compiler compiles documents against one registry. It is stateless
// between calls and safe for concurrent use.
type Compiler struct {
	reg  *Registry
	opts Options
}

// New returns a Compiler for reg. A nil registry behaves like an empty one.
func New(reg *Registry, opts ...Option) *Compiler {
	if reg == nil {
		reg = NewRegistry()
	}
	c := &Compiler{reg: reg}
	for _, o := range opts {
		o(&c.opts)
	}
	return c
}

// Registry returns the catalog the compiler was built with.
func (c *Compiler) Registry() *Registry { return c.reg }

// Compile produces the script for doc. It never fails: nodes that cannot
// contribute are skipped and reported in Script.Diagnostics.
func (c *Compiler) Compile(doc *graph.Document) *Script {
	p := &pass{
		reg:    c.reg,
		ctx:    NewContext(),
		doc:    doc,
		script: &Script{Standalone: c.opts.Standalone},
		notify: c.opts.OnDiagnostic,
	}
	if doc != nil {
		p.run()
	}
	return p.script
}

// pass is the state of one Compile call.
type pass struct {
	reg    *Registry
	ctx    *Context
	doc    *graph.Document
	script *Script
	notify DiagnosticHandler
}

func (p *pass) run() {
	for _, n := range p.doc.TopLevel() {
		d, ok := p.reg.Get(n.Type)
		if !ok {
			p.diag(DiagUnknownType, n, "no descriptor registered")
			continue
		}
		switch d.Role {
		case RoleRoot:
			p.root(n, &d)
		case RoleUtility:
			p.utility(n, &d)
		case RoleChild:
			p.diag(DiagMisplacedNode, n, "child node is not attached to a root")
		}
	}
	p.orphans()
}

func (p *pass) root(n *graph.Node, d *Descriptor) {
	b := NewBlock()
	d.Root.CompileRoot(n, b, p.ctx)
	if b.Empty() {
		p.ctx.takeDecls()
		p.diag(DiagEmptyRoot, n, "root emitted no opening call; children skipped")
		return
	}

	for _, child := range p.doc.Children(n.ID) {
		cd, ok := p.reg.Get(child.Type)
		switch {
		case !ok:
			p.diag(DiagUnknownType, child, "no descriptor registered")
		case cd.Role != RoleChild:
			p.diag(DiagMisplacedNode, child, fmt.Sprintf("%s node attached to %q", cd.Role, n.Type))
		case !cd.Accepts(d.Family):
			p.diag(DiagFamilyMismatch, child, fmt.Sprintf("not valid under family %q", d.Family))
		default:
			cd.Child.CompileChild(child, b, p.ctx)
		}
	}

	p.script.Statements = append(p.script.Statements, Statement{
		Kind:         StatementChain,
		Node:         n.ID,
		Type:         n.Type,
		Declarations: p.ctx.takeDecls(),
		Lines:        b.Lines(),
	})
}

func (p *pass) utility(n *graph.Node, d *Descriptor) {
	d.Utility.Compile(n, p.ctx)
	lines := p.ctx.takeInstructions()
	decls := p.ctx.takeDecls()
	if len(lines) == 0 {
		return
	}
	p.script.Statements = append(p.script.Statements, Statement{
		Kind:         StatementInstruction,
		Node:         n.ID,
		Type:         n.Type,
		Declarations: decls,
		Lines:        lines,
	})
}

// orphans reports attached nodes whose parent is missing or is not a
// registered root. Children of unknown roots are already covered by the
// root's own diagnostic.
func (p *pass) orphans() {
	for i := range p.doc.Nodes {
		n := &p.doc.Nodes[i]
		if !n.IsAttached() {
			continue
		}
		parent, ok := p.doc.Node(n.Parent)
		if !ok {
			p.diag(DiagOrphanChild, n, fmt.Sprintf("parent %q does not exist", n.Parent))
			continue
		}
		if parent.IsAttached() {
			p.diag(DiagOrphanChild, n, fmt.Sprintf("parent %q is itself attached", n.Parent))
			continue
		}
		pd, ok := p.reg.Get(parent.Type)
		if ok && pd.Role != RoleRoot {
			p.diag(DiagOrphanChild, n, fmt.Sprintf("parent %q is a %s node", n.Parent, pd.Role))
		}
	}
}

func (p *pass) diag(kind DiagnosticKind, n *graph.Node, msg string) {
	d := Diagnostic{
		Kind:    kind,
		Node:    n.ID,
		Type:    n.Type,
		Parent:  n.Parent,
		Message: msg,
	}
	p.script.Diagnostics = append(p.script.Diagnostics, d)
	if p.notify != nil {
		p.notify(d)
	}
}
