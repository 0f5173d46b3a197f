package preview

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds each node's config values to its label.
	Detailed bool
	// Diagnostics highlights the nodes they name.
	Diagnostics []compiler.Diagnostic
}

// Fill colors by role.
const (
	colorRoot    = "#dbeafe"
	colorChild   = "white"
	colorUtility = "#fef3c7"
	colorUnknown = "#fee2e2"
	colorFlagged = "#dc2626"
)

// ToDOT converts doc to Graphviz DOT. reg classifies node types; a nil
// registry treats every type as unknown.
func ToDOT(doc *graph.Document, reg *compiler.Registry, opts Options) string {
	if reg == nil {
		reg = compiler.NewRegistry()
	}
	flagged := map[string]string{}
	for _, d := range opts.Diagnostics {
		if d.Node != "" {
			flagged[d.Node] = string(d.Kind)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n")

	if doc == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	w := writer{buf: &buf, reg: reg, flagged: flagged, detailed: opts.Detailed}
	top := doc.TopLevel()
	for i, n := range top {
		d, ok := reg.Get(n.Type)
		if ok && d.Role == compiler.RoleRoot {
			fmt.Fprintf(&buf, "\n  subgraph %q {\n", "cluster_"+n.ID)
			fmt.Fprintf(&buf, "    label=%q;\n", d.Family)
			buf.WriteString("    style=\"rounded,dashed\";\n    color=\"#94a3b8\";\n")
			w.node("    ", n)
			prev := n.ID
			for _, c := range doc.Children(n.ID) {
				w.node("    ", c)
				fmt.Fprintf(&buf, "    %q -> %q;\n", prev, c.ID)
				prev = c.ID
			}
			buf.WriteString("  }\n")
		} else {
			buf.WriteString("\n")
			w.node("  ", n)
		}
		if i > 0 {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=\"#64748b\", label=\"then\"];\n", top[i-1].ID, n.ID)
		}
	}

	// Attached nodes whose parent is not a top-level root are drawn loose.
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if !n.IsAttached() {
			continue
		}
		if p, ok := doc.Node(n.Parent); ok && !p.IsAttached() {
			if d, ok := reg.Get(p.Type); ok && d.Role == compiler.RoleRoot {
				continue
			}
		}
		buf.WriteString("\n")
		w.node("  ", n)
		if _, ok := doc.Node(n.Parent); ok {
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted];\n", n.Parent, n.ID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

type writer struct {
	buf      *bytes.Buffer
	reg      *compiler.Registry
	flagged  map[string]string
	detailed bool
}

func (w writer) node(indent string, n *graph.Node) {
	d, known := w.reg.Get(n.Type)
	label := n.DisplayLabel()
	if known && n.Label == "" && d.Label != "" {
		label = d.Label
	}
	if w.detailed {
		label += fmtConfig(n.Config)
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case !known:
		attrs = append(attrs, "fillcolor=\""+colorUnknown+"\"")
	case d.Role == compiler.RoleRoot:
		attrs = append(attrs, "fillcolor=\""+colorRoot+"\"", "penwidth=2")
	case d.Role == compiler.RoleUtility:
		attrs = append(attrs, "shape=ellipse", "style=filled", "fillcolor=\""+colorUtility+"\"")
	default:
		attrs = append(attrs, "fillcolor="+colorChild)
	}
	if kind, ok := w.flagged[n.ID]; ok {
		attrs = append(attrs, "color=\""+colorFlagged+"\"", "penwidth=2", fmt.Sprintf("tooltip=%q", kind))
	}
	fmt.Fprintf(w.buf, "%s%q [%s];\n", indent, n.ID, strings.Join(attrs, ", "))
}

func fmtConfig(c graph.Config) string {
	var parts []string
	for _, k := range slices.Sorted(maps.Keys(c)) {
		v := script.String(c[k])
		if v == "" {
			continue
		}
		if len(v) > 32 {
			v = v[:29] + "..."
		}
		parts = append(parts, k+": "+v)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n" + strings.Join(parts, "\n")
}
