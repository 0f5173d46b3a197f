// Package preview renders a graph document as a node-link diagram.
//
// Top-level nodes appear in document order, joined by dashed "then" edges
// that mirror the order of the compiled statements. Each root is drawn as
// a cluster holding its children in chain order. Nodes the compiler
// flagged with a diagnostic are outlined in red so authors can see what
// was dropped from the script.
//
// # Usage
//
//	script := compiler.New(reg).Compile(doc)
//	dot := preview.ToDOT(doc, reg, preview.Options{Diagnostics: script.Diagnostics})
//	svg, err := preview.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is required.
package preview
