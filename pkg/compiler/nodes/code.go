package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Override adds an async override hook to the chain:
//
//	  .addOverride(async (effect, data) => {
//	    <body>
//	    return data;
//	  })
//
// The default return is appended only when the body has none. An empty
// body emits nothing.
var Override = child("override", "Override", CategoryCode,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{text("code", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		body := script.Body(n.Config.Str("code"))
		if body == "" {
			return
		}
		inner := script.Indent + script.Indent
		b.Add(script.Indent + ".addOverride(async (effect, data) => {")
		b.Add(script.IndentLines(body, inner)...)
		if !script.HasReturn(body) {
			b.Add(inner + "return data;")
		}
		b.Add(script.Indent + "})")
	})

// Callback runs arbitrary code as a standalone step:
//
//	seq.thenDo(async () => {
//	  <body>
//	});
//
// No return is added. An empty body emits nothing.
var Callback = &compiler.Descriptor{
	Type:     "callback",
	Label:    "Callback",
	Category: CategoryCode,
	Role:     compiler.RoleUtility,
	Fields:   []compiler.Field{text("code", "")},
	Utility: compiler.UtilityFunc(func(n *graph.Node, ctx *compiler.Context) {
		body := script.Body(n.Config.Str("code"))
		if body == "" {
			return
		}
		ctx.Emit(script.Sequence + ".thenDo(async () => {")
		ctx.Emit(script.IndentLines(body, script.Indent)...)
		ctx.Emit("});")
	}),
}
