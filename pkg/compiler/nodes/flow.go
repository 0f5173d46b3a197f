package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Start anchors the graph in the editor. It emits nothing.
var Start = &compiler.Descriptor{
	Type:     "start",
	Label:    "Start / Sequence",
	Category: CategoryFlow,
	Role:     compiler.RoleUtility,
	Fields:   []compiler.Field{str("label", "Sequence start")},
	Utility:  compiler.UtilityFunc(func(*graph.Node, *compiler.Context) {}),
}

// Play marks the end of the graph. It emits nothing; standalone output
// appends the play call itself.
var Play = &compiler.Descriptor{
	Type:     "play",
	Label:    "Play",
	Category: CategoryFlow,
	Role:     compiler.RoleUtility,
	Utility:  compiler.UtilityFunc(func(*graph.Node, *compiler.Context) {}),
}

// Wait pauses the sequence: `seq.wait(ms);`, or `seq.wait(ms, max);` for a
// random pause when max exceeds ms.
var Wait = &compiler.Descriptor{
	Type:     "wait",
	Label:    "Wait",
	Category: CategoryFlow,
	Role:     compiler.RoleUtility,
	Fields:   []compiler.Field{num("ms", 1000), num("maxMs", 0)},
	Utility: compiler.UtilityFunc(func(n *graph.Node, ctx *compiler.Context) {
		ms := n.Config.Num("ms")
		if ms <= 0 {
			return
		}
		if maxMs := n.Config.Num("maxMs"); maxMs > ms {
			ctx.Emit(script.Stmt("wait", script.FormatNumber(ms), script.FormatNumber(maxMs)))
			return
		}
		ctx.Emit(script.Stmt("wait", script.FormatNumber(ms)))
	}),
}

// Macro runs a world macro by name. An empty name falls back to "Macro".
var Macro = &compiler.Descriptor{
	Type:     "macro",
	Label:    "Macro",
	Category: CategoryFlow,
	Role:     compiler.RoleUtility,
	Fields:   []compiler.Field{str("macroName", "MacroName")},
	Utility: compiler.UtilityFunc(func(n *graph.Node, ctx *compiler.Context) {
		ctx.Emit(script.Stmt("macro", script.Quote(n.Config.StrOr("macroName", "Macro"))))
	}),
}

// Preset plays a registered Sequencer preset by name.
var Preset = &compiler.Descriptor{
	Type:     "preset",
	Label:    "Preset",
	Category: CategoryFlow,
	Role:     compiler.RoleUtility,
	Fields:   []compiler.Field{str("name", "")},
	Utility: compiler.UtilityFunc(func(n *graph.Node, ctx *compiler.Context) {
		name := n.Config.Trim("name")
		if name == "" {
			return
		}
		ctx.Emit(script.Stmt("preset", script.Quote(name)))
	}),
}
