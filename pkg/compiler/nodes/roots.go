package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

func root(typeID, label, family string, fs []compiler.Field, fn compiler.RootFunc) *compiler.Descriptor {
	return &compiler.Descriptor{
		Type:     typeID,
		Label:    label,
		Category: CategorySequencer,
		Role:     compiler.RoleRoot,
		Family:   family,
		Fields:   fs,
		Root:     fn,
	}
}

// Effect opens an effect chain. The file is required.
var Effect = root("effect", "Effect", FamilyEffect,
	[]compiler.Field{str("file", ""), str("baseFolder", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		file := c.Trim("file")
		if file == "" {
			return
		}
		b.Add(script.Open("effect"))
		if c.Trim("baseFolder") != "" {
			b.Chain("baseFolder", nil, script.Quote(c.Get("baseFolder")))
		}
		b.Chain("file", nil, script.Quote(file))
	})

// Sound opens a sound chain. The file is required.
var Sound = root("sound", "Sound", FamilySound,
	[]compiler.Field{str("file", ""), flag("waitUntilFinished", false), flag("locally", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		file := c.Trim("file")
		if file == "" {
			return
		}
		b.Add(script.Open("sound"))
		b.Chain("file", nil, script.Quote(file))
		if c.Bool("locally") {
			b.Chain("locally", nil, "true")
		}
		if c.Bool("waitUntilFinished") {
			b.Chain("waitUntilFinished", nil)
		}
	})

// Animation opens an animation chain. It always emits.
var Animation = root("animation", "Animation", FamilyAnimation,
	[]compiler.Field{str("preset", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		b.Add(script.Open("animation"))
		if n.Config.Trim("preset") != "" {
			b.Chain("preset", nil, script.Quote(n.Config.Get("preset")))
		}
	})

// ScrollingText opens a floating text chain. Its text line is the block's
// primary text slot, which a Text child may overwrite in place.
var ScrollingText = root("scrollingText", "ScrollingText", FamilyScrollingText,
	[]compiler.Field{text("text", "Text"), enum("at", ModeSelectedToken, "", ModeSelectedToken), num("durationMs", 1000)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		txt := c.Str("text")
		if txt == "" {
			return
		}
		b.Add(script.Open("scrollingText"))
		if c.Str("at") == ModeSelectedToken {
			b.Chain("atLocation", nil, "canvas.tokens.controlled[0]")
		}
		b.SetText(txt, script.Chain("text", nil, script.Template(txt)))
		if d := c.Num("durationMs"); d > 0 {
			b.Chain("duration", nil, script.FormatNumber(d))
		}
	})

// CanvasPan opens a camera pan chain. It always emits.
var CanvasPan = root("canvasPan", "CanvasPan", FamilyCanvasPan,
	[]compiler.Field{enum("at", ModeSelectedToken, "", ModeSelectedToken), num("durationMs", 1000), num("scale", 1), num("lockViewMs", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		b.Add(script.Open("canvasPan"))
		if c.Str("at") == ModeSelectedToken {
			b.Chain("atLocation", nil, "canvas.tokens.controlled[0]")
		}
		if d := c.Num("durationMs"); d > 0 {
			b.Chain("duration", nil, script.FormatNumber(d))
		}
		if s := c.Num("scale"); s != 0 && s != 1 {
			b.Chain("scale", nil, script.FormatNumber(s))
		}
		if l := c.Num("lockViewMs"); l > 0 {
			b.Chain("lockView", nil, script.FormatNumber(l))
		}
	})

// Crosshair opens a placement crosshair stored under name (default
// "target"). Later nodes reach the chosen location through stored-name.
var Crosshair = root("crosshair", "Crosshair", FamilyCrosshair,
	[]compiler.Field{str("name", "target"), str("file", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		b.Add(script.Open("crosshair", script.Quote(c.StrOr("name", "target"))))
		if file := c.Trim("file"); file != "" {
			b.Chain("texture", nil, script.Quote(file))
		}
	})
