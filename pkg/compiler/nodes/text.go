package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Text sets or overrides the chain's text.
//
// Under a scrolling text root the root's own text line is patched in place:
// this node's text wins when non-empty, otherwise the root's text is kept.
// Style fields are collected into a hoisted `const styleN = { ... };`
// declaration passed as the second argument. Under roots without a text
// line the call is appended instead, and an empty text emits nothing.
var Text = child("text", "Text", CategoryText,
	[]string{FamilyScrollingText, FamilyEffect},
	[]compiler.Field{
		text("text", ""), str("fill", ""), str("fontFamily", ""), num("fontSize", 0),
		str("fontWeight", ""), str("stroke", ""), num("strokeThickness", 0),
		flag("dropShadow", false),
	},
	func(n *graph.Node, b *compiler.Block, ctx *compiler.Context) {
		c := n.Config
		content := c.Str("text")
		if content == "" {
			content, _ = b.Text()
		}
		if content == "" {
			return
		}

		args := []string{script.Template(content)}
		if style := textStyle(c); !style.Empty() {
			args = append(args, ctx.Declare("style", style.String()))
		}
		b.PatchText(script.Chain("text", nil, args...))
	})

// textStyle builds the style object in a fixed key order: fill, fontFamily,
// fontSize, fontWeight, stroke, strokeThickness, dropShadow.
func textStyle(c graph.Config) script.Opts {
	var o script.Opts
	for _, k := range []string{"fill", "fontFamily"} {
		if c.Trim(k) != "" {
			o.Add(k, script.Quote(c.Get(k)))
		}
	}
	if v := c.Num("fontSize"); v > 0 {
		o.Add("fontSize", script.FormatNumber(v))
	}
	if c.Trim("fontWeight") != "" {
		o.Add("fontWeight", script.Quote(c.Get("fontWeight")))
	}
	if c.Trim("stroke") != "" {
		o.Add("stroke", script.Quote(c.Get("stroke")))
	}
	if v := c.Num("strokeThickness"); v > 0 {
		o.Add("strokeThickness", script.FormatNumber(v))
	}
	flagOpt(&o, "dropShadow", c)
	return o
}

// anchorPoints are the text anchor constants Sequencer understands.
var anchorPoints = []string{"CENTER", "BOTTOM", "TOP", "LEFT", "RIGHT", "TOP_LEFT", "TOP_RIGHT", "BOTTOM_LEFT", "BOTTOM_RIGHT"}

// ScrollAnchor positions scrolling text: anchor point, travel direction and
// random jitter. Unknown anchor names are ignored.
var ScrollAnchor = child("scrollAnchor", "Scroll Anchor", CategoryText,
	[]string{FamilyScrollingText},
	[]compiler.Field{enum("anchor", "", anchorPoints...), enum("direction", "", anchorPoints...), num("jitter", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		if a := c.Trim("anchor"); oneOf(a, anchorPoints) {
			b.Chain("anchor", nil, "CONST.TEXT_ANCHOR_POINTS."+a)
		}
		if d := c.Trim("direction"); oneOf(d, anchorPoints) {
			b.Chain("direction", nil, "CONST.TEXT_ANCHOR_POINTS."+d)
		}
		if j := c.Num("jitter"); j > 0 {
			b.Chain("jitter", nil, script.FormatNumber(j))
		}
	})
