package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Shake shakes the camera during the pan. Duration and strength must both
// be positive.
// Options, in order: duration, strength, frequency, fadeInDuration,
// fadeOutDuration, rotation (only when false).
var Shake = child("shake", "Shake", CategoryCommon,
	[]string{FamilyCanvasPan},
	[]compiler.Field{
		num("duration", 250), num("strength", 5), num("frequency", 0),
		num("fadeInDuration", 0), num("fadeOutDuration", 0), flag("rotation", true),
	},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		d, s := c.Num("duration"), c.Num("strength")
		if d <= 0 || s <= 0 {
			return
		}
		var o script.Opts
		o.Add("duration", script.FormatNumber(d))
		o.Add("strength", script.FormatNumber(s))
		for _, k := range []string{"frequency", "fadeInDuration", "fadeOutDuration"} {
			if v := c.Num(k); v > 0 {
				o.Add(k, script.FormatNumber(v))
			}
		}
		if !c.BoolOr("rotation", true) {
			o.Add("rotation", "false")
		}
		b.Chain("shake", nil, o.String())
	})

var PanSpeed = positive("panSpeed", "Pan Speed", CategoryCommon, "speed", "speed", 0, FamilyCanvasPan)
