package nodes

import (
	"strings"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

var (
	Opacity   = presence("opacity", "Opacity", CategoryVisual, "opacity", "opacity", 1, FamilyAnimation, FamilyEffect)
	MoveSpeed = presence("moveSpeed", "Move Speed", CategoryVisual, "moveSpeed", "moveSpeed", 500, FamilyAnimation, FamilyEffect)
	Scale     = presence("scale", "Scale", CategoryVisual, "scale", "scale", 1, FamilyEffect)
	ZIndex    = presence("zIndex", "Z-Index", CategoryVisual, "zIndex", "zIndex", 0, FamilyEffect)
)

// Rotate sets a fixed rotation. A key that is set but null or empty counts
// as 0; only a missing key or a non-numeric value emits nothing.
var Rotate = child("rotate", "Rotate", CategoryAnimation,
	[]string{FamilyAnimation},
	[]compiler.Field{num("rotate", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		v, ok := n.Config["rotate"]
		if !ok {
			return
		}
		if v == nil {
			v = 0
		}
		if r, ok := script.Finite(v); ok {
			b.Chain("rotate", nil, script.FormatNumber(r))
		}
	})

// Fade fades the effect in and out. Each call is emitted only for a
// positive duration and carries an optional { ease, delay } bag.
var Fade = child("fade", "Fade (Visual)", CategoryCommon,
	[]string{FamilyEffect, FamilyAnimation},
	inOutFields(),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		inOut(n.Config, b, "fadeIn", "fadeOut")
	})

// inOutFields is the field set shared by the fade nodes.
func inOutFields() []compiler.Field {
	return []compiler.Field{
		num("fadeInDuration", 0), str("fadeInEase", ""), num("fadeInDelay", 0),
		num("fadeOutDuration", 0), str("fadeOutEase", ""), num("fadeOutDelay", 0),
	}
}

func inOut(c graph.Config, b *compiler.Block, inMethod, outMethod string) {
	if d := c.Num("fadeInDuration"); d > 0 {
		b.Chain(inMethod, script.EaseDelay(c.Get("fadeInEase"), c.Get("fadeInDelay")), script.FormatNumber(d))
	}
	if d := c.Num("fadeOutDuration"); d > 0 {
		b.Chain(outMethod, script.EaseDelay(c.Get("fadeOutEase"), c.Get("fadeOutDelay")), script.FormatNumber(d))
	}
}

var (
	RotateIn  = tween("rotateIn", "Rotate In", CategoryAnimation, "degrees", 0, true, FamilyAnimation)
	RotateOut = tween("rotateOut", "Rotate Out", CategoryAnimation, "degrees", 0, true, FamilyAnimation)
	ScaleIn   = tween("scaleIn", "Scale In", CategoryVisual, "scale", 0.5, false, FamilyEffect)
	ScaleOut  = tween("scaleOut", "Scale Out", CategoryVisual, "scale", 0.5, false, FamilyEffect)
)

// tween builds an in/out transition child emitting
// `.method(value, duration[, { ease, delay }])`. With always set the call is
// emitted even for a zero duration; otherwise the duration must be positive.
func tween(typeID, label, category, valueKey string, def float64, always bool, families ...string) *compiler.Descriptor {
	return child(typeID, label, category, families,
		[]compiler.Field{num(valueKey, def), num("duration", 500), str("ease", ""), num("delay", 0)},
		func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
			c := n.Config
			d := c.Num("duration")
			if !always && d <= 0 {
				return
			}
			b.Chain(typeID, script.EaseDelay(c.Get("ease"), c.Get("delay")), script.Num(c.Get(valueKey)), script.FormatNumber(d))
		})
}

// Tint colors the animated object. Modes: none, reset (`.tint()`), hex
// (quoted color) and decimal (numeric color).
var Tint = child("tint", "Tint", CategoryAnimation,
	[]string{FamilyAnimation},
	[]compiler.Field{enum("mode", "none", "none", "reset", "hex", "decimal"), str("hex", ""), str("dec", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		switch c.Str("mode") {
		case "reset":
			b.Chain("tint", nil)
		case "hex":
			if c.Trim("hex") != "" {
				b.Chain("tint", nil, script.Quote(c.Get("hex")))
			}
		case "decimal":
			if c.Trim("dec") != "" {
				b.Chain("tint", nil, script.Num(c.Get("dec")))
			}
		}
	})

var (
	Hide           = marker("hide", "Hide", CategoryAnimation, "hide", FamilyAnimation)
	Show           = marker("show", "Show", CategoryAnimation, "show", FamilyAnimation)
	RandomRotation = marker("randomRotation", "Random Rotation", CategoryVisual, "randomRotation", FamilyEffect)
	BelowTokens    = marker("belowTokens", "Below Tokens", CategoryVisual, "belowTokens", FamilyEffect)
	BelowTiles     = marker("belowTiles", "Below Tiles", CategoryVisual, "belowTiles", FamilyEffect)
	AboveLighting  = marker("aboveLighting", "Above Lighting", CategoryVisual, "aboveLighting", FamilyEffect)
)

// ScaleToObject scales the effect to its location's size. A factor other
// than 1 is passed as the first argument.
// Options, in order: considerTokenScale, uniform.
var ScaleToObject = child("scaleToObject", "Scale To Object", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{num("scale", 1), flag("considerTokenScale", false), flag("uniform", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		var args []string
		if s := c.Num("scale"); s != 0 && s != 1 {
			args = append(args, script.FormatNumber(s))
		}
		var o script.Opts
		flagOpt(&o, "considerTokenScale", c)
		flagOpt(&o, "uniform", c)
		if !o.Empty() && len(args) == 0 {
			args = append(args, "1")
		}
		b.Chain("scaleToObject", o, args...)
	})

// Size sets an explicit width and height; both must be positive.
var Size = child("size", "Size", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{num("width", 0), num("height", 0), flag("gridUnits", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		w, h := c.Num("width"), c.Num("height")
		if w <= 0 || h <= 0 {
			return
		}
		var o script.Opts
		flagOpt(&o, "gridUnits", c)
		b.Chain("size", o, "{ width: "+script.FormatNumber(w)+", height: "+script.FormatNumber(h)+" }")
	})

// SpriteOffset shifts the sprite inside its container.
// Options, in order: gridUnits, local.
var SpriteOffset = child("spriteOffset", "Sprite Offset", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{num("x", 0), num("y", 0), flag("gridUnits", false), flag("local", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		if c.Num("x") == 0 && c.Num("y") == 0 {
			return
		}
		var o script.Opts
		flagOpt(&o, "gridUnits", c)
		flagOpt(&o, "local", c)
		b.Chain("spriteOffset", o, script.Point(c.Get("x"), c.Get("y")))
	})

// Mirror flips the sprite on either axis.
var Mirror = child("mirror", "Mirror", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{flag("x", false), flag("y", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if n.Config.Bool("x") {
			b.Chain("mirrorX", nil)
		}
		if n.Config.Bool("y") {
			b.Chain("mirrorY", nil)
		}
	})

// Elevation sets the effect's elevation. Presence means override.
var Elevation = child("elevation", "Elevation", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{num("elevation", 0), flag("absolute", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		v, ok := n.Config.Float("elevation")
		if !ok {
			return
		}
		var o script.Opts
		flagOpt(&o, "absolute", n.Config)
		b.Chain("elevation", o, script.FormatNumber(v))
	})

// filterNames are the filters Sequencer ships.
var filterNames = []string{"ColorMatrix", "Blur", "Noise", "Glow", "ClipOverlay"}

// Filter applies a named filter. Params is an object literal passed through
// verbatim.
var Filter = child("filter", "Filter", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{enum("filter", "ColorMatrix", filterNames...), text("params", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		name := c.Trim("filter")
		if !oneOf(name, filterNames) {
			return
		}
		args := []string{script.Quote(name)}
		if p := strings.TrimSpace(script.Body(c.Str("params"))); p != "" {
			args = append(args, p)
		}
		b.Chain("filter", nil, args...)
	})

// Missed offsets the effect so it visibly misses its target.
var Missed = child("missed", "Missed", CategoryCommon,
	[]string{FamilyEffect},
	[]compiler.Field{flag("missed", true)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if n.Config.BoolOr("missed", true) {
			b.Chain("missed", nil)
		}
	})

// Persist keeps the effect on the scene until removed.
var Persist = child("persist", "Persist", CategoryCommon,
	[]string{FamilyEffect},
	[]compiler.Field{flag("persist", true), flag("persistTokenPrototype", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		if !c.BoolOr("persist", true) {
			return
		}
		var o script.Opts
		flagOpt(&o, "persistTokenPrototype", c)
		if o.Empty() {
			b.Chain("persist", nil)
			return
		}
		b.Chain("persist", o, "true")
	})

// SyncGroup keeps effects with the same group name in lockstep.
var SyncGroup = child("syncGroup", "Sync Group", CategoryCommon,
	[]string{FamilyEffect},
	[]compiler.Field{str("group", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if g := n.Config.Trim("group"); g != "" {
			b.Chain("syncGroup", nil, script.Quote(g))
		}
	})

// ScreenSpace renders the effect in screen coordinates, optionally at a
// fixed position and above the UI.
var ScreenSpace = child("screenSpace", "Screen Space", CategoryVisual,
	[]string{FamilyEffect},
	[]compiler.Field{num("x", 0), num("y", 0), flag("aboveUI", false)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		b.Chain("screenSpace", nil)
		if c.Num("x") != 0 || c.Num("y") != 0 {
			b.Chain("screenSpacePosition", nil, script.Point(c.Get("x"), c.Get("y")))
		}
		if c.Bool("aboveUI") {
			b.Chain("screenSpaceAboveUI", nil)
		}
	})

// AnimateProperty tweens a sprite property once.
// Options, in order: from, to, duration, ease, delay, gridUnits.
var AnimateProperty = child("animateProperty", "Animate Property", CategoryVisual,
	[]string{FamilyEffect},
	propertyFields(false),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target, prop := c.Trim("target"), c.Trim("property")
		d := c.Num("duration")
		if target == "" || prop == "" || d <= 0 {
			return
		}
		var o script.Opts
		o.Add("from", script.Num(c.Get("from")))
		o.Add("to", script.Num(c.Get("to")))
		o.Add("duration", script.FormatNumber(d))
		if c.Trim("ease") != "" {
			o.Add("ease", script.Quote(c.Get("ease")))
		}
		numOpt(&o, "delay", c)
		flagOpt(&o, "gridUnits", c)
		b.Chain("animateProperty", o, script.Quote(target), script.Quote(prop))
	})

// LoopProperty oscillates a sprite property for the effect's lifetime.
// Options, in order: from, to, duration, pingPong, ease, delay.
var LoopProperty = child("loopProperty", "Loop Property", CategoryVisual,
	[]string{FamilyEffect},
	propertyFields(true),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target, prop := c.Trim("target"), c.Trim("property")
		d := c.Num("duration")
		if target == "" || prop == "" || d <= 0 {
			return
		}
		var o script.Opts
		o.Add("from", script.Num(c.Get("from")))
		o.Add("to", script.Num(c.Get("to")))
		o.Add("duration", script.FormatNumber(d))
		flagOpt(&o, "pingPong", c)
		if c.Trim("ease") != "" {
			o.Add("ease", script.Quote(c.Get("ease")))
		}
		numOpt(&o, "delay", c)
		b.Chain("loopProperty", o, script.Quote(target), script.Quote(prop))
	})

func propertyFields(loop bool) []compiler.Field {
	fs := []compiler.Field{
		enum("target", "sprite", "sprite", "alphaFilter", "spriteContainer"),
		str("property", ""), num("from", 0), num("to", 1), num("duration", 1000),
		str("ease", ""), num("delay", 0),
	}
	if loop {
		return append(fs, flag("pingPong", false))
	}
	return append(fs, flag("gridUnits", false))
}

func oneOf(v string, options []string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
