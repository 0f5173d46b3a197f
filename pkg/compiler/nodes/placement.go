package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// AtLocation places the chain at a token, tile, point or stored name.
// Options, in order: cacheLocation, randomOffset, offset, local, gridUnits.
var AtLocation = child("atLocation", "At Location", CategoryCommon,
	[]string{FamilyEffect, FamilyAnimation, FamilySound},
	fields(targetFields(ModeSelectedToken, locationModes), []compiler.Field{
		flag("cacheLocation", false), num("randomOffset", 0),
		num("offsetX", 0), num("offsetY", 0),
		flag("local", false), flag("gridUnits", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, locationModes)
		if target == "" {
			return
		}
		var o script.Opts
		flagOpt(&o, "cacheLocation", c)
		numOpt(&o, "randomOffset", c)
		pointOpt(&o, "offset", c, "offsetX", "offsetY")
		flagOpt(&o, "local", c)
		flagOpt(&o, "gridUnits", c)
		b.Chain("atLocation", o, target)
	})

// AttachTo binds the effect to a placeable so it follows it.
// Options, in order: followRotation, bindVisibility, bindAlpha, offset,
// local, gridUnits. The bind flags default to true and are only emitted
// when switched off.
var AttachTo = child("attachTo", "Attach To", CategoryCommon,
	[]string{FamilyEffect},
	fields(targetFields(ModeSelectedToken, placeableModes), []compiler.Field{
		flag("followRotation", true), flag("bindVisibility", true), flag("bindAlpha", true),
		num("offsetX", 0), num("offsetY", 0),
		flag("local", false), flag("gridUnits", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, placeableModes)
		if target == "" {
			return
		}
		var o script.Opts
		for _, k := range []string{"followRotation", "bindVisibility", "bindAlpha"} {
			if !c.BoolOr(k, true) {
				o.Add(k, "false")
			}
		}
		pointOpt(&o, "offset", c, "offsetX", "offsetY")
		flagOpt(&o, "local", c)
		flagOpt(&o, "gridUnits", c)
		b.Chain("attachTo", o, target)
	})

// StretchTo stretches the effect from its location to the target.
// Options, in order: cacheLocation, attachTo, onlyX, tiling, randomOffset,
// offset, local, gridUnits.
var StretchTo = child("stretchTo", "Stretch To", CategoryCommon,
	[]string{FamilyEffect},
	fields(targetFields(ModeSelectedTarget, locationModes), []compiler.Field{
		flag("cacheLocation", false), flag("attachTo", false), flag("onlyX", false),
		flag("tiling", false), num("randomOffset", 0),
		num("offsetX", 0), num("offsetY", 0),
		flag("local", false), flag("gridUnits", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, locationModes)
		if target == "" {
			return
		}
		var o script.Opts
		flagOpt(&o, "cacheLocation", c)
		flagOpt(&o, "attachTo", c)
		flagOpt(&o, "onlyX", c)
		flagOpt(&o, "tiling", c)
		numOpt(&o, "randomOffset", c)
		pointOpt(&o, "offset", c, "offsetX", "offsetY")
		flagOpt(&o, "local", c)
		flagOpt(&o, "gridUnits", c)
		b.Chain("stretchTo", o, target)
	})

// From copies image, size and position from a placeable.
var From = child("from", "From Placeable", CategoryCommon,
	[]string{FamilyEffect},
	fields(targetFields(ModeSelectedToken, placeableModes), []compiler.Field{flag("cacheLocation", false)}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, placeableModes)
		if target == "" {
			return
		}
		var o script.Opts
		flagOpt(&o, "cacheLocation", c)
		b.Chain("from", o, target)
	})

// On picks the object an animation acts on.
var On = child("on", "On (Target)", CategoryAnimation,
	[]string{FamilyAnimation, FamilyEffect},
	targetFields(ModeInToken, animationModes),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if target := resolveTarget(n.Config, animationModes); target != "" {
			b.Chain("on", nil, target)
		}
	})

// MoveTowards moves the animated object to a target.
// Options, in order: ease (not for inToken), delay, relativeToCenter.
var MoveTowards = child("moveTowards", "Move Towards", CategoryVisual,
	[]string{FamilyAnimation, FamilyEffect},
	fields(targetFields(ModeInToken, animationModes), []compiler.Field{
		str("ease", "linear"), num("delay", 0), flag("relativeToCenter", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, animationModes)
		if target == "" {
			return
		}
		var o script.Opts
		if c.Trim("ease") != "" && c.Str("mode") != ModeInToken {
			o.Add("ease", script.Quote(c.Get("ease")))
		}
		numOpt(&o, "delay", c)
		flagOpt(&o, "relativeToCenter", c)
		b.Chain("moveTowards", o, target)
	})

// RotateTowards turns the animated object to face a target.
// Options, in order: duration, ease, delay, rotationOffset, towardsCenter
// (only when false), cacheLocation.
var RotateTowards = child("rotateTowards", "Rotate Towards", CategoryAnimation,
	[]string{FamilyAnimation},
	fields(targetFields(ModeInToken, animationModes), []compiler.Field{
		num("duration", 500), str("ease", "linear"), num("delay", 0),
		num("rotationOffset", 0), flag("towardsCenter", true), flag("cacheLocation", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, animationModes)
		if target == "" {
			return
		}
		var o script.Opts
		numOpt(&o, "duration", c)
		if c.Trim("ease") != "" {
			o.Add("ease", script.Quote(c.Get("ease")))
		}
		numOpt(&o, "delay", c)
		numOpt(&o, "rotationOffset", c)
		if !c.BoolOr("towardsCenter", true) {
			o.Add("towardsCenter", "false")
		}
		flagOpt(&o, "cacheLocation", c)
		b.Chain("rotateTowards", o, target)
	})

// TeleportTo moves the animated object instantly.
// Options, in order: delay, relativeToCenter.
var TeleportTo = child("teleportTo", "Teleport To", CategoryAnimation,
	[]string{FamilyAnimation},
	fields(targetFields(ModeInToken, animationModes), []compiler.Field{
		num("delay", 0), flag("relativeToCenter", false),
	}),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		target := resolveTarget(c, animationModes)
		if target == "" {
			return
		}
		var o script.Opts
		numOpt(&o, "delay", c)
		flagOpt(&o, "relativeToCenter", c)
		b.Chain("teleportTo", o, target)
	})

// Offset shifts the animated object by { x, y }.
var Offset = child("offset", "Offset", CategoryAnimation,
	[]string{FamilyAnimation},
	[]compiler.Field{num("x", 0), num("y", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		b.Chain("offset", nil, script.Point(n.Config.Get("x"), n.Config.Get("y")))
	})

var (
	ClosestSquare = marker("closestSquare", "Closest Square", CategoryAnimation, "closestSquare", FamilyAnimation)
	SnapToGrid    = marker("snapToGrid", "Snap to Grid", CategoryAnimation, "snapToGrid", FamilyAnimation)
)

// Name stores the chain's placement under a name that later nodes can
// target with the stored-name mode.
var Name = child("name", "Name", CategoryCommon,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{str("name", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if name := n.Config.Trim("name"); name != "" {
			b.Chain("name", nil, script.Quote(name))
		}
	})
