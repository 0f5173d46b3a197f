package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// WaitUntilFinished makes the sequence wait for the chain to end, with an
// optional extra delay in milliseconds (negative values end early).
var WaitUntilFinished = child("waitUntilFinished", "Wait Until Finished", CategoryCommon,
	chainFamilies,
	[]compiler.Field{num("minDelay", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		if d := n.Config.Num("minDelay"); d != 0 {
			b.Chain("waitUntilFinished", nil, script.FormatNumber(d))
			return
		}
		b.Chain("waitUntilFinished", nil)
	})

var Async = marker("async", "Async", CategoryCommon, "async", chainFamilies...)

// Delay holds the chain back: `.delay(min)`, or a random delay between min
// and max when max is positive.
var Delay = child("delay", "Delay", CategoryCommon,
	chainFamilies,
	[]compiler.Field{num("delayMin", 0), num("delayMax", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		lo := script.FormatNumber(c.Num("delayMin"))
		if hi := c.Num("delayMax"); hi > 0 {
			// The " , " separator is part of the established output.
			b.Add(script.Indent + ".delay(" + lo + " , " + script.FormatNumber(hi) + ")")
			return
		}
		b.Chain("delay", nil, lo)
	})

var Duration = presence("duration", "Duration", CategoryCommon, "duration", "duration", 500, chainFamilies...)

// PlayIf gates the chain. Modes:
//
//	always   nothing
//	boolean  .playIf(true|false)
//	chance   .playIf(() => Math.random() < p), only for 0 < p < 1
var PlayIf = child("playIf", "Play If", CategoryFlow,
	chainFamilies,
	[]compiler.Field{enum("mode", "always", "always", "boolean", "chance"), flag("bool", true), num("chance", 0.5)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		switch c.StrOr("mode", "always") {
		case "boolean":
			b.Chain("playIf", nil, boolLiteral(c.Bool("bool")))
		case "chance":
			if p, ok := c.Float("chance"); ok && p > 0 && p < 1 {
				b.Chain("playIf", nil, "() => Math.random() < "+script.FormatNumber(p))
			}
		}
	})

// Repeats plays the chain several times. The call takes one, two or three
// arguments depending on which delay bounds apply; counts of 1 or less emit
// nothing.
var Repeats = child("repeats", "Repeats", CategoryFlow,
	[]string{FamilyEffect, FamilyAnimation, FamilySound, FamilyScrollingText},
	[]compiler.Field{num("repeats", 1), num("repeatDelayMin", 0), num("repeatDelayMax", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		count := c.Num("repeats")
		if count <= 1 {
			return
		}
		lo, hi := c.Num("repeatDelayMin"), c.Num("repeatDelayMax")
		switch {
		case hi != 0 && hi > lo:
			b.Chain("repeats", nil, script.FormatNumber(count), script.FormatNumber(lo), script.FormatNumber(hi))
		case lo != 0:
			b.Chain("repeats", nil, script.FormatNumber(count), script.FormatNumber(lo))
		default:
			b.Chain("repeats", nil, script.FormatNumber(count))
		}
	})

// StartTime skips into the media, in milliseconds or as a fraction of its
// length. The millisecond call needs a positive value; the fraction is
// emitted whenever it is set, zero and negatives included.
var StartTime = child("startTime", "Start Time", CategoryCommon,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{num("startTime", 0), num("startTimePerc", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		if v := c.Num("startTime"); v > 0 {
			b.Chain("startTime", nil, script.FormatNumber(v))
		}
		if v, ok := c.Float("startTimePerc"); ok {
			b.Chain("startTimePerc", nil, script.FormatNumber(v))
		}
	})

// EndTime stops the media early, in milliseconds or as a fraction. It
// follows the same rules as StartTime.
var EndTime = child("endTime", "End Time", CategoryCommon,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{num("endTime", 0), num("endTimePerc", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		if v := c.Num("endTime"); v > 0 {
			b.Chain("endTime", nil, script.FormatNumber(v))
		}
		if v, ok := c.Float("endTimePerc"); ok {
			b.Chain("endTimePerc", nil, script.FormatNumber(v))
		}
	})

// TimeRange plays only the [start, end) window of the media.
var TimeRange = child("timeRange", "Time Range", CategoryCommon,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{num("start", 0), num("end", 0)},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		start, end := c.Num("start"), c.Num("end")
		if start < 0 || end <= start {
			return
		}
		b.Chain("timeRange", nil, script.FormatNumber(start), script.FormatNumber(end))
	})

var PlaybackRate = presence("playbackRate", "Playback Rate", CategoryCommon, "playbackRate", "rate", 1, FamilyEffect, FamilySound)

func boolLiteral(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
