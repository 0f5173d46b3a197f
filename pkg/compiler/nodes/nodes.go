package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Families anchored by the built-in roots.
const (
	FamilyEffect        = "effect"
	FamilySound         = "sound"
	FamilyAnimation     = "animation"
	FamilyScrollingText = "scrollingText"
	FamilyCanvasPan     = "canvasPan"
	FamilyCrosshair     = "crosshair"
)

// Categories group descriptors in the editor palette.
const (
	CategoryFlow      = "flow"
	CategorySequencer = "sequencer"
	CategoryCommon    = "common"
	CategoryVisual    = "visual"
	CategoryAnimation = "animation"
	CategoryAudio     = "audio"
	CategoryText      = "text"
	CategoryCode      = "code"
)

// chainFamilies are the families whose roots accept the shared timing nodes.
var chainFamilies = []string{FamilyAnimation, FamilyEffect, FamilySound, FamilyScrollingText, FamilyCanvasPan}

// All is the complete built-in catalog in palette order.
var All = []*compiler.Descriptor{
	// flow
	Start, Play, Wait, Macro, Preset, Callback,
	// roots
	Effect, Sound, Animation, ScrollingText, CanvasPan, Crosshair,
	// placement
	AtLocation, AttachTo, StretchTo, From, On, MoveTowards, RotateTowards,
	TeleportTo, Offset, ClosestSquare, SnapToGrid, Name,
	// timing
	WaitUntilFinished, Async, Delay, Duration, PlayIf, Repeats, StartTime,
	EndTime, TimeRange, PlaybackRate,
	// visual
	Opacity, Fade, MoveSpeed, Rotate, RotateIn, RotateOut, Tint, Hide, Show,
	Scale, ScaleIn, ScaleOut, ScaleToObject, Size, SpriteOffset,
	RandomRotation, Mirror, BelowTokens, BelowTiles, AboveLighting, ZIndex,
	Elevation, Filter, Missed, Persist, SyncGroup, ScreenSpace,
	AnimateProperty, LoopProperty,
	// audio
	FadeAudio, Volume, Audience,
	// text
	Text, ScrollAnchor,
	// canvas
	Shake, PanSpeed,
	// code
	Override,
}

// Register adds every built-in descriptor to r.
func Register(r *compiler.Registry) error {
	for _, d := range All {
		if err := r.Register(d.Type, *d); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in catalog.
func NewRegistry() *compiler.Registry {
	r := compiler.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}

// Find returns the built-in descriptor for typeID, or nil if not found.
func Find(typeID string) *compiler.Descriptor {
	for _, d := range All {
		if d.Type == typeID {
			return d
		}
	}
	return nil
}

// =============================================================================
// Field helpers
// =============================================================================

func num(name string, def float64) compiler.Field {
	return compiler.Field{Name: name, Kind: compiler.FieldNumber, Default: def}
}

func str(name, def string) compiler.Field {
	return compiler.Field{Name: name, Kind: compiler.FieldString, Default: def}
}

func flag(name string, def bool) compiler.Field {
	return compiler.Field{Name: name, Kind: compiler.FieldBool, Default: def}
}

func text(name, def string) compiler.Field {
	return compiler.Field{Name: name, Kind: compiler.FieldText, Default: def}
}

func enum(name, def string, options ...string) compiler.Field {
	return compiler.Field{Name: name, Kind: compiler.FieldEnum, Default: def, Options: options}
}

func fields(groups ...[]compiler.Field) []compiler.Field {
	var out []compiler.Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// =============================================================================
// Compile helpers
// =============================================================================

// child builds a child descriptor.
func child(typeID, label, category string, families []string, fs []compiler.Field, fn compiler.ChildFunc) *compiler.Descriptor {
	return &compiler.Descriptor{
		Type:     typeID,
		Label:    label,
		Category: category,
		Role:     compiler.RoleChild,
		Families: families,
		Fields:   fs,
		Child:    fn,
	}
}

// marker builds a child that always emits `.method()`.
func marker(typeID, label, category, method string, families ...string) *compiler.Descriptor {
	return child(typeID, label, category, families, nil, func(_ *graph.Node, b *compiler.Block, _ *compiler.Context) {
		b.Chain(method, nil)
	})
}

// presence builds a child that emits `.method(value)` whenever key holds a
// finite number, zero included.
func presence(typeID, label, category, method, key string, def float64, families ...string) *compiler.Descriptor {
	return child(typeID, label, category, families, []compiler.Field{num(key, def)},
		func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
			if v, ok := n.Config.Float(key); ok {
				b.Chain(method, nil, script.FormatNumber(v))
			}
		})
}

// positive builds a child that emits `.method(value)` when key is > 0.
func positive(typeID, label, category, method, key string, def float64, families ...string) *compiler.Descriptor {
	return child(typeID, label, category, families, []compiler.Field{num(key, def)},
		func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
			if v := n.Config.Num(key); v > 0 {
				b.Chain(method, nil, script.FormatNumber(v))
			}
		})
}

// pointOpt adds `key: { x, y }` when either coordinate is non-zero.
func pointOpt(o *script.Opts, key string, c graph.Config, xKey, yKey string) {
	if c.Num(xKey) != 0 || c.Num(yKey) != 0 {
		o.Add(key, script.Point(c.Get(xKey), c.Get(yKey)))
	}
}

// flagOpt adds `key: true` when the option is truthy.
func flagOpt(o *script.Opts, key string, c graph.Config) {
	if c.Bool(key) {
		o.Add(key, "true")
	}
}

// numOpt adds `key: value` when the option is a non-zero number.
func numOpt(o *script.Opts, key string, c graph.Config) {
	if v := c.Num(key); v != 0 {
		o.Add(key, script.FormatNumber(v))
	}
}
