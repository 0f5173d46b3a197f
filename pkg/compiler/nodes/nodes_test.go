package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
)

func emitChild(t *testing.T, typeID string, cfg graph.Config) []string {
	t.Helper()
	d := Find(typeID)
	require.NotNil(t, d, "descriptor %s", typeID)
	require.Equal(t, compiler.RoleChild, d.Role)
	b := compiler.NewBlock()
	d.Child.CompileChild(&graph.Node{ID: "n", Type: typeID, Config: cfg}, b, compiler.NewContext())
	return b.Lines()
}

func emitRoot(t *testing.T, typeID string, cfg graph.Config) []string {
	t.Helper()
	d := Find(typeID)
	require.NotNil(t, d, "descriptor %s", typeID)
	require.Equal(t, compiler.RoleRoot, d.Role)
	b := compiler.NewBlock()
	d.Root.CompileRoot(&graph.Node{ID: "n", Type: typeID, Config: cfg}, b, compiler.NewContext())
	return b.Lines()
}

func emitUtility(t *testing.T, typeID string, cfg graph.Config) []string {
	t.Helper()
	d := Find(typeID)
	require.NotNil(t, d, "descriptor %s", typeID)
	require.Equal(t, compiler.RoleUtility, d.Role)
	ctx := compiler.NewContext()
	d.Utility.Compile(&graph.Node{ID: "n", Type: typeID, Config: cfg}, ctx)
	return ctx.Instructions()
}

func TestCatalog(t *testing.T) {
	r := NewRegistry()
	assert.Len(t, All, 71)
	assert.Equal(t, len(All), r.Len(), "duplicate type ids in All")

	families := map[string]bool{}
	for _, d := range All {
		if d.Role == compiler.RoleRoot {
			families[d.Family] = true
		}
	}
	assert.Len(t, families, 6)

	for _, d := range All {
		t.Run(d.Type, func(t *testing.T) {
			require.NoError(t, d.Validate(d.Type))
			assert.NotEmpty(t, d.Label)
			assert.NotEmpty(t, d.Category)
			for _, f := range d.Families {
				assert.True(t, families[f], "unknown family %q", f)
			}
			seen := map[string]bool{}
			for _, f := range d.Fields {
				assert.False(t, seen[f.Name], "duplicate field %q", f.Name)
				seen[f.Name] = true
				if f.Kind == compiler.FieldEnum {
					assert.NotEmpty(t, f.Options, "enum field %q has no options", f.Name)
				}
			}
		})
	}
}

func TestRoots(t *testing.T) {
	tests := []struct {
		name   string
		typeID string
		cfg    graph.Config
		want   []string
	}{
		{"EffectMissingFile", "effect", graph.Config{"file": ""}, nil},
		{"EffectBlankFile", "effect", graph.Config{"file": "  ", "baseFolder": "x"}, nil},
		{"Effect", "effect", graph.Config{"file": "  jb2a.fireball  ", "baseFolder": "modules/jb2a"}, []string{
			"seq.effect()",
			`  .baseFolder("modules/jb2a")`,
			`  .file("jb2a.fireball")`,
		}},
		{"EffectEscapes", "effect", graph.Config{"file": `C:\fx\"boom".webm`}, []string{
			"seq.effect()",
			`  .file("C:\\fx\\\"boom\".webm")`,
		}},
		{"SoundMissingFile", "sound", graph.Config{"locally": true}, nil},
		{"SoundFlags", "sound", graph.Config{"file": "a.ogg", "locally": true, "waitUntilFinished": "yes"}, []string{
			"seq.sound()",
			`  .file("a.ogg")`,
			"  .locally(true)",
			"  .waitUntilFinished()",
		}},
		{"Animation", "animation", nil, []string{"seq.animation()"}},
		{"AnimationPreset", "animation", graph.Config{"preset": "fly"}, []string{"seq.animation()", `  .preset("fly")`}},
		{"ScrollingTextMissingText", "scrollingText", graph.Config{"at": "selected-token"}, nil},
		{"ScrollingText", "scrollingText", graph.Config{"text": "a`b", "at": "selected-token", "durationMs": "2000"}, []string{
			"seq.scrollingText()",
			"  .atLocation(canvas.tokens.controlled[0])",
			"  .text(`a\\`b`)",
			"  .duration(2000)",
		}},
		{"CanvasPanBare", "canvasPan", graph.Config{"scale": 1}, []string{"seq.canvasPan()"}},
		{"CanvasPan", "canvasPan", graph.Config{"at": "selected-token", "durationMs": 1000, "scale": 1.5, "lockViewMs": 500}, []string{
			"seq.canvasPan()",
			"  .atLocation(canvas.tokens.controlled[0])",
			"  .duration(1000)",
			"  .scale(1.5)",
			"  .lockView(500)",
		}},
		{"CrosshairDefault", "crosshair", nil, []string{`seq.crosshair("target")`}},
		{"Crosshair", "crosshair", graph.Config{"name": "spot", "file": " x.png "}, []string{
			`seq.crosshair("spot")`,
			`  .texture("x.png")`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emitRoot(t, tt.typeID, tt.cfg))
		})
	}
}

func TestUtilities(t *testing.T) {
	tests := []struct {
		name   string
		typeID string
		cfg    graph.Config
		want   []string
	}{
		{"Start", "start", graph.Config{"label": "go"}, nil},
		{"Play", "play", nil, nil},
		{"WaitZero", "wait", graph.Config{"ms": 0}, nil},
		{"WaitJunk", "wait", graph.Config{"ms": "abc"}, nil},
		{"Wait", "wait", graph.Config{"ms": 500}, []string{"seq.wait(500);"}},
		{"WaitRange", "wait", graph.Config{"ms": 500, "maxMs": 1000}, []string{"seq.wait(500, 1000);"}},
		{"WaitRangeInverted", "wait", graph.Config{"ms": 500, "maxMs": 100}, []string{"seq.wait(500);"}},
		{"MacroDefault", "macro", nil, []string{`seq.macro("Macro");`}},
		{"MacroEscapes", "macro", graph.Config{"macroName": `He said "hi"`}, []string{`seq.macro("He said \"hi\"");`}},
		{"PresetEmpty", "preset", nil, nil},
		{"Preset", "preset", graph.Config{"name": " boom "}, []string{`seq.preset("boom");`}},
		{"CallbackEmpty", "callback", graph.Config{"code": "\n  \n"}, nil},
		{"Callback", "callback", graph.Config{"code": "return 1;"}, []string{
			"seq.thenDo(async () => {",
			"  return 1;",
			"});",
		}},
		{"CallbackNoDefaultReturn", "callback", graph.Config{"code": "ui.notifications.info(\"done\");\r\nawait wait(10);"}, []string{
			"seq.thenDo(async () => {",
			`  ui.notifications.info("done");`,
			"  await wait(10);",
			"});",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emitUtility(t, tt.typeID, tt.cfg))
		})
	}
}

func TestChildren(t *testing.T) {
	tests := []struct {
		name   string
		typeID string
		cfg    graph.Config
		want   []string
	}{
		// placement
		{"AtLocationSelectedToken", "atLocation", graph.Config{"mode": "selected-token"}, []string{"  .atLocation(canvas.tokens.controlled[0])"}},
		{"AtLocationSelectedTarget", "atLocation", graph.Config{"mode": "selected-target"}, []string{"  .atLocation(Array.from(game.user.targets)[0])"}},
		{"AtLocationTokenID", "atLocation", graph.Config{"mode": "token-id", "tokenId": `a"b`}, []string{`  .atLocation(canvas.tokens.get("a\"b"))`}},
		{"AtLocationTokenIDBlank", "atLocation", graph.Config{"mode": "token-id", "tokenId": "  "}, nil},
		{"AtLocationTokenName", "atLocation", graph.Config{"mode": "token-name", "tokenName": "Goblin"}, []string{`  .atLocation(canvas.tokens.placeables.find(t => t.name === "Goblin"))`}},
		{"AtLocationTileIDEmpty", "atLocation", graph.Config{"mode": "tile-id"}, nil},
		{"AtLocationPoint", "atLocation", graph.Config{"mode": "point", "x": "12.5", "y": "abc"}, []string{"  .atLocation({ x: 12.5, y: 0 })"}},
		{"AtLocationStoredName", "atLocation", graph.Config{"mode": "stored-name", "storedName": "target"}, []string{`  .atLocation("target")`}},
		{"AtLocationNoMode", "atLocation", graph.Config{"tokenId": "x"}, nil},
		{"AtLocationForeignMode", "atLocation", graph.Config{"mode": "inToken"}, nil},
		{"AtLocationOptions", "atLocation", graph.Config{
			"mode": "selected-token", "cacheLocation": true, "randomOffset": 0.5,
			"offsetX": 10, "offsetY": 0, "local": true, "gridUnits": true,
		}, []string{"  .atLocation(canvas.tokens.controlled[0], { cacheLocation: true, randomOffset: 0.5, offset: { x: 10, y: 0 }, local: true, gridUnits: true })"}},
		{"AttachToBindFlags", "attachTo", graph.Config{"mode": "selected-token", "followRotation": false, "bindAlpha": false}, []string{"  .attachTo(canvas.tokens.controlled[0], { followRotation: false, bindAlpha: false })"}},
		{"AttachToPointNotAllowed", "attachTo", graph.Config{"mode": "point"}, nil},
		{"StretchTo", "stretchTo", graph.Config{"mode": "selected-target", "attachTo": true, "onlyX": true}, []string{"  .stretchTo(Array.from(game.user.targets)[0], { attachTo: true, onlyX: true })"}},
		{"From", "from", graph.Config{"mode": "token-id", "tokenId": "abc", "cacheLocation": true}, []string{`  .from(canvas.tokens.get("abc"), { cacheLocation: true })`}},
		{"OnInTile", "on", graph.Config{"mode": "inTile"}, []string{"  .on(inTile)"}},
		{"OnPoint", "on", graph.Config{"mode": "point", "x": 1, "y": 2}, []string{"  .on({ x: 1, y: 2 })"}},
		{"OnSelectedTokenNotAllowed", "on", graph.Config{"mode": "selected-token"}, nil},
		{"MoveTowardsInTokenDropsEase", "moveTowards", graph.Config{"mode": "inToken", "ease": "easeInOutQuad", "delay": 200, "relativeToCenter": true}, []string{"  .moveTowards(inToken, { delay: 200, relativeToCenter: true })"}},
		{"MoveTowardsTile", "moveTowards", graph.Config{"mode": "tile-id", "tileId": "t1", "ease": "linear"}, []string{`  .moveTowards(canvas.tiles.get("t1"), { ease: "linear" })`}},
		{"RotateTowardsShort", "rotateTowards", graph.Config{"mode": "inToken"}, []string{"  .rotateTowards(inToken)"}},
		{"RotateTowardsLong", "rotateTowards", graph.Config{
			"mode": "point", "x": 5, "y": 6, "duration": 500, "ease": "linear", "delay": 100,
			"rotationOffset": 90, "towardsCenter": false, "cacheLocation": true,
		}, []string{`  .rotateTowards({ x: 5, y: 6 }, { duration: 500, ease: "linear", delay: 100, rotationOffset: 90, towardsCenter: false, cacheLocation: true })`}},
		{"RotateTowardsEmptyTokenID", "rotateTowards", graph.Config{"mode": "token-id", "tokenId": ""}, nil},
		{"TeleportTo", "teleportTo", graph.Config{"mode": "inToken", "delay": 250}, []string{"  .teleportTo(inToken, { delay: 250 })"}},
		{"Offset", "offset", graph.Config{"x": 10, "y": -5}, []string{"  .offset({ x: 10, y: -5 })"}},
		{"OffsetDefaults", "offset", nil, []string{"  .offset({ x: 0, y: 0 })"}},
		{"ClosestSquare", "closestSquare", nil, []string{"  .closestSquare()"}},
		{"SnapToGrid", "snapToGrid", nil, []string{"  .snapToGrid()"}},
		{"Name", "name", graph.Config{"name": "impact"}, []string{`  .name("impact")`}},
		{"NameEmpty", "name", graph.Config{"name": ""}, nil},

		// timing
		{"WaitUntilFinished", "waitUntilFinished", nil, []string{"  .waitUntilFinished()"}},
		{"WaitUntilFinishedDelay", "waitUntilFinished", graph.Config{"minDelay": -500}, []string{"  .waitUntilFinished(-500)"}},
		{"Async", "async", nil, []string{"  .async()"}},
		{"DelayMin", "delay", graph.Config{"delayMin": 100}, []string{"  .delay(100)"}},
		{"DelayRange", "delay", graph.Config{"delayMin": 100, "delayMax": 300}, []string{"  .delay(100 , 300)"}},
		{"DelayDefaults", "delay", nil, []string{"  .delay(0)"}},
		{"DurationZero", "duration", graph.Config{"duration": 0}, []string{"  .duration(0)"}},
		{"DurationEmpty", "duration", graph.Config{"duration": ""}, nil},
		{"DurationJunk", "duration", graph.Config{"duration": "abc"}, nil},
		{"DurationAbsent", "duration", nil, nil},
		{"PlayIfBoolean", "playIf", graph.Config{"mode": "boolean", "bool": false}, []string{"  .playIf(false)"}},
		{"PlayIfBooleanTrue", "playIf", graph.Config{"mode": "boolean", "bool": true}, []string{"  .playIf(true)"}},
		{"PlayIfChance", "playIf", graph.Config{"mode": "chance", "chance": 0.25}, []string{"  .playIf(() => Math.random() < 0.25)"}},
		{"PlayIfChanceZero", "playIf", graph.Config{"mode": "chance", "chance": 0}, nil},
		{"PlayIfChanceOne", "playIf", graph.Config{"mode": "chance", "chance": 1}, nil},
		{"PlayIfAlways", "playIf", graph.Config{"mode": "always"}, nil},
		{"PlayIfNoMode", "playIf", graph.Config{"bool": true}, nil},
		{"RepeatsThreeArgs", "repeats", graph.Config{"repeats": 3, "repeatDelayMin": 100, "repeatDelayMax": 500}, []string{"  .repeats(3, 100, 500)"}},
		{"RepeatsTwoArgs", "repeats", graph.Config{"repeats": 3, "repeatDelayMin": 100}, []string{"  .repeats(3, 100)"}},
		{"RepeatsMaxBelowMin", "repeats", graph.Config{"repeats": 3, "repeatDelayMin": 500, "repeatDelayMax": 100}, []string{"  .repeats(3, 500)"}},
		{"RepeatsOneArg", "repeats", graph.Config{"repeats": "5", "repeatDelayMin": 0, "repeatDelayMax": 0}, []string{"  .repeats(5)"}},
		{"RepeatsOnce", "repeats", graph.Config{"repeats": 1, "repeatDelayMax": 100}, nil},
		{"StartTime", "startTime", graph.Config{"startTime": 1000, "startTimePerc": 0.25}, []string{"  .startTime(1000)", "  .startTimePerc(0.25)"}},
		{"StartTimeZero", "startTime", graph.Config{"startTime": 0, "startTimePerc": 0}, []string{"  .startTimePerc(0)"}},
		{"StartTimePercNegative", "startTime", graph.Config{"startTimePerc": -0.5}, []string{"  .startTimePerc(-0.5)"}},
		{"StartTimePercBlank", "startTime", graph.Config{"startTime": 0, "startTimePerc": ""}, nil},
		{"StartTimePercAbsent", "startTime", graph.Config{"startTime": 0}, nil},
		{"StartTimePercNull", "startTime", graph.Config{"startTimePerc": nil}, nil},
		{"StartTimeNegativeMs", "startTime", graph.Config{"startTime": -10}, nil},
		{"EndTimePerc", "endTime", graph.Config{"endTimePerc": 0.5}, []string{"  .endTimePerc(0.5)"}},
		{"EndTimePercZero", "endTime", graph.Config{"endTime": 0, "endTimePerc": 0}, []string{"  .endTimePerc(0)"}},
		{"EndTimePercBlank", "endTime", graph.Config{"endTimePerc": ""}, nil},
		{"EndTimePercAbsent", "endTime", graph.Config{}, nil},
		{"TimeRange", "timeRange", graph.Config{"start": 100, "end": 900}, []string{"  .timeRange(100, 900)"}},
		{"TimeRangeInverted", "timeRange", graph.Config{"start": 900, "end": 100}, nil},
		{"PlaybackRate", "playbackRate", graph.Config{"rate": 2}, []string{"  .playbackRate(2)"}},

		// visual
		{"OpacityZero", "opacity", graph.Config{"opacity": 0}, []string{"  .opacity(0)"}},
		{"OpacityString", "opacity", graph.Config{"opacity": "0.5"}, []string{"  .opacity(0.5)"}},
		{"OpacityNull", "opacity", graph.Config{"opacity": nil}, nil},
		{"Fade", "fade", graph.Config{
			"fadeInDuration": 500, "fadeInEase": "easeOutCubic",
			"fadeOutDuration": 300, "fadeOutDelay": 100,
		}, []string{`  .fadeIn(500, { ease: "easeOutCubic" })`, "  .fadeOut(300, { delay: 100 })"}},
		{"FadeNothing", "fade", nil, nil},
		{"FadeBlankEase", "fade", graph.Config{"fadeInDuration": 200, "fadeInEase": "   "}, []string{"  .fadeIn(200)"}},
		{"MoveSpeedZero", "moveSpeed", graph.Config{"moveSpeed": 0}, []string{"  .moveSpeed(0)"}},
		{"Rotate", "rotate", graph.Config{"rotate": 45}, []string{"  .rotate(45)"}},
		{"RotateZero", "rotate", graph.Config{"rotate": 0}, []string{"  .rotate(0)"}},
		{"RotateNull", "rotate", graph.Config{"rotate": nil}, []string{"  .rotate(0)"}},
		{"RotateBlank", "rotate", graph.Config{"rotate": ""}, []string{"  .rotate(0)"}},
		{"RotateAbsent", "rotate", graph.Config{}, nil},
		{"RotateNotNumeric", "rotate", graph.Config{"rotate": "left"}, nil},
		{"RotateIn", "rotateIn", graph.Config{"degrees": 90, "duration": 500}, []string{"  .rotateIn(90, 500)"}},
		{"RotateInOptions", "rotateIn", graph.Config{"degrees": 90, "duration": 500, "ease": "easeOutCubic", "delay": 100}, []string{`  .rotateIn(90, 500, { ease: "easeOutCubic", delay: 100 })`}},
		{"RotateInDefaults", "rotateIn", nil, []string{"  .rotateIn(0, 0)"}},
		{"RotateOut", "rotateOut", graph.Config{"degrees": -180, "duration": 250}, []string{"  .rotateOut(-180, 250)"}},
		{"ScaleIn", "scaleIn", graph.Config{"scale": 0.5, "duration": 250}, []string{"  .scaleIn(0.5, 250)"}},
		{"ScaleInNoDuration", "scaleIn", graph.Config{"scale": 0.5, "duration": 0}, nil},
		{"ScaleOut", "scaleOut", graph.Config{"scale": 2, "duration": 400, "ease": "easeInExpo"}, []string{`  .scaleOut(2, 400, { ease: "easeInExpo" })`}},
		{"TintReset", "tint", graph.Config{"mode": "reset"}, []string{"  .tint()"}},
		{"TintHex", "tint", graph.Config{"mode": "hex", "hex": "#ff0000"}, []string{`  .tint("#ff0000")`}},
		{"TintHexEmpty", "tint", graph.Config{"mode": "hex", "hex": ""}, nil},
		{"TintDecimal", "tint", graph.Config{"mode": "decimal", "dec": "16711680"}, []string{"  .tint(16711680)"}},
		{"TintDecimalHexLiteral", "tint", graph.Config{"mode": "decimal", "dec": "0xff"}, []string{"  .tint(255)"}},
		{"TintNone", "tint", graph.Config{"mode": "none", "hex": "#fff"}, nil},
		{"Hide", "hide", nil, []string{"  .hide()"}},
		{"Show", "show", nil, []string{"  .show()"}},
		{"ScaleZero", "scale", graph.Config{"scale": 0}, []string{"  .scale(0)"}},
		{"ScaleToObject", "scaleToObject", nil, []string{"  .scaleToObject()"}},
		{"ScaleToObjectFactor", "scaleToObject", graph.Config{"scale": 1.5}, []string{"  .scaleToObject(1.5)"}},
		{"ScaleToObjectOptions", "scaleToObject", graph.Config{"uniform": true}, []string{"  .scaleToObject(1, { uniform: true })"}},
		{"Size", "size", graph.Config{"width": 200, "height": 100, "gridUnits": true}, []string{"  .size({ width: 200, height: 100 }, { gridUnits: true })"}},
		{"SizeMissingWidth", "size", graph.Config{"height": 100}, nil},
		{"SpriteOffset", "spriteOffset", graph.Config{"x": 10, "local": true}, []string{"  .spriteOffset({ x: 10, y: 0 }, { local: true })"}},
		{"SpriteOffsetZero", "spriteOffset", graph.Config{"gridUnits": true}, nil},
		{"Mirror", "mirror", graph.Config{"x": true, "y": true}, []string{"  .mirrorX()", "  .mirrorY()"}},
		{"MirrorNone", "mirror", nil, nil},
		{"RandomRotation", "randomRotation", nil, []string{"  .randomRotation()"}},
		{"BelowTokens", "belowTokens", nil, []string{"  .belowTokens()"}},
		{"BelowTiles", "belowTiles", nil, []string{"  .belowTiles()"}},
		{"AboveLighting", "aboveLighting", nil, []string{"  .aboveLighting()"}},
		{"ZIndex", "zIndex", graph.Config{"zIndex": 3}, []string{"  .zIndex(3)"}},
		{"ElevationAbsolute", "elevation", graph.Config{"elevation": 0, "absolute": true}, []string{"  .elevation(0, { absolute: true })"}},
		{"FilterParams", "filter", graph.Config{"filter": "Glow", "params": "{ color: 0xff0000 }"}, []string{"  .filter(\"Glow\", { color: 0xff0000 })"}},
		{"FilterBare", "filter", graph.Config{"filter": "Blur"}, []string{`  .filter("Blur")`}},
		{"FilterUnknown", "filter", graph.Config{"filter": "Bogus"}, nil},
		{"Missed", "missed", nil, []string{"  .missed()"}},
		{"MissedOff", "missed", graph.Config{"missed": false}, nil},
		{"Persist", "persist", nil, []string{"  .persist()"}},
		{"PersistPrototype", "persist", graph.Config{"persistTokenPrototype": true}, []string{"  .persist(true, { persistTokenPrototype: true })"}},
		{"SyncGroup", "syncGroup", graph.Config{"group": "g1"}, []string{`  .syncGroup("g1")`}},
		{"ScreenSpace", "screenSpace", graph.Config{"x": 100, "y": 50, "aboveUI": true}, []string{
			"  .screenSpace()",
			"  .screenSpacePosition({ x: 100, y: 50 })",
			"  .screenSpaceAboveUI()",
		}},
		{"AnimateProperty", "animateProperty", graph.Config{
			"target": "sprite", "property": "position.x", "from": 0, "to": 100,
			"duration": 1000, "ease": "easeOutCubic",
		}, []string{`  .animateProperty("sprite", "position.x", { from: 0, to: 100, duration: 1000, ease: "easeOutCubic" })`}},
		{"AnimatePropertyNoDuration", "animateProperty", graph.Config{"target": "sprite", "property": "alpha"}, nil},
		{"LoopProperty", "loopProperty", graph.Config{
			"target": "sprite", "property": "rotation", "from": 0, "to": 360,
			"duration": 2000, "pingPong": true,
		}, []string{`  .loopProperty("sprite", "rotation", { from: 0, to: 360, duration: 2000, pingPong: true })`}},

		// audio
		{"FadeAudio", "fadeAudio", graph.Config{"fadeInDuration": 250}, []string{"  .fadeInAudio(250)"}},
		{"FadeAudioOut", "fadeAudio", graph.Config{"fadeOutDuration": 250, "fadeOutEase": "linear", "fadeOutDelay": 50}, []string{`  .fadeOutAudio(250, { ease: "linear", delay: 50 })`}},
		{"Volume", "volume", graph.Config{"volume": 0.5}, []string{"  .volume(0.5)"}},
		{"AudienceSelf", "audience", graph.Config{"mode": "self"}, []string{"  .locally()"}},
		{"AudienceGM", "audience", graph.Config{"mode": "gm"}, []string{"  .forUsers(game.users.filter(u => u.isGM).map(u => u.id))"}},
		{"AudienceUsers", "audience", graph.Config{"mode": "users", "users": "alice, bob ,,"}, []string{`  .forUsers(["alice", "bob"])`}},
		{"AudienceUsersEmpty", "audience", graph.Config{"mode": "users", "users": " , "}, nil},
		{"AudienceEveryone", "audience", graph.Config{"mode": "everyone"}, nil},

		// text
		{"TextWithoutSlot", "text", graph.Config{"text": "Hi"}, []string{"  .text(`Hi`)"}},
		{"TextEmptyWithoutSlot", "text", graph.Config{"text": "", "fill": "red"}, nil},
		{"ScrollAnchor", "scrollAnchor", graph.Config{"anchor": "TOP", "direction": "BOTTOM", "jitter": 0.5}, []string{
			"  .anchor(CONST.TEXT_ANCHOR_POINTS.TOP)",
			"  .direction(CONST.TEXT_ANCHOR_POINTS.BOTTOM)",
			"  .jitter(0.5)",
		}},
		{"ScrollAnchorUnknown", "scrollAnchor", graph.Config{"anchor": "top"}, nil},

		// canvas
		{"Shake", "shake", graph.Config{"duration": 500, "strength": 10, "rotation": false}, []string{"  .shake({ duration: 500, strength: 10, rotation: false })"}},
		{"ShakeFull", "shake", graph.Config{"duration": 500, "strength": 10, "frequency": 20, "fadeInDuration": 50, "fadeOutDuration": 100}, []string{"  .shake({ duration: 500, strength: 10, frequency: 20, fadeInDuration: 50, fadeOutDuration: 100 })"}},
		{"ShakeNoStrength", "shake", graph.Config{"duration": 500, "strength": 0}, nil},
		{"PanSpeed", "panSpeed", graph.Config{"speed": 2}, []string{"  .speed(2)"}},
		{"PanSpeedZero", "panSpeed", graph.Config{"speed": 0}, nil},

		// code
		{"Override", "override", graph.Config{"code": "data.x = 1;"}, []string{
			"  .addOverride(async (effect, data) => {",
			"    data.x = 1;",
			"    return data;",
			"  })",
		}},
		{"OverrideWithReturn", "override", graph.Config{"code": "if (!data) {\n  return data;\n}\nreturn { ...data, x: 1 };"}, []string{
			"  .addOverride(async (effect, data) => {",
			"    if (!data) {",
			"      return data;",
			"    }",
			"    return { ...data, x: 1 };",
			"  })",
		}},
		{"OverrideReturnedIsNotReturn", "override", graph.Config{"code": "data.returned = true;"}, []string{
			"  .addOverride(async (effect, data) => {",
			"    data.returned = true;",
			"    return data;",
			"  })",
		}},
		{"OverrideEmpty", "override", graph.Config{"code": "   "}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, emitChild(t, tt.typeID, tt.cfg))
		})
	}
}

func TestTextDeclaresStyle(t *testing.T) {
	b := compiler.NewBlock()
	b.Add("seq.scrollingText()")
	b.SetText("A", "  .text(`A`)")
	ctx := compiler.NewContext()

	Text.Child.CompileChild(&graph.Node{Type: "text", Config: graph.Config{
		"fill": "#fff", "fontFamily": "Signika", "fontSize": 24, "fontWeight": "bold",
		"stroke": "#000", "strokeThickness": 4, "dropShadow": true,
	}}, b, ctx)

	assert.Equal(t, []string{"seq.scrollingText()", "  .text(`A`, style1)"}, b.Lines())
	assert.Equal(t, []string{
		`const style1 = { fill: "#fff", fontFamily: "Signika", fontSize: 24, fontWeight: "bold", stroke: "#000", strokeThickness: 4, dropShadow: true };`,
	}, ctx.Declarations())
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name  string
		cfg   graph.Config
		modes []string
		want  string
	}{
		{"StoredNameFallsBackToName", graph.Config{"mode": "name", "name": "spot"}, locationModes, `"spot"`},
		{"StoredNameBlank", graph.Config{"mode": "stored-name", "storedName": " "}, locationModes, ""},
		{"InToken", graph.Config{"mode": "inToken"}, animationModes, "inToken"},
		{"PointNotAllowed", graph.Config{"mode": "point"}, placeableModes, ""},
		{"TokenNameEscapes", graph.Config{"mode": "token-name", "tokenName": `O\Neil`}, placeableModes, `canvas.tokens.placeables.find(t => t.name === "O\\Neil")`},
		{"Unknown", graph.Config{"mode": "everywhere"}, locationModes, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveTarget(tt.cfg, tt.modes))
		})
	}
}
