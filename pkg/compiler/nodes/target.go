package nodes

import (
	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// Target modes. Each node accepts a closed subset.
const (
	ModeSelectedToken  = "selected-token"
	ModeSelectedTarget = "selected-target"
	ModeTokenID        = "token-id"
	ModeTokenName      = "token-name"
	ModeTileID         = "tile-id"
	ModePoint          = "point"
	ModeStoredName     = "stored-name"
	ModeName           = "name"
	ModeInToken        = "inToken"
	ModeInTile         = "inTile"
)

var (
	// placeableModes address tokens, tiles and stored names.
	placeableModes = []string{ModeSelectedToken, ModeSelectedTarget, ModeTokenID, ModeTokenName, ModeTileID, ModeStoredName, ModeName}
	// locationModes add raw canvas points.
	locationModes = append(append([]string(nil), placeableModes...), ModePoint)
	// animationModes are used by animation-section movement nodes.
	animationModes = []string{ModeInToken, ModeInTile, ModeTokenID, ModeTileID, ModePoint}
)

// targetFields returns the config fields consumed by resolveTarget.
func targetFields(def string, modes []string) []compiler.Field {
	fs := []compiler.Field{enum("mode", def, modes...)}
	for _, m := range modes {
		switch m {
		case ModeTokenID:
			fs = append(fs, str("tokenId", ""))
		case ModeTokenName:
			fs = append(fs, str("tokenName", ""))
		case ModeTileID:
			fs = append(fs, str("tileId", ""))
		case ModePoint:
			fs = append(fs, num("x", 0), num("y", 0))
		case ModeStoredName:
			fs = append(fs, str("storedName", ""))
		}
	}
	return fs
}

// resolveTarget returns the target expression for the node's mode, or ""
// when the mode is not in modes or its required sub-field is blank.
//
//	selected-token   canvas.tokens.controlled[0]
//	selected-target  Array.from(game.user.targets)[0]
//	token-id         canvas.tokens.get("<tokenId>")
//	token-name       canvas.tokens.placeables.find(t => t.name === "<tokenName>")
//	tile-id          canvas.tiles.get("<tileId>")
//	point            { x: <x>, y: <y> }
//	stored-name      "<storedName>"
//	inToken, inTile  bare identifiers
func resolveTarget(c graph.Config, modes []string) string {
	mode := c.Str("mode")
	allowed := false
	for _, m := range modes {
		if m == mode {
			allowed = true
			break
		}
	}
	if !allowed {
		return ""
	}

	switch mode {
	case ModeSelectedToken:
		return "canvas.tokens.controlled[0]"
	case ModeSelectedTarget:
		return "Array.from(game.user.targets)[0]"
	case ModeTokenID:
		if c.Trim("tokenId") == "" {
			return ""
		}
		return "canvas.tokens.get(" + script.Quote(c.Get("tokenId")) + ")"
	case ModeTokenName:
		if c.Trim("tokenName") == "" {
			return ""
		}
		return "canvas.tokens.placeables.find(t => t.name === " + script.Quote(c.Get("tokenName")) + ")"
	case ModeTileID:
		if c.Trim("tileId") == "" {
			return ""
		}
		return "canvas.tiles.get(" + script.Quote(c.Get("tileId")) + ")"
	case ModePoint:
		return script.Point(c.Get("x"), c.Get("y"))
	case ModeStoredName, ModeName:
		name := c.Trim("storedName")
		if name == "" {
			name = c.Trim("name")
		}
		if name == "" {
			return ""
		}
		return script.Quote(name)
	case ModeInToken:
		return "inToken"
	case ModeInTile:
		return "inTile"
	}
	return ""
}
