package nodes

import (
	"strings"

	"github.com/matzehuels/visualencer/pkg/compiler"
	"github.com/matzehuels/visualencer/pkg/graph"
	"github.com/matzehuels/visualencer/pkg/script"
)

// FadeAudio fades the chain's audio in and out.
var FadeAudio = child("fadeAudio", "Fade (Audio)", CategoryAudio,
	[]string{FamilyEffect, FamilySound, FamilyAnimation},
	inOutFields(),
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		inOut(n.Config, b, "fadeInAudio", "fadeOutAudio")
	})

var Volume = presence("volume", "Volume", CategoryAudio, "volume", "volume", 0.8, FamilySound)

// Audience limits who sees or hears the chain. Modes:
//
//	everyone  nothing
//	self      .locally()
//	gm        .forUsers(<ids of GM users>)
//	users     .forUsers(["a", "b"]) from a comma-separated list
var Audience = child("audience", "Audience", CategoryCommon,
	[]string{FamilyEffect, FamilySound},
	[]compiler.Field{enum("mode", "everyone", "everyone", "self", "gm", "users"), str("users", "")},
	func(n *graph.Node, b *compiler.Block, _ *compiler.Context) {
		c := n.Config
		switch c.Str("mode") {
		case "self":
			b.Chain("locally", nil)
		case "gm":
			b.Chain("forUsers", nil, "game.users.filter(u => u.isGM).map(u => u.id)")
		case "users":
			var names []string
			for _, u := range strings.Split(c.Str("users"), ",") {
				if u = strings.TrimSpace(u); u != "" {
					names = append(names, script.Quote(u))
				}
			}
			if len(names) > 0 {
				b.Chain("forUsers", nil, "["+strings.Join(names, ", ")+"]")
			}
		}
	})
