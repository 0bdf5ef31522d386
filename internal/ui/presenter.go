// Package ui turns game replies into something a person can read: a tcell
// terminal front-end and the formatting helpers shared by every front-end.
package ui

import (
	"fmt"

	"github.com/samdwyer/pkmnbot/internal/game"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

// Presenter is a front-end able to show replies.
type Presenter interface {
	RenderText(lines []string, ephemeral bool) error
	RenderButtons(buttons []game.Button) error
	RenderImage(url string) error
}

// Present renders a reply: its text with battle and team summaries, then the
// sprite, then the buttons. Parts the reply does not carry are skipped.
func Present(p Presenter, r game.Reply, types *gamedata.TypeRegistry) error {
	lines := append([]string(nil), r.Lines...)
	if r.Battle != nil {
		lines = append(lines, "")
		lines = append(lines, PokemonLines(r.Battle.Wild, types, true)...)
		lines = append(lines, PokemonLines(r.Battle.Player, types, false)...)
	}
	for _, pk := range r.Team {
		lines = append(lines, "")
		lines = append(lines, PokemonLines(pk, types, false)...)
		for _, m := range pk.Moves {
			lines = append(lines, fmt.Sprintf("  %s %s %d/%d PP", TypeGlyphs([]string{m.Type}, types), m.Name, m.PP, m.MaxPP))
		}
	}

	if err := p.RenderText(lines, r.Ephemeral); err != nil {
		return err
	}
	if r.Sprite > 0 {
		if err := p.RenderImage(SpriteURL(r.Sprite)); err != nil {
			return err
		}
	}
	if len(r.Buttons) > 0 {
		return p.RenderButtons(r.Buttons)
	}
	return nil
}

// PokemonLines renders a name line and an HP bar line.
func PokemonLines(v game.PokemonView, types *gamedata.TypeRegistry, wild bool) []string {
	name := v.Name
	if wild {
		name += " sauvage"
	}
	return []string{
		fmt.Sprintf("%s Nv. %d %s", name, v.Level, TypeGlyphs(v.Types, types)),
		HPBar(v.HP, v.MaxHP),
	}
}
