package game

import (
	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

// Button ids understood by HandleButton besides location actions, routes and
// starters.
const (
	ButtonFight   = "fight"
	ButtonFlee    = "flee"
	ButtonExplore = "explore"
	ButtonStatus  = "status"

	// AttackPrefix starts every move button id, e.g. "attack_pistolet_à_o".
	AttackPrefix = "attack_"
)

// Button is a choice offered to the user.
type Button struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Reply is everything a front-end needs to answer one user interaction.
type Reply struct {
	State     State         `json:"state"`
	Lines     []string      `json:"lines,omitempty"`
	Buttons   []Button      `json:"buttons,omitempty"`
	Battle    *BattleView   `json:"battle,omitempty"`
	Team      []PokemonView `json:"team,omitempty"`
	Sprite    int           `json:"sprite,omitempty"`    // Dex number of the Pokémon to show, 0 for none
	Ephemeral bool          `json:"ephemeral,omitempty"` // Only the acting user should see it
}

// MoveView is a move as shown to the user.
type MoveView struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	PP     int    `json:"pp"`
	MaxPP  int    `json:"maxPp"`
	Button string `json:"button"`
}

// PokemonView is a Pokémon as shown to the user.
type PokemonView struct {
	Name  string     `json:"name"`
	Dex   int        `json:"dex"`
	Types []string   `json:"types"`
	Level int        `json:"level"`
	HP    int        `json:"hp"`
	MaxHP int        `json:"maxHp"`
	Moves []MoveView `json:"moves,omitempty"`
}

// BattleView is a battle as shown to the user.
type BattleView struct {
	ID     string      `json:"id"`
	Phase  string      `json:"phase"`
	Turns  int         `json:"turns"`
	Player PokemonView `json:"player"`
	Wild   PokemonView `json:"wild"`
}

func newPokemonView(p *entity.Pokemon) PokemonView {
	v := PokemonView{
		Name:  p.Species,
		Dex:   p.Dex,
		Types: p.Types,
		Level: p.Level,
		HP:    p.GetHP(),
		MaxHP: p.GetMaxHP(),
	}
	for _, m := range p.Moves {
		v.Moves = append(v.Moves, MoveView{
			Name:   m.Name,
			Type:   m.Type,
			PP:     m.CurrentPP,
			MaxPP:  m.PP,
			Button: AttackPrefix + gamedata.ButtonKey(m.Name),
		})
	}
	return v
}

func newBattleView(b *battle.Battle) *BattleView {
	return &BattleView{
		ID:     b.ID.String(),
		Phase:  b.Phase.String(),
		Turns:  b.Turns,
		Player: newPokemonView(b.Player),
		Wild:   newPokemonView(b.Wild),
	}
}
