// Package entity provides the Pokémon and players that battles operate on.
package entity

import (
	"fmt"

	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/stats"
)

// Move is a catalog move plus the PP its holder has left.
// A Move belongs to exactly one Pokémon and is never shared.
type Move struct {
	gamedata.MoveDef
	CurrentPP int `json:"currentPp"`
}

// NewMove creates a move with full PP.
func NewMove(def *gamedata.MoveDef) *Move {
	return &Move{MoveDef: *def, CurrentPP: def.PP}
}

// Available returns true if the move has PP left.
func (m *Move) Available() bool { return m.CurrentPP > 0 }

// Use spends one PP and returns false if none was left.
func (m *Move) Use() bool {
	if m.CurrentPP <= 0 {
		return false
	}
	m.CurrentPP--
	return true
}

// Pokemon is a species instance at a fixed level.
type Pokemon struct {
	Species   string             `json:"species"` // Species display name
	Dex       int                `json:"dex"`     // Dex number, used for sprite ids
	Types     []string           `json:"types"`
	Level     int                `json:"level"`
	Stats     gamedata.StatBlock `json:"stats"` // Derived stats; Stats.HP is max HP
	CurrentHP int                `json:"currentHp"`
	Moves     []*Move            `json:"moves"`
}

// NewPokemon creates a Pokémon of the given species at level with full HP
// and every move its learnset grants up to that level.
func NewPokemon(def *gamedata.SpeciesDef, level int, moves *gamedata.MoveRegistry) (*Pokemon, error) {
	if level < 1 {
		return nil, fmt.Errorf("invalid level %d for %s", level, def.Name)
	}

	defs, err := moves.GetMultiple(def.MovesAt(level))
	if err != nil {
		return nil, fmt.Errorf("building moves for %s: %w", def.Name, err)
	}

	derived := stats.Derive(def.BaseStats, level)
	p := &Pokemon{
		Species:   def.Name,
		Dex:       def.Dex,
		Types:     append([]string(nil), def.Types...),
		Level:     level,
		Stats:     derived,
		CurrentHP: derived.HP,
		Moves:     make([]*Move, 0, len(defs)),
	}
	for _, m := range defs {
		p.Moves = append(p.Moves, NewMove(m))
	}
	return p, nil
}

// GetName returns the species name.
func (p *Pokemon) GetName() string { return p.Species }

// IsAlive returns true if the Pokémon has HP remaining.
func (p *Pokemon) IsAlive() bool { return p.CurrentHP > 0 }

// GetHP returns current HP.
func (p *Pokemon) GetHP() int { return p.CurrentHP }

// GetMaxHP returns maximum HP.
func (p *Pokemon) GetMaxHP() int { return p.Stats.HP }

// TakeDamage reduces HP, never below zero, and returns actual damage taken.
func (p *Pokemon) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.CurrentHP {
		actual = p.CurrentHP
	}
	p.CurrentHP -= actual
	return actual
}

// FindMove returns the move with the given name (case-insensitive), or nil.
func (p *Pokemon) FindMove(name string) *Move {
	key := gamedata.Key(name)
	for _, m := range p.Moves {
		if gamedata.Key(m.Name) == key {
			return m
		}
	}
	return nil
}

// FindMoveByButton returns the move whose button key matches, or nil.
// Button keys replace spaces with underscores, see gamedata.ButtonKey.
func (p *Pokemon) FindMoveByButton(key string) *Move {
	key = gamedata.ButtonKey(key)
	for _, m := range p.Moves {
		if gamedata.ButtonKey(m.Name) == key {
			return m
		}
	}
	return nil
}

// Restore brings HP and every move's PP back to full.
func (p *Pokemon) Restore() {
	p.CurrentHP = p.Stats.HP
	for _, m := range p.Moves {
		m.CurrentPP = m.PP
	}
}
