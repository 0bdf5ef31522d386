// Package stats derives level-scaled battle stats from species base stats.
package stats

import "github.com/samdwyer/pkmnbot/internal/gamedata"

// Fixed individual and effort values: every Pokémon is treated as having a
// perfect IV and a full 252 EV investment in every stat.
const (
	fixedIV = 31
	fixedEV = 252
)

// Derive returns the battle stats of a Pokémon with the given base stats at
// level. All divisions truncate. Level must be at least 1.
func Derive(base gamedata.StatBlock, level int) gamedata.StatBlock {
	return gamedata.StatBlock{
		HP:        hp(base.HP, level),
		Attack:    other(base.Attack, level),
		Defense:   other(base.Defense, level),
		SpAttack:  other(base.SpAttack, level),
		SpDefense: other(base.SpDefense, level),
		Speed:     other(base.Speed, level),
	}
}

func hp(base, level int) int {
	return (2*base+fixedIV+fixedEV/4)*level/100 + level + 10
}

func other(base, level int) int {
	return (2*base+fixedIV+fixedEV/4)*level/100 + 5
}
