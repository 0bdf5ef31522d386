// Package battle provides the turn-based battle engine: damage, turn order
// and the lifecycle of a single wild encounter.
package battle

import (
	"math"

	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

// Damage variance is (minRoll + rng.Intn(rollRange)) / 100, so every factor
// from 0.85 to 1.00 inclusive is equally likely.
const (
	minRoll   = 85
	rollRange = 16
)

// Resolver calculates damage and resolves turns against a type chart.
type Resolver struct {
	chart *gamedata.TypeChart
}

// NewResolver creates a new resolver.
func NewResolver(chart *gamedata.TypeChart) *Resolver {
	return &Resolver{chart: chart}
}

// Effectiveness returns the multiplier of attackType against defenderTypes.
func (r *Resolver) Effectiveness(attackType string, defenderTypes []string) (float64, error) {
	return r.chart.Multiplier(attackType, defenderTypes)
}

// CalculateDamage calculates the damage move would deal without applying it.
// Status moves deal 0 and consume no randomness.
func (r *Resolver) CalculateDamage(attacker, defender *entity.Pokemon, move *gamedata.MoveDef, rng Rand) (int, error) {
	if move.IsStatus() {
		return 0, nil
	}
	multiplier, err := r.Effectiveness(move.Type, defender.Types)
	if err != nil {
		return 0, err
	}
	return damage(attacker, defender, move, multiplier, rng), nil
}

// RandomFactor draws a damage variance factor in [0.85, 1.00].
func RandomFactor(rng Rand) float64 {
	return float64(minRoll+rng.Intn(rollRange)) / 100
}

// damage applies the damage formula with a precomputed type multiplier:
//
//	floor(((2*level/5 + 2) * power * offense / defense / 50 + 2) * multiplier * random)
func damage(attacker, defender *entity.Pokemon, move *gamedata.MoveDef, multiplier float64, rng Rand) int {
	if move.IsStatus() {
		return 0
	}

	offense, defense := attacker.Stats.Attack, defender.Stats.Defense
	if move.Category == gamedata.CategorySpecial {
		offense, defense = attacker.Stats.SpAttack, defender.Stats.SpDefense
	}
	if defense <= 0 {
		defense = 1
	}

	base := (2*float64(attacker.Level)/5+2)*float64(move.Power)*float64(offense)/float64(defense)/50 + 2
	amount := int(math.Floor(base * multiplier * RandomFactor(rng)))
	if amount < 0 {
		amount = 0
	}
	return amount
}
