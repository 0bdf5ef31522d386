package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
)

// Phase represents where a battle is in its lifecycle.
// The absence of a battle is not a phase: callers hold a nil *Battle.
type Phase int

const (
	// PhaseEncountered - a wild Pokémon appeared, nothing chosen yet
	PhaseEncountered Phase = iota
	// PhaseActive - the player chose to fight
	PhaseActive
	// PhaseVictory - the wild Pokémon fainted
	PhaseVictory
	// PhaseDefeat - the player's Pokémon fainted
	PhaseDefeat
	// PhaseFled - the player ran away
	PhaseFled
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseEncountered:
		return "encountered"
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal returns true for phases that end the battle.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

// Battle holds the state of one wild encounter. The player's Pokémon is the
// same instance owned by the player's team; the wild one belongs to the battle.
type Battle struct {
	ID     uuid.UUID       `json:"id"`
	Player *entity.Pokemon `json:"player"`
	Wild   *entity.Pokemon `json:"wild"`
	Phase  Phase           `json:"phase"`
	Turns  int             `json:"turns"`
}

// EncounterParams holds everything needed to generate a wild encounter.
type EncounterParams struct {
	Player *entity.Pokemon        // The player's active Pokémon
	Pool   []*gamedata.SpeciesDef // Wild species of the current location
	Level  int                    // Level of the wild Pokémon
	Moves  *gamedata.MoveRegistry // Used to build the wild move list
	Rand   Rand                   // Picks the species
}

// Encounter picks a wild species uniformly from the pool and opens a battle
// against it in PhaseEncountered.
func Encounter(ctx context.Context, p EncounterParams) (*Battle, error) {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.encounter")
	defer span.End()

	if p.Player == nil {
		return nil, errors.New("encounter without a player Pokémon")
	}
	if !p.Player.IsAlive() {
		return nil, fmt.Errorf("%w: %s", ErrFainted, p.Player.GetName())
	}
	if len(p.Pool) == 0 {
		return nil, ErrNoWildPokemon
	}

	species := p.Pool[p.Rand.Intn(len(p.Pool))]
	wild, err := entity.NewPokemon(species, p.Level, p.Moves)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		ID:     uuid.New(),
		Player: p.Player,
		Wild:   wild,
		Phase:  PhaseEncountered,
	}

	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.String("wild.species", wild.Species),
		attribute.Int("wild.level", wild.Level),
		attribute.Int("wild.moves", len(wild.Moves)),
		attribute.Int("pool_size", len(p.Pool)),
	)
	return b, nil
}

// Fight confirms the player wants to battle. Fighting an active battle is a
// no-op.
func (b *Battle) Fight() error {
	if b == nil || b.Phase.Terminal() {
		return ErrNoBattle
	}
	b.Phase = PhaseActive
	return nil
}

// Flee ends the battle. Fleeing always succeeds.
func (b *Battle) Flee(ctx context.Context) (TurnResult, error) {
	if b == nil || b.Phase.Terminal() {
		return TurnResult{}, ErrNoBattle
	}

	b.Phase = PhaseFled
	result := TurnResult{
		Messages: []string{"Tu as fui le combat !"},
		Terminal: true,
		Phase:    PhaseFled,
	}
	b.end(ctx)
	return result, nil
}

// Terminal returns true if the battle is over.
func (b *Battle) Terminal() bool {
	return b != nil && b.Phase.Terminal()
}

// end records the outcome of a finished battle.
func (b *Battle) end(ctx context.Context) {
	tracer := telemetry.Tracer("battle")
	_, span := tracer.Start(ctx, "battle.end")
	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.String("outcome", b.Phase.String()),
		attribute.Int("turns_taken", b.Turns),
		attribute.Int("player_hp_remaining", b.Player.CurrentHP),
		attribute.Int("wild_hp_remaining", b.Wild.CurrentHP),
	)
	span.End()
}
