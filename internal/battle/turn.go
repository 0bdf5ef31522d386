package battle

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pkmnbot/internal/entity"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
)

// Side identifies a battle participant.
type Side int

const (
	SideNone Side = iota
	SidePlayer
	SideWild
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideWild:
		return "wild"
	default:
		return "none"
	}
}

// Action records what one participant did during a turn.
type Action struct {
	Side       Side
	Attacker   string
	Defender   string
	Move       string // Empty if the participant had no move to use
	Damage     int
	Multiplier float64
}

// TurnResult contains the outcome of a turn.
type TurnResult struct {
	Messages   []string // Narrative, in order
	Actions    []Action // One or two entries, in order of action
	Terminal   bool     // True if the battle ended
	Phase      Phase    // Phase after the turn
	KnockedOut Side     // Which side fainted, SideNone if nobody did
}

// actor is one side's half of a turn.
type actor struct {
	side       Side
	self, foe  *entity.Pokemon
	move       *entity.Move
	multiplier float64
}

// ResolveTurn plays one turn: the player uses moveName, the wild Pokémon uses
// a move picked with moveRNG, and the faster side acts first. Speed ties go to
// the player. The turn stops as soon as one side faints.
//
// On error the battle is left exactly as it was.
func (r *Resolver) ResolveTurn(ctx context.Context, b *Battle, moveName string, moveRNG, damageRNG Rand) (TurnResult, error) {
	if b == nil || b.Phase.Terminal() {
		return TurnResult{}, ErrNoBattle
	}
	if !b.Player.IsAlive() {
		return TurnResult{}, fmt.Errorf("%w: %s", ErrFainted, b.Player.GetName())
	}
	if !b.Wild.IsAlive() {
		return TurnResult{}, fmt.Errorf("%w: %s", ErrFainted, b.Wild.GetName())
	}

	move := b.Player.FindMove(moveName)
	if move == nil {
		return TurnResult{}, &InvalidMoveError{Move: moveName, Reason: ReasonUnknownMove}
	}
	if !move.Available() {
		return TurnResult{}, &InvalidMoveError{Move: move.Name, Reason: ReasonNoPP}
	}

	player := actor{side: SidePlayer, self: b.Player, foe: b.Wild, move: move}
	wild := actor{side: SideWild, self: b.Wild, foe: b.Player, move: pickMove(b.Wild, moveRNG)}

	// Resolve every chart lookup before mutating anything
	for _, a := range []*actor{&player, &wild} {
		if a.move == nil || a.move.IsStatus() {
			continue
		}
		multiplier, err := r.Effectiveness(a.move.Type, a.foe.Types)
		if err != nil {
			return TurnResult{}, err
		}
		a.multiplier = multiplier
	}

	tracer := telemetry.Tracer("battle")
	ctx, span := tracer.Start(ctx, "battle.turn")
	defer span.End()

	first, second := player, wild
	if b.Player.Stats.Speed < b.Wild.Stats.Speed {
		first, second = wild, player
	}

	b.Phase = PhaseActive
	b.Turns++

	var result TurnResult
	for _, a := range []actor{first, second} {
		action := a.act(damageRNG)
		result.Actions = append(result.Actions, action)
		result.Messages = append(result.Messages, describe(action, a.move)...)

		if !a.foe.IsAlive() {
			result.Terminal = true
			result.KnockedOut = opposite(a.side)
			if a.side == SidePlayer {
				b.Phase = PhaseVictory
				result.Messages = append(result.Messages, fmt.Sprintf("Le %s sauvage est K.O. !", a.foe.GetName()))
			} else {
				b.Phase = PhaseDefeat
				result.Messages = append(result.Messages, fmt.Sprintf("Ton %s est K.O. !", a.foe.GetName()))
			}
			break
		}
	}
	result.Phase = b.Phase

	span.SetAttributes(
		attribute.String("battle.id", b.ID.String()),
		attribute.Int("turn", b.Turns),
		attribute.String("player_move", move.Name),
		attribute.String("first_actor", first.side.String()),
		attribute.Int("player_hp", b.Player.CurrentHP),
		attribute.Int("wild_hp", b.Wild.CurrentHP),
	)
	if wild.move != nil {
		span.SetAttributes(attribute.String("wild_move", wild.move.Name))
	}

	if result.Terminal {
		b.end(ctx)
	}
	return result, nil
}

// act performs one side's action. Only the player's PP is spent.
func (a actor) act(rng Rand) Action {
	action := Action{
		Side:     a.side,
		Attacker: a.self.GetName(),
		Defender: a.foe.GetName(),
	}
	if a.move == nil {
		return action
	}

	action.Move = a.move.Name
	action.Multiplier = a.multiplier
	if a.side == SidePlayer {
		a.move.Use()
	}
	amount := damage(a.self, a.foe, &a.move.MoveDef, a.multiplier, rng)
	action.Damage = a.foe.TakeDamage(amount)
	return action
}

// pickMove selects one of p's moves uniformly, or nil if it has none.
func pickMove(p *entity.Pokemon, rng Rand) *entity.Move {
	if len(p.Moves) == 0 {
		return nil
	}
	return p.Moves[rng.Intn(len(p.Moves))]
}

func opposite(s Side) Side {
	if s == SidePlayer {
		return SideWild
	}
	return SidePlayer
}

// describe turns an action into narrative lines.
func describe(a Action, move *entity.Move) []string {
	if move == nil {
		return []string{fmt.Sprintf("%s ne peut rien faire !", a.Attacker)}
	}
	if move.IsStatus() {
		return []string{fmt.Sprintf("%s utilise %s !", a.Attacker, a.Move)}
	}

	lines := []string{fmt.Sprintf("%s utilise %s et inflige %d dégâts à %s !", a.Attacker, a.Move, a.Damage, a.Defender)}
	switch {
	case a.Multiplier == 0:
		lines = append(lines, fmt.Sprintf("Ça n'affecte pas %s...", a.Defender))
	case a.Multiplier > 1:
		lines = append(lines, "C'est super efficace !")
	case a.Multiplier < 1:
		lines = append(lines, "Ce n'est pas très efficace...")
	}
	return lines
}
