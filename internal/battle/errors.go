package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBattle is returned for any battle action when no battle is in
	// progress, including on a battle that already ended.
	ErrNoBattle = errors.New("no battle in progress")

	// ErrBattleInProgress is returned when starting an encounter while one
	// is already active.
	ErrBattleInProgress = errors.New("a battle is already in progress")

	// ErrNoWildPokemon is returned when searching a location with an empty pool.
	ErrNoWildPokemon = errors.New("no wild Pokémon here")

	// ErrFainted is returned when a participant has no HP left to fight with.
	ErrFainted = errors.New("pokémon has fainted")
)

// InvalidMoveReason explains why a move was rejected.
type InvalidMoveReason int

const (
	// ReasonUnknownMove - the Pokémon does not know the move
	ReasonUnknownMove InvalidMoveReason = iota
	// ReasonNoPP - the move has no PP left
	ReasonNoPP
)

// InvalidMoveError rejects a move selection. The battle is left untouched.
type InvalidMoveError struct {
	Move   string
	Reason InvalidMoveReason
}

func (e *InvalidMoveError) Error() string {
	switch e.Reason {
	case ReasonNoPP:
		return fmt.Sprintf("move %q has no PP left", e.Move)
	default:
		return fmt.Sprintf("move %q is not known", e.Move)
	}
}
