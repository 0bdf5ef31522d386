package game

import (
	"errors"
	"fmt"

	"github.com/samdwyer/pkmnbot/internal/battle"
	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/world"
)

var (
	// ErrNotStarted is returned when a user without a player acts.
	ErrNotStarted = errors.New("adventure not started")
	// ErrAlreadyStarted is returned when a user starts a second time.
	ErrAlreadyStarted = errors.New("adventure already started")
	// ErrUnknownRoute is returned when travelling somewhere unreachable.
	ErrUnknownRoute = world.ErrUnknownRoute
	// ErrUnknownCommand is returned for a prefixed message the bot does not understand.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrUnknownAction is returned for a button that matches nothing at the
	// player's location.
	ErrUnknownAction = errors.New("unknown action")
)

// userLookupKinds are the lookups a user can fail by typing a name. Any other
// failed lookup means the catalog is broken.
var userLookupKinds = map[string]bool{
	"starter":  true,
	"move":     true,
	"location": true,
}

// userError reports whether err is caused by the user's input rather than by
// the bot.
func userError(err error) bool {
	var invalid *battle.InvalidMoveError
	if errors.As(err, &invalid) {
		return true
	}
	var lookup *gamedata.LookupError
	if errors.As(err, &lookup) {
		return userLookupKinds[lookup.Kind]
	}
	for _, target := range []error{
		ErrNotStarted, ErrAlreadyStarted, ErrUnknownRoute, ErrUnknownCommand, ErrUnknownAction,
		battle.ErrNoBattle, battle.ErrBattleInProgress, battle.ErrNoWildPokemon, battle.ErrFainted,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// userMessage converts an error into the text shown to the user.
func userMessage(err error) string {
	var invalid *battle.InvalidMoveError
	if errors.As(err, &invalid) {
		if invalid.Reason == battle.ReasonNoPP {
			return fmt.Sprintf("%s n'a plus de PP !", invalid.Move)
		}
		return fmt.Sprintf("Ton Pokémon ne connaît pas l'attaque %s.", invalid.Move)
	}

	var lookup *gamedata.LookupError
	if errors.As(err, &lookup) && userLookupKinds[lookup.Kind] {
		return fmt.Sprintf("Introuvable : %s.", lookup.Key)
	}

	switch {
	case errors.Is(err, ErrNotStarted):
		return "Tu n'as pas encore commencé ton aventure ! Utilise la commande start."
	case errors.Is(err, ErrAlreadyStarted):
		return "Tu as déjà commencé ton aventure !"
	case errors.Is(err, ErrUnknownRoute):
		return "Tu ne peux pas aller là d'ici."
	case errors.Is(err, ErrUnknownCommand):
		return "Commande inconnue. Utilise la commande help."
	case errors.Is(err, ErrUnknownAction):
		return "Tu ne peux pas faire ça ici."
	case errors.Is(err, battle.ErrNoBattle):
		return "Tu n'es pas en combat."
	case errors.Is(err, battle.ErrBattleInProgress):
		return "Tu es déjà en combat !"
	case errors.Is(err, battle.ErrNoWildPokemon):
		return "Il n'y a aucun Pokémon sauvage ici."
	case errors.Is(err, battle.ErrFainted):
		return "Ton Pokémon est K.O. ! Va le soigner au centre Pokémon de Jadielle."
	default:
		return "Une erreur est survenue, réessaie plus tard."
	}
}
