// Package world provides the location graph players walk around in.
package world

import "github.com/samdwyer/pkmnbot/internal/gamedata"

// ActionKind represents what happens when a location action is chosen.
type ActionKind int

const (
	// ActionFlavor only shows a message.
	ActionFlavor ActionKind = iota
	// ActionSearch looks for a wild Pokémon.
	ActionSearch
	// ActionHeal restores the player's team.
	ActionHeal
)

// String returns a human-readable action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionSearch:
		return "search"
	case ActionHeal:
		return "heal"
	default:
		return "flavor"
	}
}

// Action is something the player can do at a location.
type Action struct {
	Label   string
	Message string
	Kind    ActionKind
}

func newAction(def gamedata.ActionDef) Action {
	kind := ActionFlavor
	switch {
	case def.Search:
		kind = ActionSearch
	case def.Heal:
		kind = ActionHeal
	}
	return Action{Label: def.Label, Message: def.Message, Kind: kind}
}

// Button returns the button id of the action, e.g. "chercher_des_pokémon_sauvages".
func (a Action) Button() string {
	return gamedata.ButtonKey(a.Label)
}
