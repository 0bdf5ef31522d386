// Package game runs adventures: it ties the catalog, the map, the battle
// engine and the session store together behind chat-style commands.
package game

import "fmt"

// State represents what a user is currently doing.
type State int

const (
	// StateNew - no adventure started yet
	StateNew State = iota
	// StateExplore - walking around the map
	StateExplore
	// StateBattle - facing a wild Pokémon
	StateBattle
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateExplore:
		return "explore"
	case StateBattle:
		return "battle"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{StateNew, StateExplore, StateBattle} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
