package world

import (
	"strings"

	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

// RoutePrefix starts every travel button id.
const RoutePrefix = "goto_"

// Location is a place on the map with its actions and wild pool resolved.
type Location struct {
	ID          string
	Name        string
	Description string
	Routes      []string // IDs of directly reachable locations
	actions     []Action
	pool        []*gamedata.SpeciesDef
}

// Actions returns the actions available at the location, in catalog order.
func (l *Location) Actions() []Action {
	return l.actions
}

// Action returns the action whose button id matches button.
func (l *Location) Action(button string) (Action, bool) {
	key := gamedata.ButtonKey(button)
	for _, a := range l.actions {
		if a.Button() == key {
			return a, true
		}
	}
	return Action{}, false
}

// WildPool returns the species that can be encountered here. It is empty for
// towns.
func (l *Location) WildPool() []*gamedata.SpeciesDef {
	return l.pool
}

// HasRoute returns true if id is directly reachable from the location.
func (l *Location) HasRoute(id string) bool {
	for _, r := range l.Routes {
		if r == id {
			return true
		}
	}
	return false
}

// RouteButton returns the travel button id for a destination.
func RouteButton(id string) string {
	return RoutePrefix + id
}

// ParseRouteButton extracts the destination from a travel button id.
func ParseRouteButton(button string) (string, bool) {
	if !strings.HasPrefix(button, RoutePrefix) {
		return "", false
	}
	return strings.TrimPrefix(button, RoutePrefix), true
}
