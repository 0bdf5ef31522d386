package world

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/pkmnbot/internal/gamedata"
	"github.com/samdwyer/pkmnbot/internal/telemetry"
)

// ErrUnknownRoute is returned when travelling somewhere not reachable from
// the current location.
var ErrUnknownRoute = errors.New("no route to destination")

// Map represents the location graph.
type Map struct {
	locations map[string]*Location
	order     []*Location
}

// NewMap builds the map from location definitions. Every route must lead to a
// known location and every wild species must exist in the registry.
func NewMap(ctx context.Context, defs []gamedata.LocationDef, species *gamedata.SpeciesRegistry) (*Map, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.build")
	defer span.End()

	m := &Map{
		locations: make(map[string]*Location, len(defs)),
		order:     make([]*Location, 0, len(defs)),
	}

	routes := 0
	for _, def := range defs {
		if _, dup := m.locations[def.ID]; dup {
			return nil, fmt.Errorf("duplicate location %q", def.ID)
		}

		loc := &Location{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Routes:      append([]string(nil), def.Routes...),
			actions:     make([]Action, 0, len(def.Actions)),
		}
		for _, a := range def.Actions {
			loc.actions = append(loc.actions, newAction(a))
		}
		for _, name := range def.Wild {
			s, err := species.Get(name)
			if err != nil {
				return nil, fmt.Errorf("location %s: %w", def.ID, err)
			}
			loc.pool = append(loc.pool, s)
		}

		m.locations[def.ID] = loc
		m.order = append(m.order, loc)
		routes += len(def.Routes)
	}

	for _, loc := range m.order {
		for _, r := range loc.Routes {
			if _, ok := m.locations[r]; !ok {
				return nil, fmt.Errorf("location %s: %w", loc.ID, &gamedata.LookupError{Kind: "location", Key: r})
			}
		}
	}

	span.SetAttributes(
		attribute.Int("map.location_count", len(m.order)),
		attribute.Int("map.route_count", routes),
	)
	return m, nil
}

// Get returns the location with the given ID.
func (m *Map) Get(id string) (*Location, error) {
	if loc := m.locations[id]; loc != nil {
		return loc, nil
	}
	return nil, &gamedata.LookupError{Kind: "location", Key: id}
}

// Locations returns all locations in catalog order.
func (m *Map) Locations() []*Location {
	return m.order
}

// CanTravel returns true if to is directly reachable from from.
func (m *Map) CanTravel(from, to string) bool {
	loc := m.locations[from]
	if loc == nil || m.locations[to] == nil {
		return false
	}
	return loc.HasRoute(to)
}

// Travel returns the destination if it is directly reachable from from.
func (m *Map) Travel(ctx context.Context, from, to string) (*Location, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "map.travel")
	defer span.End()

	span.SetAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	)

	if _, err := m.Get(from); err != nil {
		return nil, err
	}
	if !m.CanTravel(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrUnknownRoute, from, to)
	}
	return m.locations[to], nil
}
