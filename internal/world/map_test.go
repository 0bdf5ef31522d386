package world

import (
	"context"
	"errors"
	"testing"

	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

func newTestMap(t *testing.T) *Map {
	t.Helper()
	catalog := gamedata.MustLoadCatalog()
	m, err := NewMap(context.Background(), catalog.Locations, catalog.Species)
	if err != nil {
		t.Fatalf("NewMap() error = %v", err)
	}
	return m
}

func TestNewMap(t *testing.T) {
	m := newTestMap(t)

	if len(m.Locations()) != 3 {
		t.Fatalf("len(Locations()) = %d, want 3", len(m.Locations()))
	}

	route, err := m.Get("route-1")
	if err != nil {
		t.Fatalf("Get(route-1) error = %v", err)
	}
	pool := route.WildPool()
	if len(pool) != 3 {
		t.Fatalf("route-1 pool size = %d, want 3", len(pool))
	}
	want := []string{"Rattata", "Roucool", "Chenipan"}
	for i, s := range pool {
		if s.Name != want[i] {
			t.Errorf("pool[%d] = %s, want %s", i, s.Name, want[i])
		}
	}

	town, _ := m.Get("bourg-palette")
	if len(town.WildPool()) != 0 {
		t.Errorf("bourg-palette pool size = %d, want 0", len(town.WildPool()))
	}
}

func TestNewMapRejectsBadReferences(t *testing.T) {
	species := gamedata.NewSpeciesRegistry([]gamedata.SpeciesDef{{Name: "Rattata"}})

	tests := []struct {
		name string
		defs []gamedata.LocationDef
	}{
		{"dangling route", []gamedata.LocationDef{{ID: "a", Routes: []string{"b"}}}},
		{"unknown species", []gamedata.LocationDef{{ID: "a", Wild: []string{"Mew"}}}},
		{"duplicate id", []gamedata.LocationDef{{ID: "a"}, {ID: "a"}}},
	}

	for _, tt := range tests {
		if _, err := NewMap(context.Background(), tt.defs, species); err == nil {
			t.Errorf("%s: NewMap() should fail", tt.name)
		}
	}
}

func TestTravel(t *testing.T) {
	m := newTestMap(t)
	ctx := context.Background()

	tests := []struct {
		from, to string
		ok       bool
	}{
		{"bourg-palette", "route-1", true},
		{"route-1", "jadielle", true},
		{"route-1", "bourg-palette", true},
		{"bourg-palette", "jadielle", false},
		{"bourg-palette", "bourg-palette", false},
		{"bourg-palette", "azuria", false},
	}

	for _, tt := range tests {
		if got := m.CanTravel(tt.from, tt.to); got != tt.ok {
			t.Errorf("CanTravel(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.ok)
		}

		loc, err := m.Travel(ctx, tt.from, tt.to)
		if tt.ok {
			if err != nil || loc.ID != tt.to {
				t.Errorf("Travel(%s, %s) = %v, %v; want %s", tt.from, tt.to, loc, err, tt.to)
			}
			continue
		}
		if !errors.Is(err, ErrUnknownRoute) {
			t.Errorf("Travel(%s, %s) error = %v, want ErrUnknownRoute", tt.from, tt.to, err)
		}
	}

	var lookupErr *gamedata.LookupError
	if _, err := m.Travel(ctx, "nowhere", "route-1"); !errors.As(err, &lookupErr) {
		t.Errorf("Travel from unknown location error = %v, want *gamedata.LookupError", err)
	}
}

func TestLocationActions(t *testing.T) {
	m := newTestMap(t)

	route, _ := m.Get("route-1")
	search, ok := route.Action("chercher_des_pokémon_sauvages")
	if !ok || search.Kind != ActionSearch {
		t.Errorf("Action(search) = %+v, %v; want search action", search, ok)
	}
	if _, ok := route.Action("aller_au_centre_pokémon"); ok {
		t.Error("route-1 should not have a Pokémon Center")
	}

	city, _ := m.Get("jadielle")
	heal, ok := city.Action("Aller au centre Pokémon")
	if !ok || heal.Kind != ActionHeal {
		t.Errorf("Action(heal) = %+v, %v; want heal action", heal, ok)
	}

	for _, a := range city.Actions() {
		if a.Kind == ActionFlavor && a.Message == "" {
			t.Errorf("flavor action %q has no message", a.Label)
		}
	}
}

func TestRouteButton(t *testing.T) {
	button := RouteButton("route-1")
	if button != "goto_route-1" {
		t.Errorf("RouteButton() = %q, want goto_route-1", button)
	}
	if id, ok := ParseRouteButton(button); !ok || id != "route-1" {
		t.Errorf("ParseRouteButton(%q) = %q, %v", button, id, ok)
	}
	if _, ok := ParseRouteButton("flee"); ok {
		t.Error("ParseRouteButton(flee) should fail")
	}
}

func TestActionKindString(t *testing.T) {
	tests := []struct {
		kind     ActionKind
		expected string
	}{
		{ActionFlavor, "flavor"},
		{ActionSearch, "search"},
		{ActionHeal, "heal"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("ActionKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}
