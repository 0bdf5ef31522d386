package gamedata

import (
	"errors"
	"fmt"
)

// SpeciesRegistry holds loaded species definitions and provides lookup utilities.
type SpeciesRegistry struct {
	species map[string]*SpeciesDef
	all     []SpeciesDef
}

// NewSpeciesRegistry creates a registry from loaded species definitions.
func NewSpeciesRegistry(species []SpeciesDef) *SpeciesRegistry {
	registry := &SpeciesRegistry{
		species: make(map[string]*SpeciesDef, len(species)),
		all:     species,
	}
	for i := range species {
		registry.species[Key(species[i].Name)] = &species[i]
	}
	return registry
}

// LoadSpeciesRegistry loads and creates a registry from the embedded species.json.
func LoadSpeciesRegistry() (*SpeciesRegistry, error) {
	species, err := LoadSpecies()
	if err != nil {
		return nil, err
	}
	if len(species) == 0 {
		return nil, errors.New("no species loaded from species.json")
	}
	return NewSpeciesRegistry(species), nil
}

// Get returns the species with the given name.
func (r *SpeciesRegistry) Get(name string) (*SpeciesDef, error) {
	if s := r.species[Key(name)]; s != nil {
		return s, nil
	}
	return nil, &LookupError{Kind: "species", Key: name}
}

// GetByName returns the species with the given name, or nil if not found.
func (r *SpeciesRegistry) GetByName(name string) *SpeciesDef {
	return r.species[Key(name)]
}

// All returns all species definitions.
func (r *SpeciesRegistry) All() []SpeciesDef {
	return r.all
}

// Count returns the number of species in the registry.
func (r *SpeciesRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// MoveRegistry
// =============================================================================

// MoveRegistry holds loaded move definitions and provides lookup utilities.
type MoveRegistry struct {
	moves map[string]*MoveDef
	all   []MoveDef
}

// NewMoveRegistry creates a registry from loaded move definitions.
func NewMoveRegistry(moves []MoveDef) *MoveRegistry {
	registry := &MoveRegistry{
		moves: make(map[string]*MoveDef, len(moves)),
		all:   moves,
	}
	for i := range moves {
		registry.moves[Key(moves[i].Name)] = &moves[i]
	}
	return registry
}

// LoadMoveRegistry loads and creates a registry from the embedded moves.json.
func LoadMoveRegistry() (*MoveRegistry, error) {
	moves, err := LoadMoves()
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, errors.New("no moves loaded from moves.json")
	}
	return NewMoveRegistry(moves), nil
}

// Get returns the move with the given name.
func (r *MoveRegistry) Get(name string) (*MoveDef, error) {
	if m := r.moves[Key(name)]; m != nil {
		return m, nil
	}
	return nil, &LookupError{Kind: "move", Key: name}
}

// GetMultiple returns move definitions for a list of names.
// Unlike a lenient lookup, a missing name fails the whole call.
func (r *MoveRegistry) GetMultiple(names []string) ([]*MoveDef, error) {
	result := make([]*MoveDef, 0, len(names))
	for _, name := range names {
		m, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, nil
}

// All returns all move definitions.
func (r *MoveRegistry) All() []MoveDef {
	return r.all
}

// Count returns the number of moves in the registry.
func (r *MoveRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// TypeRegistry
// =============================================================================

// TypeRegistry holds type display data and the effectiveness chart.
type TypeRegistry struct {
	types map[string]*TypeDef
	all   []TypeDef
	Chart *TypeChart
}

// NewTypeRegistry creates a registry from type definitions and a chart.
func NewTypeRegistry(types []TypeDef, chart *TypeChart) *TypeRegistry {
	registry := &TypeRegistry{
		types: make(map[string]*TypeDef, len(types)),
		all:   types,
		Chart: chart,
	}
	for i := range types {
		registry.types[Key(types[i].Name)] = &types[i]
	}
	return registry
}

// LoadTypeRegistry loads and creates a registry from the embedded types.json.
func LoadTypeRegistry() (*TypeRegistry, error) {
	types, chart, err := LoadTypes()
	if err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, errors.New("no types loaded from types.json")
	}
	return NewTypeRegistry(types, chart), nil
}

// GetByName returns the type with the given name, or nil if not found.
func (r *TypeRegistry) GetByName(name string) *TypeDef {
	return r.types[Key(name)]
}

// All returns all type definitions.
func (r *TypeRegistry) All() []TypeDef {
	return r.all
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog bundles every read-only table the bot needs.
type Catalog struct {
	Species   *SpeciesRegistry
	Moves     *MoveRegistry
	Types     *TypeRegistry
	Locations []LocationDef
}

// LoadCatalog loads all embedded catalogs and cross-checks their references:
// every learnset move, species type and wild-pool species must exist.
func LoadCatalog() (*Catalog, error) {
	species, err := LoadSpeciesRegistry()
	if err != nil {
		return nil, err
	}
	moves, err := LoadMoveRegistry()
	if err != nil {
		return nil, err
	}
	types, err := LoadTypeRegistry()
	if err != nil {
		return nil, err
	}
	locations, err := LoadLocations()
	if err != nil {
		return nil, err
	}

	c := &Catalog{Species: species, Moves: moves, Types: types, Locations: locations}
	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustLoadCatalog loads the catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

func (c *Catalog) check() error {
	for _, s := range c.Species.All() {
		for _, t := range s.Types {
			if c.Types.GetByName(t) == nil {
				return &LookupError{Kind: "type", Key: t}
			}
		}
		for _, names := range s.Learnset {
			if _, err := c.Moves.GetMultiple(names); err != nil {
				return err
			}
		}
	}
	for _, m := range c.Moves.All() {
		if !m.Category.Valid() {
			return fmt.Errorf("move %s: unknown category %q", m.Name, m.Category)
		}
		if m.PP <= 0 {
			return fmt.Errorf("move %s: PP must be positive, got %d", m.Name, m.PP)
		}
		if c.Types.GetByName(m.Type) == nil {
			return &LookupError{Kind: "type", Key: m.Type}
		}
	}
	for _, loc := range c.Locations {
		for _, name := range loc.Wild {
			if _, err := c.Species.Get(name); err != nil {
				return err
			}
		}
	}
	return nil
}
