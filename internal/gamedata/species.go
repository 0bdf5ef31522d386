package gamedata

import (
	"sort"
)

// StatBlock holds the six battle stats. Base stats come from the species
// catalog; derived stats are computed from them per level.
type StatBlock struct {
	HP        int `json:"hp"`
	Attack    int `json:"attack"`
	Defense   int `json:"defense"`
	SpAttack  int `json:"spAttack"`
	SpDefense int `json:"spDefense"`
	Speed     int `json:"speed"`
}

// SpeciesDef defines a creature kind loaded from JSON.
type SpeciesDef struct {
	Dex        int              `json:"dex"`        // National dex number, used for sprite ids
	Name       string           `json:"name"`       // Display name (e.g., "Salamèche")
	Types      []string         `json:"types"`      // One or two type names
	Evolves    string           `json:"evolves"`    // Evolution target, unused by battles
	BaseStats  StatBlock        `json:"baseStats"`  // Species base stats
	CatchRate  int              `json:"catchRate"`  // Unused by battles
	ExpYield   int              `json:"expYield"`   // Unused by battles
	GrowthRate string           `json:"growthRate"` // Unused by battles
	Learnset   map[int][]string `json:"learnset"`   // Minimum level -> move names
}

// MovesAt returns the names of all moves learnable at or below level,
// ordered by learn level and then by catalog order within a level.
func (s *SpeciesDef) MovesAt(level int) []string {
	levels := make([]int, 0, len(s.Learnset))
	for l := range s.Learnset {
		if l <= level {
			levels = append(levels, l)
		}
	}
	sort.Ints(levels)

	var names []string
	for _, l := range levels {
		names = append(names, s.Learnset[l]...)
	}
	return names
}

// SpeciesFile represents the structure of species.json.
type SpeciesFile struct {
	Species []SpeciesDef `json:"species"`
}

// LoadSpecies loads species definitions from the embedded species.json file.
func LoadSpecies() ([]SpeciesDef, error) {
	file, err := Load[SpeciesFile]("species.json")
	if err != nil {
		return nil, err
	}
	return file.Species, nil
}
