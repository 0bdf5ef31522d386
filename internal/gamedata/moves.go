package gamedata

// Category selects which stat pair a move uses.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// MoveEffect describes a secondary effect. Effects are catalog data only;
// battles never apply them.
type MoveEffect struct {
	Type   string `json:"type"`
	Chance int    `json:"chance"`
}

// MoveDef defines a move loaded from JSON.
type MoveDef struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Category Category    `json:"category"`
	Power    int         `json:"power"`    // 0 for status moves
	Accuracy int         `json:"accuracy"` // Unused by battles
	PP       int         `json:"pp"`       // Maximum PP
	Effect   *MoveEffect `json:"effect,omitempty"`
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPhysical, CategorySpecial, CategoryStatus:
		return true
	default:
		return false
	}
}

// IsStatus returns true if the move deals no damage.
func (m *MoveDef) IsStatus() bool {
	return m.Category == CategoryStatus
}

// MovesFile represents the structure of moves.json.
type MovesFile struct {
	Moves []MoveDef `json:"moves"`
}

// LoadMoves loads move definitions from the embedded moves.json file.
func LoadMoves() ([]MoveDef, error) {
	file, err := Load[MovesFile]("moves.json")
	if err != nil {
		return nil, err
	}
	return file.Moves, nil
}
