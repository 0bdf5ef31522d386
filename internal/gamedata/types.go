package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// TypeDef defines an elemental type and how it is displayed.
type TypeDef struct {
	Name  string `json:"name"`  // Display name (e.g., "Eau")
	Glyph string `json:"glyph"` // Emoji shown next to Pokémon names
	Color string `json:"color"` // Hex color code (e.g., "#6390F0")
}

// TCellColor returns the color as a tcell.Color.
func (t *TypeDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(t.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// TypesFile represents the structure of types.json.
type TypesFile struct {
	Types []TypeDef                     `json:"types"`
	Chart map[string]map[string]float64 `json:"chart"` // attack type -> defender type -> multiplier
}

// TypeChart holds damage multipliers for every attack/defender type pair.
type TypeChart struct {
	cells map[string]map[string]float64
}

// NewTypeChart creates a chart from raw cells. Keys are display names.
func NewTypeChart(cells map[string]map[string]float64) *TypeChart {
	chart := &TypeChart{cells: make(map[string]map[string]float64, len(cells))}
	for attack, row := range cells {
		folded := make(map[string]float64, len(row))
		for defender, mult := range row {
			folded[Key(defender)] = mult
		}
		chart.cells[Key(attack)] = folded
	}
	return chart
}

// Cell returns the multiplier for one attack type against one defender type.
func (c *TypeChart) Cell(attackType, defenderType string) (float64, error) {
	row, ok := c.cells[Key(attackType)]
	if !ok {
		return 0, &LookupError{Kind: "type", Key: attackType}
	}
	mult, ok := row[Key(defenderType)]
	if !ok {
		return 0, &LookupError{Kind: "type chart cell", Key: attackType + "/" + defenderType}
	}
	return mult, nil
}

// Multiplier returns the product of the chart cells for attackType against
// each of the defender's types. A missing cell is an error, never 1.
func (c *TypeChart) Multiplier(attackType string, defenderTypes []string) (float64, error) {
	multiplier := 1.0
	for _, defender := range defenderTypes {
		cell, err := c.Cell(attackType, defender)
		if err != nil {
			return 0, err
		}
		multiplier *= cell
	}
	return multiplier, nil
}

// Validate checks that every pair of the given types has an explicit cell.
func (c *TypeChart) Validate(types []TypeDef) error {
	for _, attack := range types {
		for _, defender := range types {
			if _, err := c.Cell(attack.Name, defender.Name); err != nil {
				return fmt.Errorf("incomplete type chart: %w", err)
			}
		}
	}
	return nil
}

// LoadTypes loads type definitions and the type chart from the embedded
// types.json file. The chart must cover every pair of listed types.
func LoadTypes() ([]TypeDef, *TypeChart, error) {
	file, err := Load[TypesFile]("types.json")
	if err != nil {
		return nil, nil, err
	}
	chart := NewTypeChart(file.Chart)
	if err := chart.Validate(file.Types); err != nil {
		return nil, nil, err
	}
	return file.Types, chart, nil
}

// ParseHexColor converts a hex color string (e.g., "#EE8130" or "EE8130") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}
