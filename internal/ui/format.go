package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/samdwyer/pkmnbot/internal/gamedata"
)

const (
	hpBarLength = 10

	// SpriteBaseURL serves front sprites by dex number.
	SpriteBaseURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/"

	unknownGlyph = "❓"
)

// HPBar renders HP as a coloured 10-cell bar followed by the numbers, e.g.
// "🟨 █████░░░░░ 12/24".
func HPBar(hp, maxHP int) string {
	var ratio float64
	if maxHP > 0 {
		ratio = float64(hp) / float64(maxHP)
	}

	filled := int(math.Round(hpBarLength * ratio))
	filled = max(0, min(hpBarLength, filled))

	color := "🟥"
	switch {
	case ratio > 0.5:
		color = "🟩"
	case ratio > 0.2:
		color = "🟨"
	}

	return fmt.Sprintf("%s %s%s %d/%d", color,
		strings.Repeat("█", filled), strings.Repeat("░", hpBarLength-filled), hp, maxHP)
}

// TypeGlyphs returns the glyph of each type separated by spaces. Unknown
// types show as ❓.
func TypeGlyphs(types []string, registry *gamedata.TypeRegistry) string {
	glyphs := make([]string, 0, len(types))
	for _, t := range types {
		glyph := unknownGlyph
		if def := registry.GetByName(t); def != nil && def.Glyph != "" {
			glyph = def.Glyph
		}
		glyphs = append(glyphs, glyph)
	}
	return strings.Join(glyphs, " ")
}

// SpriteURL returns the sprite image URL for a dex number.
func SpriteURL(dex int) string {
	return SpriteBaseURL + strconv.Itoa(dex) + ".png"
}
