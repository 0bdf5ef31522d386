package gamedata

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key normalises a display name into a lookup key. Names are case-folded so
// that "Salamèche", "SALAMÈCHE" and "salamèche" resolve to the same entry.
func Key(name string) string {
	// cases.Caser is stateful, so a fresh one is built per call.
	return cases.Fold().String(strings.TrimSpace(name))
}

// ButtonKey turns a display name into the form used in button ids:
// folded, with runs of whitespace replaced by a single underscore.
func ButtonKey(name string) string {
	return strings.Join(strings.Fields(Key(name)), "_")
}
