package gamedata

import "fmt"

// LookupError reports a catalog entry that does not exist. Catalog lookups
// never fall back to a default value.
type LookupError struct {
	Kind string // "species", "move", "type", "type chart cell", "location"
	Key  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Kind, e.Key)
}
