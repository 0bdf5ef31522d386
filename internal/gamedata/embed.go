// Package gamedata provides the embedded species, move, type and location
// catalogs and the lookup tables built from them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
