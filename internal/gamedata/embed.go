// Package gamedata provides the embedded dungeon presets and helpers for
// loading and checking dungeon configuration documents.
package gamedata

import "embed"

// dataFS embeds all preset JSON files at build time.
//
//go:embed presets/*.json
var dataFS embed.FS
