// Package world provides dungeon generation: grid, rooms, corridors and the
// content passes that turn a Config into a Dungeon.
package world

import "fmt"

// Tile represents a single map tile.
type Tile uint8

const (
	// TileWall is the initial state of every tile.
	TileWall Tile = iota
	TileFloor
	TileDoor
	TileLockedDoor
	TileTrap
	TileWater
	TileLava
	TilePit
	TileStairsUp
	TileStairsDown
)

var tileTags = [...]string{
	TileWall:       "wall",
	TileFloor:      "floor",
	TileDoor:       "door",
	TileLockedDoor: "locked_door",
	TileTrap:       "trap",
	TileWater:      "water",
	TileLava:       "lava",
	TilePit:        "pit",
	TileStairsUp:   "stairs_up",
	TileStairsDown: "stairs_down",
}

// String returns the tile tag used in exported grids.
func (t Tile) String() string {
	if int(t) < len(tileTags) {
		return tileTags[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// Glyph returns the preview character for the tile. Tiles outside the
// preview set render as '?'.
func (t Tile) Glyph() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileWall:
		return '#'
	case TileDoor:
		return '+'
	case TileTrap:
		return '^'
	case TileStairsUp:
		return '<'
	case TileStairsDown:
		return '>'
	case TileLockedDoor, TileWater, TileLava, TilePit:
		return '?'
	default:
		return '?'
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tile) MarshalText() ([]byte, error) {
	if int(t) >= len(tileTags) {
		return nil, fmt.Errorf("unknown tile %d", uint8(t))
	}
	return []byte(tileTags[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tile) UnmarshalText(text []byte) error {
	for i, tag := range tileTags {
		if tag == string(text) {
			*t = Tile(i)
			return nil
		}
	}
	return fmt.Errorf("unknown tile tag %q", text)
}
