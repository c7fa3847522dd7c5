package world

import (
	"encoding/json"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is an axis-aligned rectangle of tiles.
type Rect struct {
	X      int `json:"x"` // Top-left corner
	Y      int `json:"y"` // Top-left corner
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the center coordinates of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains returns true if the given point is inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Pad returns the rectangle grown by n tiles on every side.
func (r Rect) Pad(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// Interior returns the rectangle shrunk by one tile on every side.
func (r Rect) Interior() Rect {
	return r.Pad(-1)
}

// Area returns the number of tiles covered.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// within reports whether the rectangle lies fully inside a width x height grid.
func (r Rect) within(width, height int) bool {
	return r.X >= 0 && r.Y >= 0 && r.Width >= 0 && r.Height >= 0 &&
		r.X+r.Width <= width && r.Y+r.Height <= height
}

// squaredDistance returns the squared Euclidean distance between the centers
// of two rectangles. Comparing squares keeps ordering and ties exact.
func squaredDistance(a, b Rect) int {
	ax, ay := a.Center()
	bx, by := b.Center()
	dx, dy := ax-bx, ay-by
	return dx*dx + dy*dy
}

// Encounter is a monster placed in a room.
type Encounter struct {
	MonsterID string   `json:"monster_id"`
	Level     int      `json:"level"`
	Position  *Point   `json:"position,omitempty"`
	IsBoss    bool     `json:"is_boss,omitempty"`
	Mechanics []string `json:"mechanics,omitempty"`
}

// MarshalJSON writes mechanics on a boss encounter even when the list is
// empty; other encounters omit it.
func (e Encounter) MarshalJSON() ([]byte, error) {
	type plain Encounter
	if !e.IsBoss {
		return json.Marshal(plain(e))
	}
	mechanics := e.Mechanics
	if mechanics == nil {
		mechanics = []string{}
	}
	return json.Marshal(struct {
		plain
		Mechanics []string `json:"mechanics"`
	}{plain(e), mechanics})
}

// LootDrop is a stack of items placed in a room.
type LootDrop struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Puzzle describes the puzzle placed in a puzzle room.
type Puzzle struct {
	Kind  PuzzleKind
	Count int // levers, plates, symbols, torches or blocks depending on Kind
}

// MarshalJSON encodes the puzzle as {"type": kind, "<param>": count}.
func (p Puzzle) MarshalJSON() ([]byte, error) {
	key := p.Kind.paramKey()
	if key == "" {
		return nil, fmt.Errorf("unknown puzzle kind %d", uint8(p.Kind))
	}
	return json.Marshal(map[string]any{
		"type": p.Kind.String(),
		key:    p.Count,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Puzzle) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var tag string
	if err := json.Unmarshal(raw["type"], &tag); err != nil {
		return fmt.Errorf("puzzle type: %w", err)
	}
	kind, err := parsePuzzleKind(tag)
	if err != nil {
		return err
	}
	var count int
	if v, ok := raw[kind.paramKey()]; ok {
		if err := json.Unmarshal(v, &count); err != nil {
			return fmt.Errorf("puzzle %s: %w", kind.paramKey(), err)
		}
	}
	p.Kind = kind
	p.Count = count
	return nil
}

// Room is a placed room. Rooms are created by the placement pass and then
// mutated in place by later passes.
type Room struct {
	ID               int
	Role             Role
	Bounds           Rect
	Connections      []int // neighbor room IDs in the order edges were added
	Encounters       []Encounter
	Loot             []LootDrop
	Puzzle           *Puzzle
	SkillRequirement map[string]any

	neighbors mapset.Set[int]
}

func newRoom(id int, role Role, bounds Rect) *Room {
	return &Room{
		ID:        id,
		Role:      role,
		Bounds:    bounds,
		neighbors: mapset.New[int](),
	}
}

// IsConnectedTo reports whether a corridor edge links this room to id.
func (r *Room) IsConnectedTo(id int) bool {
	return r.neighbors.Has(id)
}

func (r *Room) addNeighbor(id int) {
	if r.neighbors.Has(id) {
		return
	}
	r.neighbors.Put(id)
	r.Connections = append(r.Connections, id)
}
