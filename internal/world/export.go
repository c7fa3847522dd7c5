package world

import "strings"

// Metadata identifies a generated dungeon and how to reproduce it.
type Metadata struct {
	Name       string     `json:"name"`
	Theme      string     `json:"theme"`
	Difficulty Difficulty `json:"difficulty"`
	Seed       int64      `json:"seed"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
}

// RoomView is the exported form of a Room.
type RoomView struct {
	ID               int            `json:"id"`
	Type             Role           `json:"type"`
	Bounds           Rect           `json:"bounds"`
	Connections      []int          `json:"connections"`
	Encounters       []Encounter    `json:"encounters"`
	Loot             []LootDrop     `json:"loot"`
	Puzzle           *Puzzle        `json:"puzzle"`
	SkillRequirement map[string]any `json:"skill_requirement"`
}

// Dungeon is the finished result of a generation run. It shares no state with
// the generator that produced it.
type Dungeon struct {
	Metadata       Metadata         `json:"metadata"`
	Rooms          []RoomView       `json:"rooms"`
	Grid           [][]Tile         `json:"grid"`
	RequiredSkills []map[string]any `json:"required_skills"`
}

// Export flattens the generator's grid and rooms into a Dungeon.
func (g *Generator) Export() *Dungeon {
	d := &Dungeon{
		Metadata: Metadata{
			Name:       g.cfg.Name,
			Theme:      g.cfg.Theme,
			Difficulty: g.cfg.Difficulty,
			Seed:       g.seed,
			Width:      g.cfg.Width,
			Height:     g.cfg.Height,
		},
		Rooms:          make([]RoomView, 0, g.rooms.Len()),
		Grid:           make([][]Tile, len(g.grid.Tiles)),
		RequiredSkills: make([]map[string]any, 0, len(g.cfg.RequiredSkills)),
	}

	for _, room := range g.rooms.All() {
		d.Rooms = append(d.Rooms, exportRoom(room))
	}
	for y, row := range g.grid.Tiles {
		d.Grid[y] = append([]Tile(nil), row...)
	}
	d.RequiredSkills = append(d.RequiredSkills, g.cfg.RequiredSkills...)
	return d
}

func exportRoom(room *Room) RoomView {
	view := RoomView{
		ID:               room.ID,
		Type:             room.Role,
		Bounds:           room.Bounds,
		Connections:      append([]int{}, room.Connections...),
		Encounters:       make([]Encounter, 0, len(room.Encounters)),
		Loot:             append([]LootDrop{}, room.Loot...),
		SkillRequirement: room.SkillRequirement,
	}
	for _, e := range room.Encounters {
		if e.Position != nil {
			pos := *e.Position
			e.Position = &pos
		}
		view.Encounters = append(view.Encounters, e)
	}
	if room.Puzzle != nil {
		puzzle := *room.Puzzle
		view.Puzzle = &puzzle
	}
	return view
}

// Room returns the exported room with the given ID, or nil if not found.
func (d *Dungeon) Room(id int) *RoomView {
	for i := range d.Rooms {
		if d.Rooms[i].ID == id {
			return &d.Rooms[i]
		}
	}
	return nil
}

// CountTiles returns how many grid tiles equal t.
func (d *Dungeon) CountTiles(t Tile) int {
	n := 0
	for _, row := range d.Grid {
		for _, tile := range row {
			if tile == t {
				n++
			}
		}
	}
	return n
}

// Preview renders the grid as text, sampling every step-th row and column.
// A step below 1 renders every tile.
func (d *Dungeon) Preview(step int) string {
	if step < 1 {
		step = 1
	}
	var b strings.Builder
	for y := 0; y < len(d.Grid); y += step {
		row := d.Grid[y]
		for x := 0; x < len(row); x += step {
			b.WriteRune(row[x].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
