package world

// Catalog is the append-only collection of placed rooms. A room's ID is its
// index, so IDs are never reused.
type Catalog struct {
	rooms []*Room
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add appends a room with the next free ID and returns it.
func (c *Catalog) Add(role Role, bounds Rect) *Room {
	room := newRoom(len(c.rooms), role, bounds)
	c.rooms = append(c.rooms, room)
	return room
}

// Get returns the room with the given ID, or nil if not found.
func (c *Catalog) Get(id int) *Room {
	if id < 0 || id >= len(c.rooms) {
		return nil
	}
	return c.rooms[id]
}

// All returns the rooms in placement order.
func (c *Catalog) All() []*Room {
	return c.rooms
}

// Len returns the number of placed rooms.
func (c *Catalog) Len() int {
	return len(c.rooms)
}

// Connect records an undirected corridor edge between two rooms.
func (c *Catalog) Connect(a, b int) {
	ra, rb := c.Get(a), c.Get(b)
	if ra == nil || rb == nil || a == b {
		return
	}
	ra.addNeighbor(b)
	rb.addNeighbor(a)
}

// Adjacent reports whether rooms a and b share an edge.
func (c *Catalog) Adjacent(a, b int) bool {
	ra := c.Get(a)
	return ra != nil && ra.IsConnectedTo(b)
}

// OverlapsPadded reports whether r, grown by pad, intersects any room's
// bounds grown by pad.
func (c *Catalog) OverlapsPadded(r Rect, pad int) bool {
	padded := r.Pad(pad)
	for _, room := range c.rooms {
		if padded.Intersects(room.Bounds.Pad(pad)) {
			return true
		}
	}
	return false
}

// WithRole returns the rooms carrying the given role, in placement order.
func (c *Catalog) WithRole(role Role) []*Room {
	var out []*Room
	for _, room := range c.rooms {
		if room.Role == role {
			out = append(out, room)
		}
	}
	return out
}
