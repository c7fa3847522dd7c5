package world

import "fmt"

// placeRooms scatters rooms by rejection sampling. It tries up to three
// placements per requested room and keeps whatever fits; ending up with fewer
// rooms than requested is not an error.
func (g *Generator) placeRooms() error {
	target := randRange(g.rng, g.cfg.MinRooms, g.cfg.MaxRooms)

	for trial := 0; trial < target*placementTrialsPerRoom; trial++ {
		if g.rooms.Len() >= target {
			break
		}

		width := randRange(g.rng, g.cfg.MinRoomSize, g.cfg.MaxRoomSize)
		height := randRange(g.rng, g.cfg.MinRoomSize, g.cfg.MaxRoomSize)

		maxX := g.grid.Width - width - edgeMargin
		maxY := g.grid.Height - height - edgeMargin
		if width <= 0 || height <= 0 || maxX < edgeMargin || maxY < edgeMargin {
			continue // Room cannot fit inside the border at all
		}

		bounds := Rect{
			X:      randRange(g.rng, edgeMargin, maxX),
			Y:      randRange(g.rng, edgeMargin, maxY),
			Width:  width,
			Height: height,
		}
		if g.rooms.OverlapsPadded(bounds, roomPadding) {
			continue
		}

		room := g.rooms.Add(RoleCorridor, bounds)
		if err := g.grid.CarveRect(room.Bounds, TileFloor); err != nil {
			return fmt.Errorf("room %d: %w", room.ID, err)
		}
	}
	return nil
}
