package world

// placeSpecialRooms marks the entrance and the boss room. The entrance is the
// room closest to the grid edge; the boss room is the one whose center lies
// furthest from it. With a single room the boss assignment overwrites the
// entrance, leaving one boss room and no entrance.
func (g *Generator) placeSpecialRooms() {
	rooms := g.rooms.All()
	if len(rooms) == 0 {
		return
	}

	entrance := rooms[0]
	bestEdge := g.edgeDistance(entrance.Bounds)
	for _, room := range rooms[1:] {
		if d := g.edgeDistance(room.Bounds); d < bestEdge {
			entrance, bestEdge = room, d
		}
	}
	entrance.Role = RoleEntrance

	boss := rooms[0]
	bestDist := squaredDistance(entrance.Bounds, boss.Bounds)
	for _, room := range rooms[1:] {
		if d := squaredDistance(entrance.Bounds, room.Bounds); d > bestDist {
			boss, bestDist = room, d
		}
	}
	boss.Role = RoleBoss
}

// edgeDistance returns how close r comes to any edge of the grid.
func (g *Generator) edgeDistance(r Rect) int {
	return min(
		r.X,
		r.Y,
		g.grid.Width-r.X-r.Width,
		g.grid.Height-r.Y-r.Height,
	)
}

// rollRole picks the role of an ordinary room. A single roll is compared
// against cumulative thresholds in the fixed order combat, puzzle, treasure,
// so the categories are mutually exclusive; anything left over is safe.
func (g *Generator) rollRole() Role {
	roll := g.rng.Float64()
	threshold := g.cfg.CombatRoomChance
	if roll < threshold {
		return RoleCombat
	}
	threshold += g.cfg.PuzzleRoomChance
	if roll < threshold {
		return RolePuzzle
	}
	threshold += g.cfg.TreasureRoomChance
	if roll < threshold {
		return RoleTreasure
	}
	return RoleSafe
}
