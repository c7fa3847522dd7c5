package world

// connectRooms links every room into one graph. It grows a nearest-neighbour
// tree from room 0 (Prim's algorithm over center distances), then adds a few
// random extra corridors so the dungeon has loops.
func (g *Generator) connectRooms() {
	rooms := g.rooms.All()
	if len(rooms) < 2 {
		return
	}

	connected := []int{0}
	unconnected := make([]int, 0, len(rooms)-1)
	for i := 1; i < len(rooms); i++ {
		unconnected = append(unconnected, i)
	}

	for len(unconnected) > 0 {
		bestDist := -1
		bestFrom, bestIdx := 0, 0
		// Strict comparison: on equal distances the first pair found wins.
		for _, c := range connected {
			for i, u := range unconnected {
				dist := squaredDistance(rooms[c].Bounds, rooms[u].Bounds)
				if bestDist < 0 || dist < bestDist {
					bestDist = dist
					bestFrom, bestIdx = c, i
				}
			}
		}

		bestTo := unconnected[bestIdx]
		g.carveCorridor(rooms[bestFrom].Bounds, rooms[bestTo].Bounds)
		g.rooms.Connect(bestFrom, bestTo)

		connected = append(connected, bestTo)
		unconnected = append(unconnected[:bestIdx], unconnected[bestIdx+1:]...)
	}

	// Extra connections for loops. Picks that land on the same room or an
	// existing edge are skipped, not retried.
	if len(rooms)/4 < 1 {
		return
	}
	extra := randRange(g.rng, 1, len(rooms)/4)
	for i := 0; i < extra; i++ {
		r1 := rooms[g.rng.Intn(len(rooms))]
		r2 := rooms[g.rng.Intn(len(rooms))]
		if r1.ID == r2.ID || r1.IsConnectedTo(r2.ID) {
			continue
		}
		g.carveCorridor(r1.Bounds, r2.Bounds)
		g.rooms.Connect(r1.ID, r2.ID)
	}
}

// carveCorridor creates an L-shaped corridor between two room centers.
func (g *Generator) carveCorridor(a, b Rect) {
	x1, y1 := a.Center()
	x2, y2 := b.Center()

	// Randomly choose to go horizontal-then-vertical or vertical-then-horizontal
	if g.rng.Intn(2) == 0 {
		g.grid.carveHorizontal(x1, x2, y1)
		g.grid.carveVertical(y1, y2, x2)
	} else {
		g.grid.carveVertical(y1, y2, x1)
		g.grid.carveHorizontal(x1, x2, y2)
	}
}
