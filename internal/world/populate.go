package world

const (
	encounterAreaPerMonster = 20  // One potential monster per this many tiles
	extraLootChance         = 0.3 // Chance an ordinary room gets a base loot roll
	treasureLootBonus       = 2
	bossLootBonus           = 3
	secretLootBonus         = 2
	minLootItems            = 1
	maxLootItems            = 3
)

// lootRoll selects how a loot table is rolled.
type lootRoll struct {
	bonus  int  // Extra items added to the base 1-3
	double bool // Double every drawn quantity
}

// populateRooms assigns every ordinary room a role and fills rooms with
// encounters, puzzles and loot. The boss room is populated last.
func (g *Generator) populateRooms() {
	for _, room := range g.rooms.All() {
		if room.Role.IsSpecial() {
			continue
		}

		room.Role = g.rollRole()
		switch room.Role {
		case RoleCombat:
			room.Encounters = g.generateEncounters(room.Bounds)
		case RolePuzzle:
			puzzle := g.generatePuzzle()
			room.Puzzle = &puzzle
		case RoleTreasure:
			room.Loot = g.generateLoot(lootRoll{bonus: treasureLootBonus})
		case RoleSafe:
		case RoleCorridor, RoleEntrance, RoleBoss, RoleSkillCheck, RoleSecret:
			// rollRole never yields these
		}

		if room.Role != RoleTreasure && g.rng.Float64() < extraLootChance {
			room.Loot = g.generateLoot(lootRoll{})
		}
	}

	for _, room := range g.rooms.WithRole(RoleBoss) {
		room.Encounters = g.generateBossEncounter()
		room.Loot = g.generateLoot(lootRoll{bonus: bossLootBonus, double: true})
	}
}

// generateEncounters places between one and area/20 monsters at random
// interior positions.
func (g *Generator) generateEncounters(bounds Rect) []Encounter {
	table := g.cfg.MonsterTable
	if len(table) == 0 {
		return nil
	}

	count := randRange(g.rng, 1, max(1, bounds.Area()/encounterAreaPerMonster))
	inner := bounds.Interior()
	encounters := make([]Encounter, 0, count)
	for i := 0; i < count; i++ {
		monster := table[g.rng.Intn(len(table))]
		encounters = append(encounters, Encounter{
			MonsterID: monster.ID,
			Level:     monster.Level,
			Position: &Point{
				X: randRange(g.rng, inner.X, inner.X+inner.Width-1),
				Y: randRange(g.rng, inner.Y, inner.Y+inner.Height-1),
			},
		})
	}
	return encounters
}

// generateBossEncounter returns the single boss encounter.
func (g *Generator) generateBossEncounter() []Encounter {
	boss := g.cfg.boss()
	mechanics := make([]string, len(boss.Mechanics))
	copy(mechanics, boss.Mechanics)
	return []Encounter{{
		MonsterID: boss.ID,
		Level:     boss.Level,
		IsBoss:    true,
		Mechanics: mechanics,
	}}
}

// generatePuzzle picks one of the puzzle templates uniformly and draws its
// size from the template's range.
func (g *Generator) generatePuzzle() Puzzle {
	kind := PuzzleKind(g.rng.Intn(puzzleKindCount))
	lo, hi := kind.paramRange()
	return Puzzle{Kind: kind, Count: randRange(g.rng, lo, hi)}
}

// generateLoot draws 1-3 items plus the roll's bonus from the loot table.
func (g *Generator) generateLoot(roll lootRoll) []LootDrop {
	table := g.cfg.LootTable
	if len(table) == 0 {
		return nil
	}

	count := randRange(g.rng, minLootItems, maxLootItems) + roll.bonus
	loot := make([]LootDrop, 0, count)
	for i := 0; i < count; i++ {
		item := table[g.rng.Intn(len(table))]
		quantity := randRange(g.rng, 1, max(1, item.MaxQuantity))
		if roll.double {
			quantity *= 2
		}
		loot = append(loot, LootDrop{ItemID: item.ID, Quantity: quantity})
	}
	return loot
}
