package world

import "testing"

func newTestGenerator(t *testing.T, cfg Config, seed int64) *Generator {
	t.Helper()
	g, err := NewGenerator(cfg, seed)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestRollRoleThresholds(t *testing.T) {
	tests := []struct {
		name                     string
		combat, puzzle, treasure float64
		want                     Role
	}{
		{"all combat", 1, 0, 0, RoleCombat},
		{"all puzzle", 0, 1, 0, RolePuzzle},
		{"all treasure", 0, 0, 1, RoleTreasure},
		{"all safe", 0, 0, 0, RoleSafe},
		// Combat is checked first so it wins even when puzzle is also certain.
		{"combat first", 1, 1, 1, RoleCombat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CombatRoomChance = tt.combat
			cfg.PuzzleRoomChance = tt.puzzle
			cfg.TreasureRoomChance = tt.treasure
			g := newTestGenerator(t, cfg, 1)
			for i := 0; i < 50; i++ {
				if got := g.rollRole(); got != tt.want {
					t.Fatalf("roll %d: got %s, want %s", i, got, tt.want)
				}
			}
		})
	}
}

func TestRollRoleDistribution(t *testing.T) {
	cfg := testConfig()
	cfg.CombatRoomChance = 0.4
	cfg.PuzzleRoomChance = 0.15
	cfg.TreasureRoomChance = 0.1
	g := newTestGenerator(t, cfg, 2)

	counts := make(map[Role]int)
	const rolls = 20000
	for i := 0; i < rolls; i++ {
		counts[g.rollRole()]++
	}

	expect := map[Role]float64{RoleCombat: 0.4, RolePuzzle: 0.15, RoleTreasure: 0.1, RoleSafe: 0.35}
	for role, p := range expect {
		got := float64(counts[role]) / rolls
		if got < p-0.03 || got > p+0.03 {
			t.Errorf("%s frequency %.3f, expected about %.2f", role, got, p)
		}
	}
}

func TestGeneratePuzzleRanges(t *testing.T) {
	g := newTestGenerator(t, testConfig(), 3)
	seen := make(map[PuzzleKind]bool)
	for i := 0; i < 500; i++ {
		p := g.generatePuzzle()
		lo, hi := p.Kind.paramRange()
		if p.Count < lo || p.Count > hi {
			t.Errorf("%s count %d outside [%d,%d]", p.Kind, p.Count, lo, hi)
		}
		seen[p.Kind] = true
	}
	if len(seen) != puzzleKindCount {
		t.Errorf("Expected all %d puzzle kinds, saw %d", puzzleKindCount, len(seen))
	}
}

func TestGenerateLoot(t *testing.T) {
	cfg := testConfig()
	cfg.LootTable = []LootEntry{{ID: "gem", MaxQuantity: 4}, {ID: "dust", MaxQuantity: 0}}
	g := newTestGenerator(t, cfg, 4)

	for i := 0; i < 200; i++ {
		base := g.generateLoot(lootRoll{})
		if len(base) < minLootItems || len(base) > maxLootItems {
			t.Fatalf("base loot count %d outside [1,3]", len(base))
		}

		treasure := g.generateLoot(lootRoll{bonus: treasureLootBonus})
		if len(treasure) < 3 || len(treasure) > 5 {
			t.Fatalf("treasure loot count %d outside [3,5]", len(treasure))
		}

		boss := g.generateLoot(lootRoll{bonus: bossLootBonus, double: true})
		if len(boss) < 4 || len(boss) > 6 {
			t.Fatalf("boss loot count %d outside [4,6]", len(boss))
		}
		for _, l := range boss {
			limit := 8
			if l.ItemID == "dust" {
				limit = 2
			}
			if l.Quantity < 2 || l.Quantity > limit || l.Quantity%2 != 0 {
				t.Fatalf("boss %s quantity %d invalid", l.ItemID, l.Quantity)
			}
		}
		for _, l := range append(base, treasure...) {
			if l.ItemID == "dust" && l.Quantity != 1 {
				t.Fatalf("dust with max 0 should drop exactly 1, got %d", l.Quantity)
			}
		}
	}
}

func TestEmptyTables(t *testing.T) {
	cfg := testConfig()
	cfg.MonsterTable = nil
	cfg.LootTable = nil
	g := newTestGenerator(t, cfg, 5)

	if got := g.generateEncounters(Rect{X: 2, Y: 2, Width: 10, Height: 10}); len(got) != 0 {
		t.Errorf("Expected no encounters without a monster table, got %d", len(got))
	}
	if got := g.generateLoot(lootRoll{bonus: 3}); len(got) != 0 {
		t.Errorf("Expected no loot without a loot table, got %d", len(got))
	}
}

func TestGenerateEncounterCount(t *testing.T) {
	g := newTestGenerator(t, testConfig(), 6)
	room := Rect{X: 2, Y: 2, Width: 10, Height: 8} // area 80 => up to 4 monsters
	for i := 0; i < 200; i++ {
		got := g.generateEncounters(room)
		if len(got) < 1 || len(got) > 4 {
			t.Fatalf("encounter count %d outside [1,4]", len(got))
		}
	}

	small := Rect{X: 2, Y: 2, Width: 4, Height: 4} // area 16 => exactly 1
	if got := g.generateEncounters(small); len(got) != 1 {
		t.Errorf("small room should get exactly 1 encounter, got %d", len(got))
	}
}

func TestEntranceIsClosestToEdge(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 50
	cfg.Height = 50
	g := newTestGenerator(t, cfg, 7)

	g.rooms.Add(RoleCorridor, Rect{X: 20, Y: 20, Width: 5, Height: 5})
	g.rooms.Add(RoleCorridor, Rect{X: 3, Y: 30, Width: 5, Height: 5})  // 3 from left edge
	g.rooms.Add(RoleCorridor, Rect{X: 40, Y: 4, Width: 5, Height: 5})  // 4 from top edge
	g.rooms.Add(RoleCorridor, Rect{X: 30, Y: 42, Width: 5, Height: 5}) // 3 from bottom, later

	g.placeSpecialRooms()

	if role := g.rooms.Get(1).Role; role != RoleEntrance {
		t.Errorf("Room 1 should be the entrance (first room 3 tiles from an edge), got %s", role)
	}
	// Room 2 center (42,6) is furthest from room 1 center (5,32).
	if role := g.rooms.Get(2).Role; role != RoleBoss {
		t.Errorf("Room 2 should be the boss room, got %s", role)
	}
}

func TestConnectRoomsBuildsTree(t *testing.T) {
	cfg := testConfig()
	cfg.Width = 60
	cfg.Height = 60
	g := newTestGenerator(t, cfg, 8)

	g.rooms.Add(RoleCorridor, Rect{X: 2, Y: 2, Width: 4, Height: 4})
	g.rooms.Add(RoleCorridor, Rect{X: 40, Y: 40, Width: 4, Height: 4})
	g.rooms.Add(RoleCorridor, Rect{X: 12, Y: 2, Width: 4, Height: 4})

	g.connectRooms()

	// Nearest-neighbour growth from room 0 reaches room 2 first, then room 1
	// hangs off whichever of 0 and 2 is closer (room 2).
	if !g.rooms.Adjacent(0, 2) {
		t.Error("Room 0 should connect to its nearest neighbour, room 2")
	}
	if !g.rooms.Adjacent(2, 1) {
		t.Error("Room 1 should connect to room 2")
	}
	// Corridor from room 0 center (4,4) to room 2 center (14,4) is a straight run.
	for x := 4; x <= 14; x++ {
		if g.grid.At(x, 4) != TileFloor {
			t.Errorf("Expected corridor floor at (%d,4)", x)
		}
	}
}

func TestAddTrapsCapsAtFloorCount(t *testing.T) {
	cfg := testConfig()
	cfg.TrapDensity = 1.5
	g := newTestGenerator(t, cfg, 9)
	if err := g.grid.CarveRect(Rect{X: 1, Y: 1, Width: 3, Height: 3}, TileFloor); err != nil {
		t.Fatalf("CarveRect: %v", err)
	}

	if n := g.addTraps(); n != 9 {
		t.Errorf("Expected all 9 floor tiles trapped, got %d", n)
	}
	if g.grid.Count(TileFloor) != 0 || g.grid.Count(TileTrap) != 9 {
		t.Error("Every floor tile should now be a trap")
	}
}
