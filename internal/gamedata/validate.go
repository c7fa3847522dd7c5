package gamedata

import (
	"errors"
	"fmt"

	"github.com/samdwyer/dungeongen/internal/world"
)

// minRoomSide is the smallest room side that still leaves a one tile interior.
const minRoomSide = 3

// Validate checks the preconditions the generator relies on but does not
// enforce itself. All problems are reported together.
func Validate(cfg world.Config) error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if cfg.Difficulty != "" && !cfg.Difficulty.Valid() {
		add("unknown difficulty %q", cfg.Difficulty)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		add("grid must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.MinRooms < 0 || cfg.MinRooms > cfg.MaxRooms {
		add("room count range [%d, %d] is invalid", cfg.MinRooms, cfg.MaxRooms)
	}
	if cfg.MinRoomSize < minRoomSide || cfg.MinRoomSize > cfg.MaxRoomSize {
		add("room size range [%d, %d] is invalid (min side %d)", cfg.MinRoomSize, cfg.MaxRoomSize, minRoomSide)
	}
	// Rooms keep a two tile border on each side of the grid.
	if limit := min(cfg.Width, cfg.Height) - 4; cfg.MaxRoomSize > limit {
		add("max room size %d does not fit a %dx%d grid", cfg.MaxRoomSize, cfg.Width, cfg.Height)
	}

	chances := []struct {
		name  string
		value float64
	}{
		{"combat_room_chance", cfg.CombatRoomChance},
		{"puzzle_room_chance", cfg.PuzzleRoomChance},
		{"treasure_room_chance", cfg.TreasureRoomChance},
		{"secret_room_chance", cfg.SecretRoomChance},
		{"trap_density", cfg.TrapDensity},
	}
	for _, c := range chances {
		if c.value < 0 || c.value > 1 {
			add("%s must be within [0, 1], got %v", c.name, c.value)
		}
	}
	if sum := cfg.CombatRoomChance + cfg.PuzzleRoomChance + cfg.TreasureRoomChance; sum > 1 {
		add("room type chances sum to %v, more than 1", sum)
	}

	for i, m := range cfg.MonsterTable {
		if m.ID == "" {
			add("monster_table[%d] has no id", i)
		}
	}
	for i, l := range cfg.LootTable {
		if l.ID == "" {
			add("loot_table[%d] has no id", i)
		}
		if l.MaxQuantity < 1 {
			add("loot_table[%d] %q max_quantity must be at least 1", i, l.ID)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid dungeon config: %w", errors.Join(errs...))
}
