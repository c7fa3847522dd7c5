package world

import "fmt"

// Difficulty is the tier a dungeon is tuned for.
type Difficulty string

const (
	DifficultyNovice       Difficulty = "novice"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyExperienced  Difficulty = "experienced"
	DifficultyMaster       Difficulty = "master"
	DifficultyGrandmaster  Difficulty = "grandmaster"
)

// Difficulties lists the tiers in ascending order.
var Difficulties = []Difficulty{
	DifficultyNovice,
	DifficultyIntermediate,
	DifficultyExperienced,
	DifficultyMaster,
	DifficultyGrandmaster,
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	for _, known := range Difficulties {
		if d == known {
			return true
		}
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	v := Difficulty(text)
	if v != "" && !v.Valid() {
		return fmt.Errorf("unknown difficulty %q", text)
	}
	*d = v
	return nil
}

// MonsterEntry is one row of a monster table.
type MonsterEntry struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// LootEntry is one row of a loot table.
type LootEntry struct {
	ID          string `json:"id"`
	MaxQuantity int    `json:"max_quantity"`
}

// BossConfig describes the boss placed in the boss room. A nil Level means
// the document left it out; an explicit 0 is kept.
type BossConfig struct {
	ID        string   `json:"id"`
	Level     *int     `json:"level"`
	Mechanics []string `json:"mechanics"`
}

// Boss used for anything a Config leaves out.
const (
	DefaultBossID    = "dungeon_boss"
	DefaultBossLevel = 100
)

// bossSpec is a BossConfig with defaults applied.
type bossSpec struct {
	ID        string
	Level     int
	Mechanics []string
}

// Config holds dungeon generation options. The generator does not validate
// it: callers are expected to pass ranges with min <= max, a room size range
// that fits inside the grid with a two tile border, and probabilities in
// [0, 1]. See gamedata.Validate.
type Config struct {
	Name       string     `json:"name"`
	Theme      string     `json:"theme"`
	Difficulty Difficulty `json:"difficulty"`

	MinRooms    int `json:"min_rooms"`
	MaxRooms    int `json:"max_rooms"`
	MinRoomSize int `json:"min_room_size"`
	MaxRoomSize int `json:"max_room_size"`
	Width       int `json:"width"`
	Height      int `json:"height"`

	CombatRoomChance   float64 `json:"combat_room_chance"`
	PuzzleRoomChance   float64 `json:"puzzle_room_chance"`
	TreasureRoomChance float64 `json:"treasure_room_chance"`
	SecretRoomChance   float64 `json:"secret_room_chance"`
	TrapDensity        float64 `json:"trap_density"`

	// RequiredSkills is copied to the output untouched.
	RequiredSkills []map[string]any `json:"required_skills"`
	MonsterTable   []MonsterEntry   `json:"monster_table"`
	LootTable      []LootEntry      `json:"loot_table"`
	BossConfig     *BossConfig      `json:"boss_config"`
}

// DefaultConfig returns the configuration used for any field a dungeon
// document leaves out.
func DefaultConfig() Config {
	return Config{
		Name:               "Generated Dungeon",
		Theme:              "cave",
		Difficulty:         DifficultyIntermediate,
		MinRooms:           10,
		MaxRooms:           20,
		MinRoomSize:        5,
		MaxRoomSize:        15,
		Width:              100,
		Height:             100,
		CombatRoomChance:   0.4,
		PuzzleRoomChance:   0.15,
		TreasureRoomChance: 0.1,
		SecretRoomChance:   0.05,
		TrapDensity:        0.1,
	}
}

// boss returns the configured boss with missing fields defaulted.
func (c Config) boss() bossSpec {
	b := bossSpec{ID: DefaultBossID, Level: DefaultBossLevel}
	if c.BossConfig == nil {
		return b
	}
	if c.BossConfig.ID != "" {
		b.ID = c.BossConfig.ID
	}
	if c.BossConfig.Level != nil {
		b.Level = *c.BossConfig.Level
	}
	b.Mechanics = c.BossConfig.Mechanics
	return b
}
