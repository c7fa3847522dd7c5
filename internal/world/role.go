package world

import "fmt"

// Role is the functional classification of a room.
type Role uint8

const (
	// RoleCorridor is the placeholder every room carries until roles are assigned.
	RoleCorridor Role = iota
	RoleEntrance
	RoleCombat
	RolePuzzle
	RoleTreasure
	RoleBoss
	RoleSkillCheck
	RoleSafe
	RoleSecret
)

var roleTags = [...]string{
	RoleCorridor:   "corridor",
	RoleEntrance:   "entrance",
	RoleCombat:     "combat",
	RolePuzzle:     "puzzle",
	RoleTreasure:   "treasure",
	RoleBoss:       "boss",
	RoleSkillCheck: "skill_check",
	RoleSafe:       "safe",
	RoleSecret:     "secret",
}

// String returns the role tag used in exported rooms.
func (r Role) String() string {
	if int(r) < len(roleTags) {
		return roleTags[r]
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// IsSpecial reports whether the role is fixed by the special-room pass.
func (r Role) IsSpecial() bool {
	return r == RoleEntrance || r == RoleBoss
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if int(r) >= len(roleTags) {
		return nil, fmt.Errorf("unknown role %d", uint8(r))
	}
	return []byte(roleTags[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	for i, tag := range roleTags {
		if tag == string(text) {
			*r = Role(i)
			return nil
		}
	}
	return fmt.Errorf("unknown room type %q", text)
}

// PuzzleKind identifies one of the fixed puzzle templates.
type PuzzleKind uint8

const (
	PuzzleLeverSequence PuzzleKind = iota
	PuzzlePressurePlates
	PuzzleSymbolMatching
	PuzzleTorchLighting
	PuzzleBlockPushing
)

// puzzleKindCount is the number of puzzle templates.
const puzzleKindCount = 5

// String returns the puzzle type tag.
func (k PuzzleKind) String() string {
	switch k {
	case PuzzleLeverSequence:
		return "lever_sequence"
	case PuzzlePressurePlates:
		return "pressure_plates"
	case PuzzleSymbolMatching:
		return "symbol_matching"
	case PuzzleTorchLighting:
		return "torch_lighting"
	case PuzzleBlockPushing:
		return "block_pushing"
	default:
		return fmt.Sprintf("puzzle(%d)", uint8(k))
	}
}

// paramKey returns the JSON key carrying the puzzle's count parameter.
func (k PuzzleKind) paramKey() string {
	switch k {
	case PuzzleLeverSequence:
		return "levers"
	case PuzzlePressurePlates:
		return "plates"
	case PuzzleSymbolMatching:
		return "symbols"
	case PuzzleTorchLighting:
		return "torches"
	case PuzzleBlockPushing:
		return "blocks"
	default:
		return ""
	}
}

// paramRange returns the inclusive range the count parameter is drawn from.
func (k PuzzleKind) paramRange() (int, int) {
	switch k {
	case PuzzleLeverSequence:
		return 3, 6
	case PuzzlePressurePlates:
		return 4, 9
	case PuzzleSymbolMatching:
		return 3, 5
	case PuzzleTorchLighting:
		return 4, 8
	case PuzzleBlockPushing:
		return 2, 4
	default:
		return 0, 0
	}
}

func parsePuzzleKind(s string) (PuzzleKind, error) {
	for k := PuzzleKind(0); k < puzzleKindCount; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown puzzle type %q", s)
}
