package gamedata

import (
	"bytes"
	"errors"
	"fmt"
	"path"

	"github.com/samdwyer/dungeongen/internal/world"
)

// DefaultPresetID names the preset used when no config is supplied.
const DefaultPresetID = "cave"

// PresetEntry is one row of presets/index.json.
type PresetEntry struct {
	ID          string `json:"id"`
	File        string `json:"file"`
	Description string `json:"description"`
}

// PresetIndex represents the structure of presets/index.json.
type PresetIndex struct {
	Presets []PresetEntry `json:"presets"`
}

// Preset is a named, embedded dungeon configuration.
type Preset struct {
	ID          string
	Description string
	Config      world.Config
}

// PresetRegistry holds the embedded presets in index order.
type PresetRegistry struct {
	presets []Preset
	byID    map[string]*Preset
}

// NewPresetRegistry creates a registry from loaded presets.
func NewPresetRegistry(presets []Preset) *PresetRegistry {
	registry := &PresetRegistry{
		presets: presets,
		byID:    make(map[string]*Preset, len(presets)),
	}
	for i := range presets {
		registry.byID[presets[i].ID] = &presets[i]
	}
	return registry
}

// LoadPresetRegistry loads every preset listed in the embedded index.
func LoadPresetRegistry() (*PresetRegistry, error) {
	index, err := Load[PresetIndex]("presets/index.json")
	if err != nil {
		return nil, err
	}
	if len(index.Presets) == 0 {
		return nil, errors.New("no presets listed in presets/index.json")
	}

	presets := make([]Preset, 0, len(index.Presets))
	for _, entry := range index.Presets {
		name := path.Join("presets", entry.File)
		content, err := dataFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded file %s: %w", name, err)
		}
		cfg, err := DecodeConfig(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", entry.ID, err)
		}
		if err := Validate(cfg); err != nil {
			return nil, fmt.Errorf("preset %s: %w", entry.ID, err)
		}
		presets = append(presets, Preset{ID: entry.ID, Description: entry.Description, Config: cfg})
	}
	return NewPresetRegistry(presets), nil
}

// MustLoadPresetRegistry loads the registry, panicking on error.
func MustLoadPresetRegistry() *PresetRegistry {
	registry, err := LoadPresetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *PresetRegistry) GetByID(id string) *Preset {
	return r.byID[id]
}

// All returns all presets.
func (r *PresetRegistry) All() []Preset {
	return r.presets
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.presets)
}
