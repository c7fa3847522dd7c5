package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samdwyer/dungeongen/internal/world"
)

// Load reads and unmarshals a JSON file from the embedded filesystem.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON from %s: %w", filename, err)
	}

	return result, nil
}

// DecodeConfig reads a dungeon configuration document. Fields the document
// leaves out keep their world.DefaultConfig values; unknown fields are an
// error so typos do not silently fall back to defaults.
func DecodeConfig(r io.Reader) (world.Config, error) {
	cfg := world.DefaultConfig()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return world.Config{}, fmt.Errorf("decode dungeon config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a dungeon configuration from disk and validates it.
func LoadConfigFile(path string) (world.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return world.Config{}, fmt.Errorf("read dungeon config %s: %w", path, err)
	}
	cfg, err := DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return world.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return world.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
