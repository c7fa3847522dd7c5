package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/samdwyer/dungeongen/internal/world"
)

// JSONStore keeps the archive in a single JSON file. Every Save rewrites the
// whole file, so it suits small archives and local use.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Dungeons map[string]*jsonEntry `json:"dungeons"`
}

type jsonEntry struct {
	CreatedAt time.Time      `json:"created_at"`
	Dungeon   *world.Dungeon `json:"dungeon"`
}

// OpenJSON opens the archive file at filePath, creating it if missing.
func OpenJSON(filePath string) (*JSONStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	store := &JSONStore{
		filePath: filePath,
		data:     &jsonData{Dungeons: make(map[string]*jsonEntry)},
	}

	content, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		if err := json.Unmarshal(content, store.data); err != nil {
			return nil, fmt.Errorf("failed to load JSON archive: %w", err)
		}
		if store.data.Dungeons == nil {
			store.data.Dungeons = make(map[string]*jsonEntry)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON archive: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to read JSON archive: %w", err)
	}
	return store, nil
}

// saveToFile writes the archive through a temp file so a crash never leaves
// a half-written archive. Callers hold the lock.
func (js *JSONStore) saveToFile() error {
	content, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(js.filePath), ".archive-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), js.filePath)
}

// Save adds one dungeon to the archive.
func (js *JSONStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkRecord(rec); err != nil {
		return err
	}
	createdAt := rec.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()

	if _, exists := js.data.Dungeons[rec.ID]; exists {
		return ErrAlreadyExists
	}
	js.data.Dungeons[rec.ID] = &jsonEntry{CreatedAt: createdAt, Dungeon: rec.Dungeon}
	if err := js.saveToFile(); err != nil {
		delete(js.data.Dungeons, rec.ID)
		return fmt.Errorf("failed to save dungeon: %w", err)
	}
	return nil
}

// Load returns the dungeon archived under id.
func (js *JSONStore) Load(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	entry, ok := js.data.Dungeons[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, CreatedAt: entry.CreatedAt, Dungeon: entry.Dungeon}, nil
}

// List returns summaries of every archived dungeon, oldest first.
func (js *JSONStore) List(ctx context.Context) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	out := make([]Summary, 0, len(js.data.Dungeons))
	for id, entry := range js.data.Dungeons {
		out = append(out, summarize(Record{ID: id, CreatedAt: entry.CreatedAt, Dungeon: entry.Dungeon}))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Close is a no-op; every Save is already on disk.
func (js *JSONStore) Close() error {
	return nil
}
