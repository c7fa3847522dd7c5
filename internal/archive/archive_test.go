package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samdwyer/dungeongen/internal/world"
)

func testDungeon(t *testing.T, seed int64) *world.Dungeon {
	t.Helper()
	cfg := world.DefaultConfig()
	cfg.Name = "Archive Test"
	cfg.Width = 40
	cfg.Height = 40
	cfg.MinRooms = 3
	cfg.MaxRooms = 5
	cfg.MinRoomSize = 4
	cfg.MaxRoomSize = 7
	cfg.LootTable = []world.LootEntry{{ID: "gold_coins", MaxQuantity: 50}}
	cfg.MonsterTable = []world.MonsterEntry{{ID: "rat", Level: 2}}
	d, err := world.Generate(context.Background(), cfg, seed)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return d
}

// exerciseStore runs the behaviour every Store implementation shares.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	first := NewRecord(testDungeon(t, 1))
	first.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	second := NewRecord(testDungeon(t, 2))
	second.CreatedAt = first.CreatedAt.Add(time.Minute)

	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := store.Save(ctx, first); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("Saving the same ID twice should return ErrAlreadyExists, got %v", err)
	}

	loaded, err := store.Load(ctx, first.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", loaded.CreatedAt, first.CreatedAt)
	}
	want, _ := json.Marshal(first.Dungeon)
	got, _ := json.Marshal(loaded.Dungeon)
	if !bytes.Equal(want, got) {
		t.Error("Loaded dungeon differs from the saved one")
	}

	if _, err := store.Load(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load of unknown ID should return ErrNotFound, got %v", err)
	}

	summaries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != first.ID || summaries[1].ID != second.ID {
		t.Error("Summaries should be ordered oldest first")
	}
	if summaries[0].Seed != 1 || summaries[0].Name != "Archive Test" || summaries[0].RoomCount != len(first.Dungeon.Rooms) {
		t.Errorf("Unexpected summary: %+v", summaries[0])
	}

	if err := store.Save(ctx, Record{ID: "not-a-uuid", Dungeon: first.Dungeon}); err == nil {
		t.Error("Save should reject non-UUID IDs")
	}
	if err := store.Save(ctx, NewRecord(nil)); err == nil {
		t.Error("Save should reject records without a dungeon")
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Error("OpenSQLite should require a path")
	}
}

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	store, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	exerciseStore(t, store)
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening reads back what was written.
	reopened, err := OpenJSON(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	summaries, err := reopened.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("Expected 2 dungeons after reopening, got %d", len(summaries))
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenJSON(path); err == nil {
		t.Error("OpenJSON should fail on a corrupt archive")
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DUNGEONGEN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("DUNGEONGEN_TEST_POSTGRES_DSN not set")
	}
	store, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("OpenPostgres: %v", err)
	}
	defer store.Close()
	if _, err := store.db.Exec(`TRUNCATE dungeons`); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	exerciseStore(t, store)
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open("mongo", "x"); err == nil {
		t.Error("Open should reject unknown drivers")
	}
}

func TestOpenDispatch(t *testing.T) {
	dir := t.TempDir()
	for _, tt := range []struct{ driver, file string }{
		{"sqlite", "a.db"},
		{"json", "a.json"},
	} {
		store, err := Open(tt.driver, filepath.Join(dir, tt.file))
		if err != nil {
			t.Fatalf("Open(%s): %v", tt.driver, err)
		}
		if err := store.Close(); err != nil {
			t.Errorf("Close(%s): %v", tt.driver, err)
		}
	}
}
