// Package archive persists generated dungeons so a run can be looked up
// again by ID.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeongen/internal/world"
)

// Lookup and insert errors shared by every store.
var (
	ErrNotFound      = errors.New("dungeon not found")
	ErrAlreadyExists = errors.New("dungeon already archived")
)

// Record is one archived dungeon.
type Record struct {
	ID        string
	CreatedAt time.Time
	Dungeon   *world.Dungeon
}

// Summary describes an archived dungeon without its grid.
type Summary struct {
	ID        string
	Name      string
	Seed      int64
	RoomCount int
	CreatedAt time.Time
}

// Store defines the interface for dungeon persistence.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Load(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Summary, error)
	Close() error
}

// NewRecord wraps a dungeon in a record with a fresh ID.
func NewRecord(d *world.Dungeon) Record {
	return Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Dungeon:   d,
	}
}

func summarize(rec Record) Summary {
	s := Summary{ID: rec.ID, CreatedAt: rec.CreatedAt}
	if rec.Dungeon != nil {
		s.Name = rec.Dungeon.Metadata.Name
		s.Seed = rec.Dungeon.Metadata.Seed
		s.RoomCount = len(rec.Dungeon.Rooms)
	}
	return s
}

func checkRecord(rec Record) error {
	if rec.ID == "" {
		return errors.New("record id is required")
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		return errors.New("record id must be a UUID")
	}
	if rec.Dungeon == nil {
		return errors.New("record has no dungeon")
	}
	return nil
}
