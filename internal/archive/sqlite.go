package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/samdwyer/dungeongen/internal/world"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS dungeons (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	seed INTEGER NOT NULL,
	room_count INTEGER NOT NULL,
	document TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS dungeons_created_at ON dungeons (created_at);
`

// SQLiteStore persists dungeons in a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens (creating if needed) a SQLite archive at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts one archived dungeon.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkRecord(rec); err != nil {
		return err
	}
	document, err := json.Marshal(rec.Dungeon)
	if err != nil {
		return fmt.Errorf("marshal dungeon: %w", err)
	}
	createdAt := rec.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO dungeons (id, name, seed, room_count, document, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Dungeon.Metadata.Name,
		rec.Dungeon.Metadata.Seed,
		len(rec.Dungeon.Rooms),
		string(document),
		createdAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("save dungeon: %w", err)
	}
	return nil
}

// Load returns the dungeon archived under id.
func (s *SQLiteStore) Load(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	var (
		document  string
		createdAt int64
	)
	row := s.sqlDB.QueryRowContext(ctx, `SELECT document, created_at FROM dungeons WHERE id = ?`, id)
	if err := row.Scan(&document, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("load dungeon: %w", err)
	}
	return decodeRecord(id, []byte(document), time.UnixMilli(createdAt).UTC())
}

// List returns summaries of every archived dungeon, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, name, seed, room_count, created_at FROM dungeons ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list dungeons: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum       Summary
			createdAt int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Seed, &sum.RoomCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan dungeon: %w", err)
		}
		sum.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func decodeRecord(id string, document []byte, createdAt time.Time) (Record, error) {
	var d world.Dungeon
	if err := json.Unmarshal(document, &d); err != nil {
		return Record{}, fmt.Errorf("decode dungeon %s: %w", id, err)
	}
	return Record{ID: id, CreatedAt: createdAt, Dungeon: &d}, nil
}
