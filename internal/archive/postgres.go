package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS dungeons (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	seed BIGINT NOT NULL,
	room_count INTEGER NOT NULL,
	document JSONB NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

// PostgresStore persists dungeons in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects to PostgreSQL and creates the schema if needed.
func OpenPostgres(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the database handle.
func (p *PostgresStore) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}

// Save inserts one archived dungeon.
func (p *PostgresStore) Save(ctx context.Context, rec Record) error {
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

	_, err = p.db.ExecContext(ctx,
		`INSERT INTO dungeons (id, name, seed, room_count, document, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID,
		rec.Dungeon.Metadata.Name,
		rec.Dungeon.Metadata.Seed,
		len(rec.Dungeon.Rooms),
		string(document),
		createdAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to save dungeon: %w", err)
	}
	return nil
}

// Load returns the dungeon archived under id.
func (p *PostgresStore) Load(ctx context.Context, id string) (Record, error) {
	var (
		document  []byte
		createdAt time.Time
	)
	row := p.db.QueryRowContext(ctx, `SELECT document, created_at FROM dungeons WHERE id = $1`, id)
	if err := row.Scan(&document, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("failed to load dungeon: %w", err)
	}
	return decodeRecord(id, document, createdAt.UTC())
}

// List returns summaries of every archived dungeon, oldest first.
func (p *PostgresStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, name, seed, room_count, created_at FROM dungeons ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Seed, &s.RoomCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dungeon: %w", err)
		}
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}
