package world

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/dungeongen/internal/telemetry"
)

const (
	roomPadding            = 2 // Padding around rooms for overlap tests
	edgeMargin             = 2 // Minimum distance between a room and the grid edge
	placementTrialsPerRoom = 3
)

// Generator runs one dungeon generation. It owns its random source, grid and
// room catalog; nothing is shared between generators.
type Generator struct {
	cfg   Config
	seed  int64
	rng   *rand.Rand
	grid  *Grid
	rooms *Catalog
}

// NewGenerator prepares a run for cfg. A seed of 0 means a random seed will
// be generated and recorded in the exported metadata.
func NewGenerator(cfg Config, seed int64) (*Generator, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}
	g := &Generator{cfg: cfg, seed: seed}
	g.reset()
	return g, nil
}

// Generate is shorthand for NewGenerator followed by Generator.Generate.
func Generate(ctx context.Context, cfg Config, seed int64) (*Dungeon, error) {
	g, err := NewGenerator(cfg, seed)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx)
}

func (g *Generator) reset() {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.grid = NewGrid(g.cfg.Width, g.cfg.Height)
	g.rooms = NewCatalog()
}

// Generate builds the dungeon. Every call starts from a fresh grid and the
// original seed, so repeated calls return identical dungeons.
func (g *Generator) Generate(ctx context.Context) (*Dungeon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()
	g.reset()

	if err := g.phase(ctx, tracer, "dungeon.place_rooms", g.placeRooms); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("place rooms: %w", err)
	}
	_ = g.phase(ctx, tracer, "dungeon.connect_rooms", func() error {
		g.connectRooms()
		return nil
	})
	_ = g.phase(ctx, tracer, "dungeon.assign_roles", func() error {
		g.placeSpecialRooms()
		g.populateRooms()
		return nil
	})
	_ = g.phase(ctx, tracer, "dungeon.add_traps", func() error {
		g.addTraps()
		return nil
	})
	secret := false
	if err := g.phase(ctx, tracer, "dungeon.add_secret_room", func() error {
		var err error
		secret, err = g.addSecretRoom()
		return err
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("add secret room: %w", err)
	}

	dungeon := g.Export()

	span.SetAttributes(
		attribute.String("dungeon.name", g.cfg.Name),
		attribute.Int64("dungeon.seed", g.seed),
		attribute.Int("dungeon.width", g.grid.Width),
		attribute.Int("dungeon.height", g.grid.Height),
		attribute.Int("dungeon.room_count", g.rooms.Len()),
		attribute.Int("dungeon.trap_count", g.grid.Count(TileTrap)),
		attribute.Bool("dungeon.secret_room", secret),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)
	return dungeon, nil
}

// phase runs one generation pass inside its own span.
func (g *Generator) phase(ctx context.Context, tracer trace.Tracer, name string, fn func() error) error {
	_, span := tracer.Start(ctx, name)
	defer span.End()

	err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(attribute.Int("dungeon.room_count", g.rooms.Len()))
	return err
}
