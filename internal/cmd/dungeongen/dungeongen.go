// Package dungeongen parses generator flags and runs one generation.
package dungeongen

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/dungeongen/internal/archive"
	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/telemetry"
	"github.com/samdwyer/dungeongen/internal/world"
)

// Config holds command configuration. Environment variables set the
// defaults and flags override them.
type Config struct {
	ConfigPath    string `env:"DUNGEONGEN_CONFIG"`
	Preset        string `env:"DUNGEONGEN_PRESET" envDefault:"cave"`
	Output        string `env:"DUNGEONGEN_OUTPUT" envDefault:"dungeon.json"`
	Seed          int64  `env:"DUNGEONGEN_SEED"`
	Preview       bool   `env:"DUNGEONGEN_PREVIEW"`
	PreviewStep   int    `env:"DUNGEONGEN_PREVIEW_STEP" envDefault:"2"`
	ArchiveDriver string `env:"DUNGEONGEN_ARCHIVE_DRIVER"`
	ArchiveDSN    string `env:"DUNGEONGEN_ARCHIVE_DSN"`
	// TraceSampleRatio is the fraction of runs traced once telemetry is on.
	TraceSampleRatio float64 `env:"DUNGEONGEN_TRACE_SAMPLE_RATIO" envDefault:"1"`
	ListPresets      bool
	// ArchiveList and ArchiveLoad read the archive instead of generating.
	ArchiveList bool
	ArchiveLoad string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "Dungeon configuration file (JSON)")
	fs.StringVar(&cfg.Preset, "preset", cfg.Preset, "Embedded preset used when -config is not set")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output file path, or - for stdout")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for reproducibility (0 picks one)")
	fs.BoolVar(&cfg.Preview, "preview", cfg.Preview, "Show ASCII preview")
	fs.IntVar(&cfg.PreviewStep, "preview-step", cfg.PreviewStep, "Render every n-th row and column in the preview")
	fs.StringVar(&cfg.ArchiveDriver, "archive", cfg.ArchiveDriver, "Archive driver: sqlite, postgres or json (empty disables)")
	fs.StringVar(&cfg.ArchiveDSN, "archive-dsn", cfg.ArchiveDSN, "Archive path or connection string")
	fs.BoolVar(&cfg.ListPresets, "list-presets", cfg.ListPresets, "List embedded presets and exit")
	fs.BoolVar(&cfg.ArchiveList, "archive-list", cfg.ArchiveList, "List archived dungeons and exit")
	fs.StringVar(&cfg.ArchiveLoad, "archive-load", cfg.ArchiveLoad, "Write the archived dungeon with this ID to -output and exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.ArchiveDriver != "" && cfg.ArchiveDSN == "" {
		return Config{}, errors.New("-archive-dsn is required when -archive is set")
	}
	if (cfg.ArchiveList || cfg.ArchiveLoad != "") && cfg.ArchiveDriver == "" {
		return Config{}, errors.New("-archive is required to read the archive")
	}
	return cfg, nil
}

// Run generates one dungeon, writes it out and optionally archives it.
func Run(ctx context.Context, cfg Config, stdout io.Writer) error {
	presets, err := gamedata.LoadPresetRegistry()
	if err != nil {
		return err
	}
	if cfg.ListPresets {
		for _, p := range presets.All() {
			fmt.Fprintf(stdout, "%-10s %s\n", p.ID, p.Description)
		}
		return nil
	}
	if cfg.ArchiveList {
		return listArchive(ctx, cfg, stdout)
	}
	if cfg.ArchiveLoad != "" {
		return loadArchived(ctx, cfg, stdout)
	}

	dungeonCfg, err := resolveDungeonConfig(cfg, presets)
	if err != nil {
		return err
	}

	tracer := telemetry.Tracer("cmd")
	ctx, span := tracer.Start(ctx, "dungeongen.run")
	defer span.End()

	dungeon, err := world.Generate(ctx, dungeonCfg, cfg.Seed)
	if err != nil {
		return fmt.Errorf("generate dungeon: %w", err)
	}
	recordMetrics(ctx, telemetry.Meter("cmd"), dungeon)

	if err := writeDungeon(cfg.Output, dungeon, stdout); err != nil {
		return err
	}

	if cfg.ArchiveDriver != "" {
		id, err := archiveDungeon(ctx, cfg, dungeon)
		if err != nil {
			return err
		}
		log.Printf("archived dungeon %s (%s)", id, cfg.ArchiveDriver)
		fmt.Fprintf(stdout, "Archive ID: %s\n", id)
	}

	if cfg.Output != "-" {
		fmt.Fprintf(stdout, "Generated dungeon with %d rooms\n", len(dungeon.Rooms))
		fmt.Fprintf(stdout, "Seed: %d\n", dungeon.Metadata.Seed)
		fmt.Fprintf(stdout, "Output: %s\n", cfg.Output)
	}

	if cfg.Preview {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "ASCII Preview:")
		fmt.Fprint(stdout, dungeon.Preview(cfg.PreviewStep))
	}
	return nil
}

func resolveDungeonConfig(cfg Config, presets *gamedata.PresetRegistry) (world.Config, error) {
	if cfg.ConfigPath != "" {
		return gamedata.LoadConfigFile(cfg.ConfigPath)
	}
	preset := presets.GetByID(cfg.Preset)
	if preset == nil {
		return world.Config{}, fmt.Errorf("unknown preset %q", cfg.Preset)
	}
	return preset.Config, nil
}

func writeDungeon(output string, dungeon *world.Dungeon, stdout io.Writer) error {
	content, err := json.MarshalIndent(dungeon, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dungeon: %w", err)
	}
	content = append(content, '\n')

	if output == "-" {
		_, err := stdout.Write(content)
		return err
	}
	if err := os.WriteFile(output, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

func openArchive(cfg Config) (archive.Store, func(), error) {
	store, err := archive.Open(cfg.ArchiveDriver, cfg.ArchiveDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing archive: %v", err)
		}
	}
	return store, closeStore, nil
}

func archiveDungeon(ctx context.Context, cfg Config, dungeon *world.Dungeon) (string, error) {
	store, closeStore, err := openArchive(cfg)
	if err != nil {
		return "", err
	}
	defer closeStore()

	rec := archive.NewRecord(dungeon)
	if err := store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("archive dungeon: %w", err)
	}
	return rec.ID, nil
}

func listArchive(ctx context.Context, cfg Config, stdout io.Writer) error {
	store, closeStore, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	summaries, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list archive: %w", err)
	}
	for _, s := range summaries {
		fmt.Fprintf(stdout, "%s  %s  seed=%d rooms=%d  %q\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Seed, s.RoomCount, s.Name)
	}
	return nil
}

func loadArchived(ctx context.Context, cfg Config, stdout io.Writer) error {
	store, closeStore, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := store.Load(ctx, cfg.ArchiveLoad)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.ArchiveLoad, err)
	}
	if err := writeDungeon(cfg.Output, rec.Dungeon, stdout); err != nil {
		return err
	}
	if cfg.Output != "-" {
		fmt.Fprintf(stdout, "Loaded dungeon %s (seed %d)\n", rec.ID, rec.Dungeon.Metadata.Seed)
		fmt.Fprintf(stdout, "Output: %s\n", cfg.Output)
	}
	if cfg.Preview {
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "ASCII Preview:")
		fmt.Fprint(stdout, rec.Dungeon.Preview(cfg.PreviewStep))
	}
	return nil
}

// recordMetrics counts the run and its room total on meter.
func recordMetrics(ctx context.Context, meter metric.Meter, dungeon *world.Dungeon) {
	attrs := metric.WithAttributes(
		attribute.String("dungeon.theme", dungeon.Metadata.Theme),
		attribute.String("dungeon.difficulty", string(dungeon.Metadata.Difficulty)),
	)

	if generated, err := meter.Int64Counter("dungeongen.dungeons.generated",
		metric.WithDescription("Dungeons generated")); err == nil {
		generated.Add(ctx, 1, attrs)
	}
	if rooms, err := meter.Int64Histogram("dungeongen.dungeon.rooms",
		metric.WithDescription("Rooms per generated dungeon")); err == nil {
		rooms.Record(ctx, int64(len(dungeon.Rooms)), attrs)
	}
}
