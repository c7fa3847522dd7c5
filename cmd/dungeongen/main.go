// Package main is the entry point for the dungeon generator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeongen/internal/cmd/dungeongen"
	"github.com/samdwyer/dungeongen/internal/telemetry"
)

const version = "0.1.0"

// setupFunc installs telemetry and returns its shutdown.
type setupFunc func(ctx context.Context, opts telemetry.Options) (func(context.Context) error, error)

func main() {
	log.SetPrefix("[DUNGEONGEN] ")

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	os.Exit(run(os.Args[1:], os.Stdout, telemetry.Setup))
}

// run executes one generation and returns the process exit code. Deferred
// cleanup, including the telemetry flush, has finished by the time it returns.
func run(args []string, stdout io.Writer, setup setupFunc) int {
	cfg, err := dungeongen.ParseConfig(flag.NewFlagSet("dungeongen", flag.ContinueOnError), args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		log.Printf("parse flags: %v", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if setupOTelEnv() {
		shutdown, err := setup(ctx, telemetry.Options{
			ServiceVersion: version,
			SampleRatio:    cfg.TraceSampleRatio,
		})
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(flushCtx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	if err := dungeongen.Run(ctx, cfg, stdout); err != nil {
		log.Printf("generation failed: %v", err)
		return 1
	}
	return 0
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
// It reports whether an API key was found; without one telemetry stays off.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_DUNGEONGEN_API_KEY")
	if apiKey == "" {
		return false
	}
	dataset := os.Getenv("HONEYCOMB_DUNGEONGEN_DATASET")
	if dataset == "" {
		dataset = "dungeongen"
	}

	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here instead.
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
