// Package main provides the exporter command that flattens per-user export
// archives into one sanitized corpus artifact per user.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"igcorpus/internal/config"
	"igcorpus/internal/engine"
	"igcorpus/internal/ingest"
	"igcorpus/internal/logger"
	"igcorpus/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional; flag defaults read the environment after it loads.
	_ = godotenv.Load()

	// 1. Define Command-Line Flags
	// ----------------------------
	configPath := flag.String("config", envOr("IGCORPUS_CONFIG", "configs/exporter.yaml"), "Path to YAML config file")
	inputRoot := flag.String("input", os.Getenv("IGCORPUS_INPUT"), "Input root containing <user>/<user>.json archives")
	outputRoot := flag.String("output", os.Getenv("IGCORPUS_OUTPUT"), "Output root for corpus artifacts")
	format := flag.String("format", os.Getenv("IGCORPUS_FORMAT"), "Output format: csv, tsv or json")
	workers := flag.Int("workers", 0, "Engine worker count")
	logLevel := flag.String("log-level", os.Getenv("IGCORPUS_LOG_LEVEL"), "Log level: debug, info, warn, error")
	documentMode := flag.Bool("document-mode", false, "Emit one combined text document per post")
	parallelized := flag.Bool("parallelized", false, "Write engine-partitioned shards instead of one file per user")

	flag.Parse()

	log := logger.NewLogger("info")

	// 2. Configuration
	// ----------------
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Config load failed: %v", err))

		return 1
	}

	if *inputRoot != "" {
		cfg.Exporter.Input.Root = *inputRoot
	}

	if *outputRoot != "" {
		cfg.Exporter.Output.Root = *outputRoot
	}

	if *format != "" {
		cfg.Exporter.Output.Format = *format
	}

	if *workers > 0 {
		cfg.Exporter.Engine.Workers = *workers
	}

	if *logLevel != "" {
		cfg.Exporter.Logging.Level = *logLevel
	}

	if *documentMode {
		cfg.Exporter.Output.DocumentMode = true
	}

	if *parallelized {
		cfg.Exporter.Output.Parallelized = true
	}

	if err := cfg.Validate(); err != nil {
		log.Error(fmt.Sprintf("❌ Invalid configuration: %v", err))

		return 1
	}

	log = logger.NewLogger(cfg.Exporter.Logging.Level)

	log.Info("🚀 Starting Corpus Export")
	log.Info(fmt.Sprintf("📍 Input: %s", cfg.Exporter.Input.Root))
	log.Info(fmt.Sprintf("🎯 Output: %s (format: %s)", cfg.Exporter.Output.Root, cfg.Exporter.Output.Format))
	log.Info(fmt.Sprintf("ℹ️  %s", cfg))

	// 3. Engine Session
	// -----------------
	session := engine.NewSession(cfg.Exporter.Engine.Workers, log)

	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn(fmt.Sprintf("⚠️  Failed to close engine session: %v", closeErr))
		}
	}()

	log.Info(fmt.Sprintf("ℹ️  Engine session %s (%d workers)", session.ID(), session.Workers()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Export Run
	// -------------
	log.Info("Phase 1: Export (Resolve, Normalize, Write)...")

	exporter, err := pipeline.NewExporter(cfg, ingest.NewReader(cfg.Exporter.Input.Root), session, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))

		return 1
	}

	rep, err := exporter.Run(ctx)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Export failed: %v", err))

		return 1
	}

	// 5. Final Report
	// ---------------
	log.Info("✨ Export Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Run Report (session %s)\n", rep.RunID())
	fmt.Println("------------------------------------------------")
	fmt.Print(rep.Render())
	fmt.Println("------------------------------------------------")
	fmt.Printf("Users: %d (%d failed)\n", len(rep.Results()), rep.Failed())
	fmt.Printf("Units Written: %d\n", rep.TotalUnits())
	fmt.Printf("Corpus Words: %d\n", rep.TotalWords())
	fmt.Printf("Total Duration: %v\n", rep.Duration())
	fmt.Println("------------------------------------------------")

	if rep.HasFailures() {
		log.Warn(fmt.Sprintf("⚠️  %d user(s) failed, see report above", rep.Failed()))

		return 1
	}

	return 0
}

// loadConfig reads the YAML file at path. A missing file at the built-in
// default location falls back to the built-in defaults; a missing file the
// caller asked for is an error.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, os.ErrNotExist) && !configRequested() {
		return config.DefaultConfig(), nil
	}

	return nil, err
}

// configRequested reports whether the config path came from the flag or the
// environment rather than the hardcoded default.
func configRequested() bool {
	if os.Getenv("IGCORPUS_CONFIG") != "" {
		return true
	}

	requested := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			requested = true
		}
	})

	return requested
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}
