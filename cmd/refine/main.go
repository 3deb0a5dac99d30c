package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dvloznov/netflix-refiner/internal/config"
	"github.com/dvloznov/netflix-refiner/internal/crypt"
	"github.com/dvloznov/netflix-refiner/internal/infra/sqlite"
	"github.com/dvloznov/netflix-refiner/internal/ipfs"
	"github.com/dvloznov/netflix-refiner/internal/logger"
	"github.com/dvloznov/netflix-refiner/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	cfg, loadedEnvFile := config.Load()
	if loadedEnvFile {
		log.Info().Msg("loaded .env file")
	} else {
		log.Info().Msg("no .env file found, using environment variables")
	}

	// Create context with timeout so a stuck upload doesn't hang the run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	store, err := sqlite.Open(cfg.DatabasePath(), cfg.ResetDataset)
	if err != nil {
		log.Fatal().Err(err).Msg("opening datastore")
	}

	refiner := pipeline.NewRefiner(
		cfg,
		store,
		crypt.NewService(),
		ipfs.NewClient(cfg.PinataAPIKey, cfg.PinataAPISecret),
	)

	out, err := refiner.Refine(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("refinement failed")
	}

	// Write the run result next to the refined database.
	outPath := filepath.Join(cfg.OutputDir, "output.json")
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("serializing run result")
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatal().Err(err).Msg("writing run result")
	}

	log.Info().
		Str("refinement_url", out.RefinementURL).
		Str("output", outPath).
		Msg("refinement completed successfully")
}
