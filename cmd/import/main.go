// Command import bulk-loads itinerary documents from *.json files into the
// configured store for one user. Files may be raw model output; each one is
// normalized the same way the API normalizes seeds.
//
// Flags:
//
//	--import-config  path to import config YAML (optional; falls back to env)
//	--dry-run        validate files without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/tripplanner-backend/internal/app"
	"github.com/heartmarshall/tripplanner-backend/internal/app/importer"
	"github.com/heartmarshall/tripplanner-backend/internal/config"
)

func main() {
	importConfigPath := flag.String("import-config", "", "path to import config YAML")
	dryRun := flag.Bool("dry-run", false, "validate files without writing")
	flag.Parse()

	_ = godotenv.Load()

	// Load app config (for storage and logging).
	appCfg, err := config.Load()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	importCfg, err := importer.LoadConfig(*importConfigPath)
	if err != nil {
		logger.Error("load import config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *dryRun {
		importCfg.DryRun = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	store, err := app.OpenStorage(ctx, appCfg, logger)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	res, err := importer.Run(ctx, importCfg, store.Repo, store.Tx, logger)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if res.Errors > 0 {
		logger.Warn("import completed with errors", slog.Int("errors", res.Errors))
		os.Exit(1)
	}
}
