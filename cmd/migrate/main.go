// Command migrate applies the PostgreSQL schema migrations.
//
// Flags:
//
//	--dir   migrations directory (default: ./migrations)
//	--down  roll back the most recent migration instead of applying all
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/tripplanner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tripplanner-backend/internal/app"
	"github.com/heartmarshall/tripplanner-backend/internal/config"
)

func main() {
	dir := flag.String("dir", "./migrations", "migrations directory")
	down := flag.Bool("down", false, "roll back the most recent migration")
	flag.Parse()

	logger := app.NewLogger(config.LogConfig{Level: "info", Format: "text"})

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Error("load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		logger.Error("DATABASE_DSN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, dsn, os.DirFS(*dir), *down, logger); err != nil {
		logger.Error("migrate", slog.String("error", err.Error()))
		cancel()
		os.Exit(1)
	}
}
