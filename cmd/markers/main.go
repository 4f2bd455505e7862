// Command markers follows the itinerary sync channel on Redis and mirrors
// each user's map markers in memory, logging the marker count after every
// event. It is a reference consumer for map clients and a way to watch the
// event stream while debugging.
//
// Requires REDIS_ADDR. Exit codes: 0 = interrupted, 1 = error.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/tripplanner-backend/internal/app"
	"github.com/heartmarshall/tripplanner-backend/internal/config"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log)

	if !cfg.Redis.Enabled() {
		logger.Error("REDIS_ADDR is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	mirror := syncevent.NewMirror()
	handle := func(ctx context.Context, e syncevent.Event) error {
		if err := mirror.Handle(ctx, e); err != nil {
			return err
		}
		markers := 0
		if set := mirror.Set(e.UserID); set != nil {
			markers = set.Len()
		}
		logger.InfoContext(ctx, "markers updated",
			slog.String("user_id", e.UserID),
			slog.String("operation", string(e.Operation)),
			slog.Int("day", e.DayIndex),
			slog.String("section", string(e.Section)),
			slog.Int("markers", markers),
		)
		return nil
	}

	if err := syncevent.NewSubscriber(rdb, cfg.Redis.Channel, logger).Run(ctx, handle); err != nil {
		logger.Error("subscriber stopped", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
	logger.Info("stopped", slog.Int("users", mirror.Users()))
}
