package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/tripplanner-backend/internal/adapter/objectstore"
	"github.com/heartmarshall/tripplanner-backend/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/tripplanner-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/tripplanner-backend/internal/adapter/provider/places"
	"github.com/heartmarshall/tripplanner-backend/internal/auth"
	"github.com/heartmarshall/tripplanner-backend/internal/config"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/middleware"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects the
// itinerary store and the optional collaborators, and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("storage", cfg.Storage.Driver),
	)

	// Storage
	store, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	checks := map[string]rest.Pinger{"storage": store.Health}

	// Sync events
	bus := syncevent.NewBus()
	bus.Subscribe(logEvents(logger))
	publisher := syncevent.Multi(bus)
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		publisher = syncevent.Multi(bus, syncevent.NewRedisPublisher(rdb, cfg.Redis.Channel))
		checks["redis"] = rest.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		logger.Info("publishing sync events to redis", slog.String("channel", cfg.Redis.Channel))
	}

	// Service
	svc, err := itinerary.NewService(logger, store.Repo, publisher, cfg.Planner)
	if err != nil {
		return fmt.Errorf("create itinerary service: %w", err)
	}
	if err := wireCollaborators(ctx, cfg, logger, svc); err != nil {
		return err
	}

	// HTTP
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	handler := NewRouter(RouterDeps{
		Logger:    logger,
		Config:    cfg,
		Service:   svc,
		Validator: jwtManager,
		Limiter:   limiter,
		Health:    rest.NewHealthHandler(Version, checks),
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("stopped")
	return nil
}

// wireCollaborators injects the optional generator, place lookup and
// export store. Each is skipped when it has no credentials configured.
func wireCollaborators(ctx context.Context, cfg *config.Config, logger *slog.Logger, svc *itinerary.Service) error {
	switch cfg.Generator.Provider {
	case config.ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			logger.Warn("gemini api key not set, AI generation disabled")
			break
		}
		g, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:          cfg.Gemini.APIKey,
			Model:           cfg.Gemini.Model,
			Temperature:     cfg.Gemini.Temperature,
			TopP:            cfg.Gemini.TopP,
			TopK:            cfg.Gemini.TopK,
			MaxOutputTokens: cfg.Gemini.MaxOutputTokens,
			Timeout:         cfg.Gemini.Timeout,
			MaxRetries:      cfg.Generator.MaxRetries,
		}, logger)
		if err != nil {
			return fmt.Errorf("create gemini generator: %w", err)
		}
		svc.SetGenerator(g)
	case config.ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" {
			logger.Warn("anthropic api key not set, AI generation disabled")
			break
		}
		g, err := anthropic.NewGenerator(anthropic.Config{
			APIKey:     cfg.Anthropic.APIKey,
			BaseURL:    cfg.Anthropic.BaseURL,
			Model:      cfg.Anthropic.Model,
			MaxTokens:  cfg.Anthropic.MaxTokens,
			Timeout:    cfg.Anthropic.Timeout,
			MaxRetries: cfg.Generator.MaxRetries,
		}, logger)
		if err != nil {
			return fmt.Errorf("create anthropic generator: %w", err)
		}
		svc.SetGenerator(g)
	}

	if cfg.Places.APIKey != "" {
		p, err := places.NewProvider(places.Config{
			APIKey:    cfg.Places.APIKey,
			BaseURL:   cfg.Places.BaseURL,
			CacheSize: cfg.Places.CacheSize,
			Timeout:   cfg.Places.Timeout,
		}, logger)
		if err != nil {
			return fmt.Errorf("create places provider: %w", err)
		}
		svc.SetPlaces(p)
	} else {
		logger.Info("places api key not set, using stock images")
	}

	if cfg.S3.Enabled() {
		st, err := objectstore.New(objectstore.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			UseSSL:    cfg.S3.UseSSL,
		}, logger)
		if err != nil {
			return fmt.Errorf("create object store: %w", err)
		}
		svc.SetSnapshots(st)
	}
	return nil
}

// logEvents records every applied mutation at debug level.
func logEvents(logger *slog.Logger) syncevent.Handler {
	log := logger.With("component", "sync_events")
	return func(ctx context.Context, e syncevent.Event) error {
		log.DebugContext(ctx, "itinerary mutation",
			slog.String("operation", string(e.Operation)),
			slog.Int("day", e.DayIndex),
			slog.String("section", string(e.Section)),
		)
		return nil
	}
}
