package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/heartmarshall/tripplanner-backend/internal/adapter/mongodb"
	mongoitinerary "github.com/heartmarshall/tripplanner-backend/internal/adapter/mongodb/itinerary"
	"github.com/heartmarshall/tripplanner-backend/internal/adapter/postgres"
	pgitinerary "github.com/heartmarshall/tripplanner-backend/internal/adapter/postgres/itinerary"
	"github.com/heartmarshall/tripplanner-backend/internal/config"
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/rest"
)

// ItineraryStore is the persistence contract both storage drivers satisfy.
type ItineraryStore interface {
	Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	Update(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	Load(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ItinerarySummary, int, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
	PurgeArchived(ctx context.Context, before time.Time) (int64, error)
}

var (
	_ ItineraryStore = (*pgitinerary.Repo)(nil)
	_ ItineraryStore = (*mongoitinerary.Repo)(nil)
)

// Storage is an opened itinerary store together with its health check.
type Storage struct {
	Repo   ItineraryStore
	Health rest.Pinger
	// Tx runs fn atomically when the driver supports it. The mongo driver
	// runs fn directly.
	Tx    func(ctx context.Context, fn func(ctx context.Context) error) error
	Close func()
}

// OpenStorage connects to the store selected by cfg.Storage.Driver.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("connected to postgres", slog.Int("max_conns", int(cfg.Database.MaxConns)))
		return &Storage{
			Repo:   pgitinerary.New(pool),
			Health: pool,
			Tx:     postgres.NewTxManager(pool).RunInTx,
			Close:  pool.Close,
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		repo := mongoitinerary.New(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		logger.Info("connected to mongo",
			slog.String("database", cfg.Mongo.Database),
			slog.String("collection", cfg.Mongo.Collection),
		)
		return &Storage{
			Repo: repo,
			Health: rest.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx, readpref.Primary())
			}),
			Tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
				return fn(ctx)
			},
			Close: func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
