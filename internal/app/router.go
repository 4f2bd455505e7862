package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/tripplanner-backend/internal/config"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/graphql"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/middleware"
	"github.com/heartmarshall/tripplanner-backend/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps carries everything NewRouter mounts.
type RouterDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Service   *itinerary.Service
	Validator tokenValidator
	Limiter   *middleware.RateLimiter
	Health    *rest.HealthHandler
}

// NewRouter builds the HTTP handler: health checks plus the itinerary API,
// served as REST and as GraphQL behind the shared middleware chain.
func NewRouter(d RouterDeps) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)

	limitGenerate := d.Limiter.Limit(d.Config.RateLimit.GeneratePerMinute, d.Config.RateLimit.Burst)
	rest.NewItineraryHandler(d.Service, d.Logger).Register(mux, limitGenerate)

	allowGenerate := d.Limiter.Allow(d.Config.RateLimit.GeneratePerMinute, d.Config.RateLimit.Burst)
	mux.Handle("POST /graphql", graphql.NewHandler(graphql.NewResolver(d.Service, allowGenerate, d.Logger), d.Logger))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID,
		middleware.Logger(d.Logger),
		middleware.CORS(d.Config.CORS),
		middleware.Auth(d.Validator),
	)(mux)
}
