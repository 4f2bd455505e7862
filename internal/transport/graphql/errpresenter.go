package graphql

import (
	"context"
	"errors"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/pkg/ctxutil"
)

// NewErrorPresenter returns a gqlgen error presenter that maps domain errors
// to GraphQL error codes.
func NewErrorPresenter(log *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		// Parse and validation errors carry no cause and pass through as is.
		var parseErr *gqlerror.Error
		if errors.As(err, &parseErr) && parseErr.Unwrap() == nil {
			return gqlErr
		}

		code := "INTERNAL"
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			gqlErr.Extensions = map[string]any{"code": "VALIDATION", "fields": ve.Errors}
			return gqlErr
		case errors.Is(err, domain.ErrInvalidDateRange):
			code = "INVALID_DATE_RANGE"
		case errors.Is(err, domain.ErrIndexOutOfRange):
			code = "INDEX_OUT_OF_RANGE"
		case errors.Is(err, domain.ErrUnknownSection):
			code = "UNKNOWN_SECTION"
		case errors.Is(err, domain.ErrMalformedSeed):
			code = "MALFORMED_SEED"
		case errors.Is(err, domain.ErrNotFound):
			code = "NOT_FOUND"
		case errors.Is(err, domain.ErrValidation):
			code = "VALIDATION"
		case errors.Is(err, domain.ErrUnauthorized):
			code = "UNAUTHENTICATED"
		case errors.Is(err, domain.ErrForbidden):
			code = "FORBIDDEN"
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
			code = "CONFLICT"
		case errors.Is(err, domain.ErrUnavailable):
			code = "UNAVAILABLE"
		case errors.Is(err, domain.ErrRateLimited):
			code = "RATE_LIMITED"
		case errors.Is(err, domain.ErrPersistence):
			log.ErrorContext(ctx, "persistence failure",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "could not reach itinerary storage"
			code = "PERSISTENCE_FAILURE"
		default:
			// Unexpected error: log it, return a generic message to the client.
			log.ErrorContext(ctx, "unexpected GraphQL error",
				slog.String("error", err.Error()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
			gqlErr.Message = "internal error"
		}

		gqlErr.Extensions = map[string]any{"code": code}
		return gqlErr
	}
}
