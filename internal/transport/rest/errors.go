package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

// writeDomainError maps a service error to a status code and a stable
// machine-readable code. Unknown errors are logged and reported as 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Code: "validation", Fields: ve.Errors})
	case errors.Is(err, domain.ErrInvalidDateRange):
		writeError(w, http.StatusBadRequest, "invalid_date_range", err.Error())
	case errors.Is(err, domain.ErrIndexOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "index_out_of_range", err.Error())
	case errors.Is(err, domain.ErrUnknownSection):
		writeError(w, http.StatusBadRequest, "unknown_section", err.Error())
	case errors.Is(err, domain.ErrMalformedSeed):
		writeError(w, http.StatusUnprocessableEntity, "malformed_seed", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "unavailable", "feature is not configured")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
	case errors.Is(err, domain.ErrPersistence):
		log.ErrorContext(r.Context(), "persistence failure", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "persistence_failure", "could not reach itinerary storage")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
