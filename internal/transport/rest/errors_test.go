package rest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func TestWriteDomainError(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.NewValidationError("title", "required"), http.StatusBadRequest, "validation"},
		{"range", &domain.RangeError{What: "day", Index: 4, Len: 2}, http.StatusUnprocessableEntity, "index_out_of_range"},
		{"not found", fmt.Errorf("itinerary x: %w", domain.ErrNotFound), http.StatusNotFound, "not_found"},
		{"rate limited", fmt.Errorf("generate: %w", domain.ErrRateLimited), http.StatusTooManyRequests, "rate_limited"},
		{"unavailable", domain.ErrUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{"persistence", domain.PersistenceError("save", errors.New("dial tcp")), http.StatusBadGateway, "persistence_failure"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/itinerary", nil)

			writeDomainError(rec, req, logger, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeBody[errorResponse](t, rec).Code)
		})
	}
}
