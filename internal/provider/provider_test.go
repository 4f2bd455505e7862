package provider

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestItineraryPrompt(t *testing.T) {
	t.Parallel()

	trip := domain.Trip{
		Destination: domain.Destination{Label: "Kyoto, Japan"},
		StartDate:   domain.NewDate(2025, time.April, 1),
		EndDate:     domain.NewDate(2025, time.April, 4),
		Travelers:   2,
		Cuisines:    []string{"kaiseki", "ramen"},
		Budget:      domain.TripBudget{Currency: "JPY", Total: 250000},
	}

	got := ItineraryPrompt(trip)

	for _, want := range []string{
		"Location: Kyoto, Japan",
		"Duration: 4 days",
		"Travelers: 2",
		"Budget: 250000 JPY",
		"Interests: general sightseeing",
		"Cuisines: kaiseki, ramen",
		"StartDate: 2025-04-01",
		"EndDate: 2025-04-04",
		`"restaurants": [ITEM]`,
	} {
		assert.Contains(t, got, want)
	}
}

func TestItineraryPrompt_Defaults(t *testing.T) {
	t.Parallel()

	got := ItineraryPrompt(domain.Trip{
		Destination: domain.Destination{Name: "Lima"},
		StartDate:   domain.NewDate(2025, time.May, 1),
		EndDate:     domain.NewDate(2025, time.May, 1),
		Travelers:   1,
	})
	assert.Contains(t, got, "Budget: flexible")
	assert.Contains(t, got, "Cuisines: any")
	assert.Contains(t, got, "Duration: 1 days")
}

func TestRetryPolicy_SucceedsAfterFailures(t *testing.T) {
	t.Parallel()

	calls := 0
	p := RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond}
	out, err := p.Do(context.Background(), newTestLogger(), "generate", func(context.Context) ([]byte, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("overloaded")
		}
		return []byte("{}"), nil
	})

	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
	assert.Equal(t, 3, calls)
}

func TestRetryPolicy_ReturnsLastError(t *testing.T) {
	t.Parallel()

	calls := 0
	p := RetryPolicy{Attempts: 2, BaseDelay: time.Millisecond}
	_, err := p.Do(context.Background(), newTestLogger(), "generate", func(context.Context) ([]byte, error) {
		calls++
		return nil, ErrEmptyResponse
	})

	assert.ErrorIs(t, err, ErrEmptyResponse)
	assert.True(t, strings.HasPrefix(err.Error(), "generate:"))
	assert.Equal(t, 2, calls)
}

func TestRetryPolicy_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := RetryPolicy{Attempts: 5, BaseDelay: time.Hour}
	_, err := p.Do(ctx, newTestLogger(), "generate", func(context.Context) ([]byte, error) {
		calls++
		cancel()
		return nil, errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
