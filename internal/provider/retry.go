package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrEmptyResponse is returned when a model answers without any text.
var ErrEmptyResponse = errors.New("empty model response")

// RetryPolicy controls how often a generation call is attempted.
type RetryPolicy struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultBaseDelay is the wait before the second attempt. It doubles for
// every further attempt.
const DefaultBaseDelay = 300 * time.Millisecond

// Do runs fn until it succeeds, the attempts run out or ctx is done.
// The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, log *slog.Logger, op string, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	attempts := max(p.Attempts, 1)
	delay := p.BaseDelay
	if delay <= 0 {
		delay = DefaultBaseDelay
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			log.WarnContext(ctx, op+" retry",
				slog.Int("attempt", attempt+1),
				slog.String("reason", lastErr.Error()),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%s: %w (last error: %v)", op, ctx.Err(), lastErr)
			case <-time.After(delay << (attempt - 1)):
			}
		}

		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s: %w (last error: %v)", op, ctx.Err(), lastErr)
		}
	}
	return nil, fmt.Errorf("%s: %w", op, lastErr)
}
