package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/seed"
)

const defaultListLimit = 20

// ---------------------------------------------------------------------------
// LoadSaved
// ---------------------------------------------------------------------------

// LoadSaved opens a session on a stored itinerary. Stored documents always
// pass through the normalizer, whatever shape they were saved in.
func (s *Service) LoadSaved(ctx context.Context, id string) (domain.Document, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Document{}, domain.NewValidationError("id", "required")
	}

	stored, err := s.repo.Load(ctx, userID, id)
	if err != nil {
		return domain.Document{}, repoError("load itinerary", err)
	}

	doc, err := seed.Normalize(stored.Payload, s.cfg.MaxTripDays)
	if err != nil {
		s.log.ErrorContext(ctx, "stored itinerary is malformed",
			slog.String("itinerary_id", id),
			slog.String("error", err.Error()),
		)
		return domain.Document{}, fmt.Errorf("load itinerary %s: %w", id, err)
	}
	doc.ID = stored.ID
	doc.UserID = stored.UserID
	doc.CreatedAt = stored.CreatedAt
	doc.UpdatedAt = stored.UpdatedAt

	return s.open(ctx, userID, doc), nil
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// List pages through the caller's saved itineraries, newest first.
func (s *Service) List(ctx context.Context, in ListInput) (ListResult, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return ListResult{}, err
	}
	if in.Offset < 0 {
		return ListResult{}, domain.NewValidationError("offset", "must be >= 0")
	}

	limit := clampLimit(in.Limit, s.cfg.MaxListLimit, defaultListLimit)
	items, total, err := s.repo.List(ctx, userID, limit, in.Offset)
	if err != nil {
		return ListResult{}, repoError("list itineraries", err)
	}
	if items == nil {
		items = []domain.ItinerarySummary{}
	}
	return ListResult{Items: items, Total: total}, nil
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

// Delete removes a saved itinerary. An active session editing it is
// discarded as well.
func (s *Service) Delete(ctx context.Context, id string) error {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewValidationError("id", "required")
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return repoError("delete itinerary", err)
	}

	if sess, ok := s.sessions.Get(userID); ok && sess.Snapshot().ID == id {
		s.sessions.Remove(userID)
	}
	s.log.InfoContext(ctx, "itinerary deleted", slog.String("itinerary_id", id))
	return nil
}

// repoError keeps not-found misses distinct and reports everything else
// as a persistence failure.
func repoError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return domain.PersistenceError(op, err)
}
