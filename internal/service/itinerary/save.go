package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

// ---------------------------------------------------------------------------
// Save
// ---------------------------------------------------------------------------

// Save persists a consistent snapshot of the active session. Unsaved
// documents are created and the assigned id is written back into the
// session; saved ones are updated in place. Saves of one session run one
// at a time.
func (s *Service) Save(ctx context.Context) (domain.Document, error) {
	userID, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}

	sess.saveMu.Lock()
	defer sess.saveMu.Unlock()

	snap := sess.Snapshot()
	if snap.TripImage == "" {
		snap.TripImage = planner.DestinationImage(snap.TripDetails.Destination.DisplayName())
	}
	snap.UserID = userID.String()

	var saved domain.Document
	if snap.ID == "" {
		saved, err = s.repo.Create(ctx, userID, snap)
		if err != nil {
			return domain.Document{}, repoError("create itinerary", err)
		}
		s.log.InfoContext(ctx, "itinerary created", slog.String("itinerary_id", saved.ID))
	} else {
		saved, err = s.repo.Update(ctx, userID, snap)
		if err != nil {
			return domain.Document{}, repoError("update itinerary", err)
		}
	}
	if saved.TripImage == "" {
		saved.TripImage = snap.TripImage
	}

	return sess.stamp(saved), nil
}

// ---------------------------------------------------------------------------
// Navigate
// ---------------------------------------------------------------------------

// Navigate records that the user left the editing context. The session is
// discarded unless continuation is set.
func (s *Service) Navigate(ctx context.Context, continuation bool) error {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return err
	}
	if continuation {
		return nil
	}
	if s.sessions.Remove(userID) {
		s.log.DebugContext(ctx, "session discarded on navigation")
	}
	return nil
}

// ---------------------------------------------------------------------------
// Share
// ---------------------------------------------------------------------------

// Share adds recipients to the sharing list. A private itinerary becomes
// shared unless another visibility is requested.
func (s *Service) Share(ctx context.Context, in ShareInput) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Document{}, err
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next := doc.Clone()
		for _, r := range in.Recipients {
			r = strings.ToLower(strings.TrimSpace(r))
			if !slices.Contains(next.SharedWith, r) {
				next.SharedWith = append(next.SharedWith, r)
			}
		}
		switch {
		case in.Visibility != "":
			next.Visibility = in.Visibility
		case next.Visibility == domain.VisibilityPrivate:
			next.Visibility = domain.VisibilityShared
		}
		return next, nil, nil
	})
}

// ---------------------------------------------------------------------------
// SetStatus
// ---------------------------------------------------------------------------

// SetStatus moves the active itinerary between draft, published and
// archived. Archived itineraries are eventually purged by the cleanup job.
func (s *Service) SetStatus(ctx context.Context, status domain.ItineraryStatus) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if !status.IsValid() {
		return domain.Document{}, domain.NewValidationError("status", "must be draft, published or archived")
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next := doc.Clone()
		next.Status = status
		return next, nil, nil
	})
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// Export writes a JSON snapshot of the active session to object storage.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	userID, sess, err := s.session(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	if s.snapshots == nil {
		return ExportResult{}, fmt.Errorf("export: %w", domain.ErrUnavailable)
	}

	snap := sess.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("marshal itinerary: %w", err)
	}

	name := snap.ID
	if name == "" {
		name = "draft"
	}
	key := fmt.Sprintf("itineraries/%s/%s-%s.json", userID, name, time.Now().UTC().Format("20060102T150405Z"))

	if err := s.snapshots.Put(ctx, key, data, "application/json"); err != nil {
		return ExportResult{}, domain.PersistenceError("export itinerary", err)
	}
	s.log.InfoContext(ctx, "itinerary exported", slog.String("key", key), slog.Int("size", len(data)))
	return ExportResult{Key: key, Size: len(data)}, nil
}
