package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/seed"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

// ---------------------------------------------------------------------------
// StartTrip
// ---------------------------------------------------------------------------

// StartTrip opens a new session on an empty itinerary for the trip.
func (s *Service) StartTrip(ctx context.Context, in StartTripInput) (domain.Document, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := in.Validate(s.cfg.MaxTripDays); err != nil {
		return domain.Document{}, err
	}

	doc, err := planner.NewDocument(in.Trip(domain.GenerationManual))
	if err != nil {
		return domain.Document{}, fmt.Errorf("start trip: %w", err)
	}
	doc.UserID = userID.String()

	s.log.InfoContext(ctx, "trip started",
		slog.String("destination", doc.TripDetails.Destination.DisplayName()),
		slog.Int("days", len(doc.Days)),
	)
	return s.open(ctx, userID, doc), nil
}

// ---------------------------------------------------------------------------
// LoadSeed
// ---------------------------------------------------------------------------

// LoadSeed opens a session on an externally supplied document. The seed
// is normalized first and always starts unsaved.
func (s *Service) LoadSeed(ctx context.Context, raw []byte) (domain.Document, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return domain.Document{}, err
	}

	body, err := seed.ExtractJSON(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("load seed: %w", err)
	}
	doc, err := seed.Normalize(body, s.cfg.MaxTripDays)
	if err != nil {
		return domain.Document{}, fmt.Errorf("load seed: %w", err)
	}

	doc.ID = ""
	doc.UserID = userID.String()
	doc.CreatedAt, doc.UpdatedAt = time.Time{}, time.Time{}

	return s.open(ctx, userID, doc), nil
}

// ---------------------------------------------------------------------------
// Reinitialize
// ---------------------------------------------------------------------------

// Reinitialize changes the trip of the active session. Days still covered
// by the new range keep their items; map collaborators are told about
// every item that was dropped or moved to another day index.
func (s *Service) Reinitialize(ctx context.Context, in StartTripInput) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := in.Validate(s.cfg.MaxTripDays); err != nil {
		return domain.Document{}, err
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next, err := planner.Reinitialize(doc, in.Trip(doc.TripDetails.Mode))
		if err != nil {
			return domain.Document{}, nil, fmt.Errorf("reinitialize: %w", err)
		}
		return next, relocationEvents(doc, next), nil
	})
}

// relocationEvents removes every item of prev whose day was dropped or
// changed index, then re-adds the moved ones at their new index. Removals
// run last position first so each index is valid when applied in order.
func relocationEvents(prev, next domain.Document) []syncevent.Event {
	kept := make(map[domain.Date]int, len(next.Days))
	for i, d := range next.Days {
		kept[d.Date] = i
	}

	var removes, adds []syncevent.Event
	for d := len(prev.Days) - 1; d >= 0; d-- {
		day := prev.Days[d]
		newIdx, ok := kept[day.Date]
		if ok && newIdx == d {
			continue
		}
		for _, key := range domain.AllSections {
			items, _ := day.Sections.Get(key)
			for p := len(items) - 1; p >= 0; p-- {
				removes = append(removes, syncevent.Removed(d, key, p, items[p]))
			}
			if ok {
				for p, it := range items {
					adds = append(adds, syncevent.Added(newIdx, key, p, it))
				}
			}
		}
	}
	return append(removes, adds...)
}
