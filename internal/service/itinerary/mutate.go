package itinerary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

// ---------------------------------------------------------------------------
// AddItem
// ---------------------------------------------------------------------------

// AddItem appends an item to a day section and recomputes that day's
// planned budget. Items without an id get a fresh one.
func (s *Service) AddItem(ctx context.Context, in AddItemInput) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Document{}, err
	}
	key, err := domain.ParseSectionKey(in.Section)
	if err != nil {
		return domain.Document{}, fmt.Errorf("add item: %w", err)
	}

	item := in.Item
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next, err := planner.AddItem(doc, in.DayIndex, item, key)
		if err != nil {
			return domain.Document{}, nil, err
		}
		if next, err = planner.RecomputeBudget(next, in.DayIndex); err != nil {
			return domain.Document{}, nil, err
		}
		items, _ := next.Days[in.DayIndex].Sections.Get(key)
		pos := len(items) - 1
		return next, []syncevent.Event{syncevent.Added(in.DayIndex, key, pos, items[pos])}, nil
	})
}

// ---------------------------------------------------------------------------
// RemoveItem
// ---------------------------------------------------------------------------

// RemoveItem deletes the item at a position and recomputes the day's
// planned budget. The Remove event carries the deleted item.
func (s *Service) RemoveItem(ctx context.Context, in RemoveItemInput) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	key, err := domain.ParseSectionKey(in.Section)
	if err != nil {
		return domain.Document{}, fmt.Errorf("remove item: %w", err)
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		return removeAt(doc, planner.Position{DayIndex: in.DayIndex, Section: key, Index: in.Position})
	})
}

// RemoveItemByID deletes the item carrying id, wherever it currently sits.
func (s *Service) RemoveItemByID(ctx context.Context, id string) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Document{}, domain.NewValidationError("id", "required")
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		pos, ok := planner.LocateItem(doc, id)
		if !ok {
			return domain.Document{}, nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return removeAt(doc, pos)
	})
}

func removeAt(doc domain.Document, pos planner.Position) (domain.Document, []syncevent.Event, error) {
	next, removed, err := planner.RemoveItem(doc, pos.DayIndex, pos.Section, pos.Index)
	if err != nil {
		return domain.Document{}, nil, err
	}
	if next, err = planner.RecomputeBudget(next, pos.DayIndex); err != nil {
		return domain.Document{}, nil, err
	}
	return next, []syncevent.Event{syncevent.Removed(pos.DayIndex, pos.Section, pos.Index, removed)}, nil
}

// ---------------------------------------------------------------------------
// ReorderItem
// ---------------------------------------------------------------------------

// ReorderItem moves an item within its section. Budgets are unaffected.
func (s *Service) ReorderItem(ctx context.Context, in ReorderItemInput) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	key, err := domain.ParseSectionKey(in.Section)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reorder item: %w", err)
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next, err := planner.ReorderItem(doc, in.DayIndex, key, in.From, in.To)
		if err != nil {
			return domain.Document{}, nil, err
		}
		if in.From == in.To {
			return next, nil, nil
		}
		return next, []syncevent.Event{syncevent.Reordered(in.DayIndex, key, in.From, in.To)}, nil
	})
}

// ---------------------------------------------------------------------------
// RecomputeBudget
// ---------------------------------------------------------------------------

// RecomputeBudget recomputes the planned budget of one day.
func (s *Service) RecomputeBudget(ctx context.Context, dayIndex int) (domain.Document, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return domain.Document{}, err
	}

	return sess.apply(ctx, s.events, s.log, func(doc domain.Document) (domain.Document, []syncevent.Event, error) {
		next, err := planner.RecomputeBudget(doc, dayIndex)
		return next, nil, err
	})
}
