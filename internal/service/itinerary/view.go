package itinerary

import (
	"context"
	"fmt"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
)

// SessionState is the active document together with its selection and
// the trip-wide budget.
type SessionState struct {
	Document domain.Document `json:"itinerary"`
	View     ViewState       `json:"view"`
	Budget   BudgetSummary   `json:"budget"`
}

// BudgetSummary compares the planned spend of all days with the trip
// budget.
type BudgetSummary struct {
	Currency  string  `json:"currency"`
	Total     float64 `json:"total"`
	Planned   float64 `json:"planned"`
	Remaining float64 `json:"remaining"`
}

func summarize(doc domain.Document) BudgetSummary {
	planned := planner.TotalPlanned(doc)
	return BudgetSummary{
		Currency:  doc.TripDetails.Budget.Currency,
		Total:     doc.TripDetails.Budget.Total,
		Planned:   planned,
		Remaining: doc.TripDetails.Budget.Total - planned,
	}
}

// Current returns a consistent snapshot of the active session.
func (s *Service) Current(ctx context.Context) (SessionState, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return SessionState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	doc := sess.doc.Clone()
	return SessionState{Document: doc, View: sess.view, Budget: summarize(doc)}, nil
}

// View returns the selection of the active session.
func (s *Service) View(ctx context.Context) (ViewState, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return ViewState{}, err
	}
	return sess.View(), nil
}

// SelectDay makes dayIndex the day new items are added to.
func (s *Service) SelectDay(ctx context.Context, dayIndex int) (ViewState, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return ViewState{}, err
	}
	return sess.setView(func(v ViewState, days int) (ViewState, error) {
		if dayIndex < 0 || dayIndex >= days {
			return ViewState{}, fmt.Errorf("select day: %w", &domain.RangeError{What: "day index", Index: dayIndex, Len: days})
		}
		v.SelectedDay = dayIndex
		return v, nil
	})
}

// ToggleExpanded expands dayIndex, or collapses it if it already is.
// At most one day is expanded.
func (s *Service) ToggleExpanded(ctx context.Context, dayIndex int) (ViewState, error) {
	_, sess, err := s.session(ctx)
	if err != nil {
		return ViewState{}, err
	}
	return sess.setView(func(v ViewState, days int) (ViewState, error) {
		if dayIndex < 0 || dayIndex >= days {
			return ViewState{}, fmt.Errorf("toggle day: %w", &domain.RangeError{What: "day index", Index: dayIndex, Len: days})
		}
		if v.ExpandedDay == dayIndex {
			v.ExpandedDay = NoDay
		} else {
			v.ExpandedDay = dayIndex
		}
		return v, nil
	})
}
