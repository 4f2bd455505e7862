// Package planner implements the itinerary day initializer and mutation
// engine. Every function is pure: inputs are never modified and the
// returned document shares no memory with them.
package planner

import (
	"fmt"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// InitializeDays builds one empty day per calendar date in the trip's
// inclusive range. Day i is dated start+i and numbered i+1.
func InitializeDays(trip domain.Trip) ([]domain.Day, error) {
	if err := trip.Validate(); err != nil {
		return nil, fmt.Errorf("initialize days %s..%s: %w", trip.StartDate, trip.EndDate, err)
	}

	n := trip.DayCount()
	days := make([]domain.Day, n)
	for i := range days {
		days[i] = domain.Day{
			Date:      trip.StartDate.AddDays(i),
			DayNumber: i + 1,
			Sections:  domain.EmptySections(),
		}
	}
	return days, nil
}

// NewDocument creates the initial draft itinerary for a trip.
func NewDocument(trip domain.Trip) (domain.Document, error) {
	days, err := InitializeDays(trip)
	if err != nil {
		return domain.Document{}, err
	}

	trip = trip.Clone()
	if !trip.Mode.IsValid() {
		trip.Mode = domain.GenerationManual
	}
	if trip.Budget.Breakdown == nil {
		trip.Budget.Breakdown = domain.DefaultBreakdown()
	}

	name := trip.Destination.DisplayName()
	return domain.Document{
		Title:       name,
		TripImage:   DestinationImage(name),
		Status:      domain.StatusDraft,
		Visibility:  domain.VisibilityPrivate,
		TripDetails: trip,
		Days:        days,
		SharedWith:  []string{},
		Metadata: domain.Metadata{
			Tags:     []string{},
			Language: "en",
			Version:  1,
		},
		GeneratedBy: trip.Mode,
	}, nil
}

// Reinitialize rebuilds the day list for a new date range. Days whose date
// is still covered keep their sections and budget; the rest start empty.
// This is the only operation that changes the number of days.
func Reinitialize(doc domain.Document, trip domain.Trip) (domain.Document, error) {
	days, err := InitializeDays(trip)
	if err != nil {
		return domain.Document{}, err
	}

	byDate := make(map[domain.Date]domain.Day, len(doc.Days))
	for _, d := range doc.Days {
		byDate[d.Date] = d
	}

	for i := range days {
		if old, ok := byDate[days[i].Date]; ok {
			old = old.Clone()
			days[i].Sections = old.Sections
			days[i].Budget = old.Budget
		}
	}

	out := doc.Clone()
	out.TripDetails = trip.Clone()
	if out.TripDetails.Budget.Breakdown == nil {
		out.TripDetails.Budget.Breakdown = domain.DefaultBreakdown()
	}
	out.Days = days
	return out, nil
}

// Rebase moves a document onto a new date range by position: day i of the
// result takes the sections and actual spend of day i of doc. Days beyond
// the old list start empty and surplus old days are dropped.
func Rebase(doc domain.Document, trip domain.Trip) (domain.Document, error) {
	days, err := InitializeDays(trip)
	if err != nil {
		return domain.Document{}, err
	}

	for i := range days {
		if i >= len(doc.Days) {
			break
		}
		old := doc.Days[i].Clone()
		days[i].Sections = old.Sections
		days[i].Budget.Actual = old.Budget.Actual
	}

	out := doc.Clone()
	out.TripDetails = trip.Clone()
	if out.TripDetails.Budget.Breakdown == nil {
		out.TripDetails.Budget.Breakdown = domain.DefaultBreakdown()
	}
	out.Days = days
	return RecomputeAll(out), nil
}
