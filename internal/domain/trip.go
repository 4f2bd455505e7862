package domain

import (
	"maps"
	"slices"
	"strings"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Destination is the place the trip goes to.
type Destination struct {
	Name        string       `json:"name"`
	Label       string       `json:"label,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// DisplayName returns Name, or Label when Name is empty.
func (d Destination) DisplayName() string {
	if n := strings.TrimSpace(d.Name); n != "" {
		return n
	}
	return strings.TrimSpace(d.Label)
}

// Default budget breakdown keys.
const (
	BudgetActivities    = "activities"
	BudgetAccommodation = "accommodation"
	BudgetDining        = "dining"
	BudgetTransport     = "transport"
)

// TripBudget is the traveler's overall budget.
type TripBudget struct {
	Currency  string             `json:"currency"`
	Total     float64            `json:"total"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// DefaultBreakdown returns a breakdown with every default key set to zero.
func DefaultBreakdown() map[string]float64 {
	return map[string]float64{
		BudgetActivities:    0,
		BudgetAccommodation: 0,
		BudgetDining:        0,
		BudgetTransport:     0,
	}
}

// Trip holds the parameters an itinerary is built from.
type Trip struct {
	Destination Destination    `json:"destination"`
	StartDate   Date           `json:"startDate"`
	EndDate     Date           `json:"endDate"`
	Interests   []string       `json:"interests"`
	Travelers   int            `json:"travelers"`
	Cuisines    []string       `json:"cuisines"`
	Budget      TripBudget     `json:"budget"`
	Mode        GenerationMode `json:"mode,omitempty"`
}

// Validate reports ErrInvalidDateRange for missing dates or end before start.
func (t Trip) Validate() error {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return ErrInvalidDateRange
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// DayCount is the inclusive number of days between start and end.
func (t Trip) DayCount() int {
	return t.StartDate.DaysUntil(t.EndDate) + 1
}

// Clone returns a deep copy.
func (t Trip) Clone() Trip {
	out := t
	if t.Destination.Coordinates != nil {
		c := *t.Destination.Coordinates
		out.Destination.Coordinates = &c
	}
	out.Interests = slices.Clone(t.Interests)
	out.Cuisines = slices.Clone(t.Cuisines)
	out.Budget.Breakdown = maps.Clone(t.Budget.Breakdown)
	return out
}
