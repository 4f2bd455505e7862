package itinerary

import (
	"fmt"
	"math"
	"strings"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// StartTripInput holds the planning form.
type StartTripInput struct {
	Destination domain.Destination
	StartDate   domain.Date
	EndDate     domain.Date
	Interests   []string
	Travelers   int
	Cuisines    []string
	Budget      domain.TripBudget
}

// Validate checks all fields and collects all errors. Date order is left
// to the day initializer, which reports ErrInvalidDateRange.
func (i *StartTripInput) Validate(maxDays int) error {
	var errs []domain.FieldError

	if i.Destination.DisplayName() == "" {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "required"})
	} else if len(i.Destination.DisplayName()) > 200 {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "too long (max 200)"})
	}
	if i.StartDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "start_date", Message: "required"})
	}
	if i.EndDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "end_date", Message: "required"})
	}
	if !i.StartDate.IsZero() && !i.EndDate.IsZero() && !i.EndDate.Before(i.StartDate) {
		if n := i.StartDate.DaysUntil(i.EndDate) + 1; n > maxDays {
			errs = append(errs, domain.FieldError{Field: "end_date", Message: fmt.Sprintf("trip too long (max %d days)", maxDays)})
		}
	}
	if i.Travelers < 0 || i.Travelers > 50 {
		errs = append(errs, domain.FieldError{Field: "travelers", Message: "must be between 1 and 50"})
	}
	if len(i.Interests) > 20 {
		errs = append(errs, domain.FieldError{Field: "interests", Message: "too many (max 20)"})
	}
	if len(i.Cuisines) > 20 {
		errs = append(errs, domain.FieldError{Field: "cuisines", Message: "too many (max 20)"})
	}
	if i.Budget.Total < 0 || math.IsNaN(i.Budget.Total) || math.IsInf(i.Budget.Total, 0) {
		errs = append(errs, domain.FieldError{Field: "budget.total", Message: "must be a non-negative number"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Trip converts the form into a trip with defaults applied.
func (i *StartTripInput) Trip(mode domain.GenerationMode) domain.Trip {
	trip := domain.Trip{
		Destination: i.Destination,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		Interests:   nonNil(i.Interests),
		Travelers:   i.Travelers,
		Cuisines:    nonNil(i.Cuisines),
		Budget:      i.Budget,
		Mode:        mode,
	}
	if trip.Travelers == 0 {
		trip.Travelers = 1
	}
	if trip.Budget.Currency == "" {
		trip.Budget.Currency = "USD"
	}
	return trip.Clone()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// AddItemInput holds the parameters for adding an item.
type AddItemInput struct {
	DayIndex int
	Section  string
	Item     domain.Item
}

// Validate checks the item fields. Index and section problems are
// structural and reported by the planner instead.
func (i *AddItemInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Item.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "item.title", Message: "required"})
	} else if len(title) > 300 {
		errs = append(errs, domain.FieldError{Field: "item.title", Message: "too long (max 300)"})
	}
	if len(i.Item.Description) > 5000 {
		errs = append(errs, domain.FieldError{Field: "item.description", Message: "too long (max 5000)"})
	}
	if i.Item.Price < 0 || math.IsNaN(i.Item.Price) || math.IsInf(i.Item.Price, 0) {
		errs = append(errs, domain.FieldError{Field: "item.price", Message: "must be a non-negative number"})
	}
	if i.Item.Rating < 0 || i.Item.Rating > 5 {
		errs = append(errs, domain.FieldError{Field: "item.rating", Message: "must be between 0 and 5"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RemoveItemInput addresses the item to remove.
type RemoveItemInput struct {
	DayIndex int
	Section  string
	Position int
}

// ReorderItemInput addresses a move within one section.
type ReorderItemInput struct {
	DayIndex int
	Section  string
	From     int
	To       int
}

// ShareInput lists the recipients to share the itinerary with.
type ShareInput struct {
	Recipients []string
	Visibility domain.Visibility
}

// Validate checks all fields and collects all errors.
func (i *ShareInput) Validate() error {
	var errs []domain.FieldError

	if len(i.Recipients) == 0 {
		errs = append(errs, domain.FieldError{Field: "recipients", Message: "required (at least 1)"})
	}
	if len(i.Recipients) > 50 {
		errs = append(errs, domain.FieldError{Field: "recipients", Message: "too many (max 50)"})
	}
	for idx, r := range i.Recipients {
		r = strings.TrimSpace(r)
		if r == "" || len(r) > 254 {
			errs = append(errs, domain.FieldError{Field: fmt.Sprintf("recipients[%d]", idx), Message: "invalid recipient"})
		}
	}
	if i.Visibility != "" && !i.Visibility.IsValid() {
		errs = append(errs, domain.FieldError{Field: "visibility", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput pages through saved itineraries.
type ListInput struct {
	Limit  int
	Offset int
}
