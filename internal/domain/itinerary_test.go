package domain

import (
	"errors"
	"testing"
)

func sampleDocument() Document {
	start := mustDate("2025-06-01")
	return Document{
		Title:  "Paris",
		Status: StatusDraft,
		TripDetails: Trip{
			Destination: Destination{Name: "Paris", Coordinates: &Coordinates{Lat: 48.85, Lng: 2.35}},
			StartDate:   start,
			EndDate:     start.AddDays(1),
			Interests:   []string{"art"},
			Budget:      TripBudget{Currency: "EUR", Breakdown: DefaultBreakdown()},
		},
		Days: []Day{
			{
				Date:      start,
				DayNumber: 1,
				Sections: Sections{
					Activities: []Item{{
						Title:    "Louvre",
						Price:    22,
						Photos:   []Photo{{URL: "https://example.com/louvre.jpg"}},
						Location: Location{Coordinates: &Coordinates{Lat: 48.86, Lng: 2.33}},
					}},
					Hotels:      []Item{},
					Restaurants: []Item{},
				},
			},
			{Date: start.AddDays(1), DayNumber: 2, Sections: EmptySections()},
		},
		SharedWith: []string{"a@example.com"},
		Metadata:   Metadata{Language: "en", Version: 1, Tags: []string{"city"}},
	}
}

func TestDocument_Clone_IsDeep(t *testing.T) {
	t.Parallel()

	orig := sampleDocument()
	cp := orig.Clone()

	cp.Days[0].Sections.Activities[0].Title = "changed"
	cp.Days[0].Sections.Activities[0].Photos[0].URL = "changed"
	cp.Days[0].Sections.Activities[0].Location.Coordinates.Lat = 0
	cp.Days[0].Sections.Activities = append(cp.Days[0].Sections.Activities, Item{Title: "extra"})
	cp.TripDetails.Destination.Coordinates.Lat = 0
	cp.TripDetails.Interests[0] = "changed"
	cp.TripDetails.Budget.Breakdown[BudgetDining] = 99
	cp.SharedWith[0] = "changed"
	cp.Metadata.Tags[0] = "changed"

	a := orig.Days[0].Sections.Activities
	if len(a) != 1 || a[0].Title != "Louvre" || a[0].Photos[0].URL != "https://example.com/louvre.jpg" {
		t.Errorf("items leaked through clone: %+v", a)
	}
	if a[0].Location.Coordinates.Lat != 48.86 {
		t.Error("item coordinates leaked through clone")
	}
	if orig.TripDetails.Destination.Coordinates.Lat != 48.85 {
		t.Error("destination coordinates leaked through clone")
	}
	if orig.TripDetails.Interests[0] != "art" || orig.TripDetails.Budget.Breakdown[BudgetDining] != 0 {
		t.Error("trip slices or maps leaked through clone")
	}
	if orig.SharedWith[0] != "a@example.com" || orig.Metadata.Tags[0] != "city" {
		t.Error("document slices leaked through clone")
	}
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	if err := sampleDocument().Validate(); err != nil {
		t.Fatalf("valid document rejected: %v", err)
	}

	bad := sampleDocument()
	bad.Days[1].DayNumber = 5
	bad.Days[1].Date = bad.Days[1].Date.AddDays(3)
	bad.Days[1].Sections.Hotels = nil

	err := bad.Validate()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) != 3 {
		t.Fatalf("expected 3 field errors, got %v", err)
	}
}

func TestTrip_ValidateAndDayCount(t *testing.T) {
	t.Parallel()

	trip := Trip{StartDate: mustDate("2025-06-01"), EndDate: mustDate("2025-06-03")}
	if err := trip.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.DayCount() != 3 {
		t.Errorf("DayCount = %d, want 3", trip.DayCount())
	}

	trip.EndDate = mustDate("2025-05-31")
	if !errors.Is(trip.Validate(), ErrInvalidDateRange) {
		t.Error("end before start should be ErrInvalidDateRange")
	}

	if !errors.Is(Trip{}.Validate(), ErrInvalidDateRange) {
		t.Error("missing dates should be ErrInvalidDateRange")
	}
}

func TestSections_GetSet(t *testing.T) {
	t.Parallel()

	s := EmptySections()
	if err := s.Set(SectionHotels, []Item{{Title: "Ritz"}}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(SectionHotels)
	if err != nil || len(got) != 1 || got[0].Title != "Ritz" {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	if err := s.Set(SectionRestaurants, nil); err != nil || s.Restaurants == nil {
		t.Error("Set(nil) should store an empty, non-nil list")
	}

	if _, err := s.Get("flights"); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
	if err := s.Set("flights", nil); !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestDestination_DisplayName(t *testing.T) {
	t.Parallel()

	if got := (Destination{Name: " Tokyo "}).DisplayName(); got != "Tokyo" {
		t.Errorf("got %q", got)
	}
	if got := (Destination{Label: "Tokyo, Japan"}).DisplayName(); got != "Tokyo, Japan" {
		t.Errorf("got %q", got)
	}
}
