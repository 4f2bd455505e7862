package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Document is a complete, editable itinerary.
type Document struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId,omitempty"`
	Title       string          `json:"title"`
	TripImage   string          `json:"tripImg"`
	Status      ItineraryStatus `json:"status"`
	Visibility  Visibility      `json:"visibility"`
	TripDetails Trip            `json:"tripDetails"`
	Days        []Day           `json:"days"`
	SharedWith  []string        `json:"sharedWith"`
	Metadata    Metadata        `json:"metadata"`
	GeneratedBy GenerationMode  `json:"generatedBy"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
	UpdatedAt   time.Time       `json:"updatedAt,omitzero"`
}

// Metadata is bookkeeping carried alongside the document.
type Metadata struct {
	Tags       []string `json:"tags"`
	IsTemplate bool     `json:"isTemplate"`
	Language   string   `json:"language"`
	Version    int      `json:"version"`
}

// Day is one calendar day of the trip.
type Day struct {
	Date      Date      `json:"date"`
	DayNumber int       `json:"dayNumber"`
	Budget    DayBudget `json:"budget"`
	Sections  Sections  `json:"sections"`
}

// DayBudget holds the planned (derived from item prices) and actual spend.
type DayBudget struct {
	Planned float64 `json:"planned"`
	Actual  float64 `json:"actual"`
}

// Sections groups a day's items by kind. Slices are never nil in a
// well-formed document.
type Sections struct {
	Activities  []Item `json:"activities"`
	Hotels      []Item `json:"hotels"`
	Restaurants []Item `json:"restaurants"`
}

// EmptySections returns sections with all three lists present and empty.
func EmptySections() Sections {
	return Sections{Activities: []Item{}, Hotels: []Item{}, Restaurants: []Item{}}
}

func (s *Sections) slot(key SectionKey) (*[]Item, error) {
	switch key {
	case SectionActivities:
		return &s.Activities, nil
	case SectionHotels:
		return &s.Hotels, nil
	case SectionRestaurants:
		return &s.Restaurants, nil
	}
	return nil, fmt.Errorf("%q: %w", key, ErrUnknownSection)
}

// Get returns the items of a section.
func (s *Sections) Get(key SectionKey) ([]Item, error) {
	p, err := s.slot(key)
	if err != nil {
		return nil, err
	}
	return *p, nil
}

// Set replaces the items of a section.
func (s *Sections) Set(key SectionKey, items []Item) error {
	p, err := s.slot(key)
	if err != nil {
		return err
	}
	if items == nil {
		items = []Item{}
	}
	*p = items
	return nil
}

// Len returns the total number of items across all sections.
func (s Sections) Len() int {
	return len(s.Activities) + len(s.Hotels) + len(s.Restaurants)
}

// Item is a single activity, hotel or restaurant entry.
type Item struct {
	ID               string         `json:"id,omitempty"`
	Type             ItemType       `json:"type"`
	Title            string         `json:"title"`
	Description      string         `json:"description,omitempty"`
	Location         Location       `json:"location"`
	StartTime        string         `json:"startTime,omitempty"`
	EndTime          string         `json:"endTime,omitempty"`
	Duration         string         `json:"duration,omitempty"`
	Price            float64        `json:"price"`
	PriceLevel       string         `json:"priceLevel,omitempty"`
	Rating           float64        `json:"rating,omitempty"`
	UserRatingsTotal int            `json:"userRatingsTotal,omitempty"`
	Photos           []Photo        `json:"photos"`
	Contact          Contact        `json:"contact"`
	OperatingHours   OperatingHours `json:"operatingHours"`
	BookingInfo      string         `json:"bookingInfo,omitempty"`
	Cuisine          string         `json:"cuisine,omitempty"`
}

// Location describes where an item is.
type Location struct {
	Name        string       `json:"name,omitempty"`
	Address     string       `json:"address,omitempty"`
	PlaceID     string       `json:"placeId,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Photo is an image attached to an item.
type Photo struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Contact holds reachability links for an item.
type Contact struct {
	GoogleMapsURL string `json:"googleMapsUrl,omitempty"`
	Website       string `json:"website,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

// OperatingHours lists when a place is open.
type OperatingHours struct {
	IsOpen  bool     `json:"isOpen"`
	Periods []Period `json:"periods"`
}

// Period is one opening window, e.g. {"Monday", "9:00 AM – 5:00 PM"}.
type Period struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	out := it
	if it.Location.Coordinates != nil {
		c := *it.Location.Coordinates
		out.Location.Coordinates = &c
	}
	out.Photos = slices.Clone(it.Photos)
	out.OperatingHours.Periods = slices.Clone(it.OperatingHours.Periods)
	return out
}

// Clone returns a deep copy of the day.
func (d Day) Clone() Day {
	out := d
	out.Sections = Sections{
		Activities:  cloneItems(d.Sections.Activities),
		Hotels:      cloneItems(d.Sections.Hotels),
		Restaurants: cloneItems(d.Sections.Restaurants),
	}
	return out
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Clone returns a deep copy of the document. Mutations never share
// backing arrays with their input.
func (d Document) Clone() Document {
	out := d
	out.TripDetails = d.TripDetails.Clone()
	out.Days = make([]Day, len(d.Days))
	for i, day := range d.Days {
		out.Days[i] = day.Clone()
	}
	out.SharedWith = slices.Clone(d.SharedWith)
	out.Metadata.Tags = slices.Clone(d.Metadata.Tags)
	return out
}

// Validate checks the structural invariants: days are numbered 1..n and
// dated consecutively from the trip start, and every section list exists.
func (d Document) Validate() error {
	var errs []FieldError

	if err := d.TripDetails.Validate(); err != nil {
		errs = append(errs, FieldError{Field: "tripDetails", Message: err.Error()})
	}

	for i, day := range d.Days {
		field := fmt.Sprintf("days[%d]", i)
		if day.DayNumber != i+1 {
			errs = append(errs, FieldError{Field: field + ".dayNumber", Message: fmt.Sprintf("must be %d", i+1)})
		}
		if !d.TripDetails.StartDate.IsZero() && day.Date != d.TripDetails.StartDate.AddDays(i) {
			errs = append(errs, FieldError{Field: field + ".date", Message: "must follow the previous day"})
		}
		if day.Sections.Activities == nil || day.Sections.Hotels == nil || day.Sections.Restaurants == nil {
			errs = append(errs, FieldError{Field: field + ".sections", Message: "all sections required"})
		}
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// StoredItinerary is a persisted document as returned by storage, before
// it has been normalized back into a Document.
type StoredItinerary struct {
	ID        string
	UserID    string
	Payload   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItinerarySummary is a lightweight listing row for saved itineraries.
type ItinerarySummary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	TripImage   string          `json:"tripImg"`
	Destination string          `json:"destination"`
	StartDate   Date            `json:"startDate"`
	EndDate     Date            `json:"endDate"`
	Status      ItineraryStatus `json:"status"`
	Visibility  Visibility      `json:"visibility"`
	DayCount    int             `json:"dayCount"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Summary builds the listing row for the document.
func (d Document) Summary() ItinerarySummary {
	return ItinerarySummary{
		ID:          d.ID,
		Title:       d.Title,
		TripImage:   d.TripImage,
		Destination: d.TripDetails.Destination.DisplayName(),
		StartDate:   d.TripDetails.StartDate,
		EndDate:     d.TripDetails.EndDate,
		Status:      d.Status,
		Visibility:  d.Visibility,
		DayCount:    len(d.Days),
		UpdatedAt:   d.UpdatedAt,
	}
}
