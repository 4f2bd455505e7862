package seed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func mustDate(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

const parisArrayDays = `{
  "tripDetails": {
    "destination": {"label": "Paris, France", "coordinates": "48.8566,2.3522"},
    "startDate": "2025-05-01",
    "endDate": "2025-05-02",
    "travelers": "2",
    "interests": "art, food",
    "budget": "1500 EUR"
  },
  "days": [
    {
      "sections": {
        "activities": [{"title": "Louvre", "price": "€17", "location": {"name": "Musée du Louvre", "coordinates": [48.8606, 2.3376]}}],
        "hotels": [{"name": "Hotel Lutetia", "pricePerNight": 450}],
        "restaurants": []
      }
    },
    {
      "sections": {
        "activities": ["Eiffel Tower"],
        "restaurants": [{"title": "Le Comptoir", "price": "$$", "cuisine": "French"}]
      }
    }
  ]
}`

func TestNormalize_ArrayDays(t *testing.T) {
	t.Parallel()

	doc, err := Normalize([]byte(parisArrayDays), DefaultMaxDays)
	require.NoError(t, err)

	assert.Equal(t, "Paris, France", doc.TripDetails.Destination.DisplayName())
	assert.Equal(t, "Paris, France", doc.Title)
	assert.Contains(t, doc.TripImage, "unsplash")
	assert.Equal(t, 2, doc.TripDetails.Travelers)
	assert.Equal(t, []string{"art", "food"}, doc.TripDetails.Interests)
	assert.Equal(t, "EUR", doc.TripDetails.Budget.Currency)
	assert.InDelta(t, 1500, doc.TripDetails.Budget.Total, 1e-9)
	require.NotNil(t, doc.TripDetails.Destination.Coordinates)
	assert.InDelta(t, 48.8566, doc.TripDetails.Destination.Coordinates.Lat, 1e-9)

	require.Len(t, doc.Days, 2)
	d0 := doc.Days[0]
	assert.Equal(t, mustDate("2025-05-01"), d0.Date)
	assert.Equal(t, 1, d0.DayNumber)
	require.Len(t, d0.Sections.Activities, 1)
	assert.Equal(t, domain.ItemTypeActivity, d0.Sections.Activities[0].Type)
	assert.InDelta(t, 17, d0.Sections.Activities[0].Price, 1e-9)
	assert.Equal(t, "Hotel Lutetia", d0.Sections.Hotels[0].Title)
	assert.Equal(t, domain.ItemTypeHotel, d0.Sections.Hotels[0].Type)
	assert.InDelta(t, 467, d0.Budget.Planned, 1e-9)

	d1 := doc.Days[1]
	assert.Equal(t, mustDate("2025-05-02"), d1.Date)
	assert.Equal(t, "Eiffel Tower", d1.Sections.Activities[0].Title)
	assert.NotNil(t, d1.Sections.Hotels, "missing section is synthesized")
	assert.Empty(t, d1.Sections.Hotels)
	r := d1.Sections.Restaurants[0]
	assert.Zero(t, r.Price)
	assert.Equal(t, "$$", r.PriceLevel)
	assert.Equal(t, "French", r.Cuisine)

	assert.Equal(t, domain.StatusDraft, doc.Status)
	assert.Equal(t, domain.VisibilityPrivate, doc.Visibility)
	assert.Equal(t, domain.GenerationManual, doc.GeneratedBy)
	require.NoError(t, doc.Validate())
}

func TestNormalize_MapDaysEquivalentToArray(t *testing.T) {
	t.Parallel()

	asMap := `{
	  "tripDetails": {"destination": "Paris, France", "startDate": "2025-05-01", "endDate": "2025-05-02"},
	  "days": {
	    "1": {"sections": {"activities": [{"title": "B"}], "hotels": [], "restaurants": []}},
	    "0": {"sections": {"activities": [{"title": "A", "price": 10}], "hotels": [], "restaurants": []}}
	  }
	}`
	asArray := `{
	  "tripDetails": {"destination": "Paris, France", "startDate": "2025-05-01", "endDate": "2025-05-02"},
	  "days": [
	    {"sections": {"activities": [{"title": "A", "price": 10}], "hotels": [], "restaurants": []}},
	    {"sections": {"activities": [{"title": "B"}], "hotels": [], "restaurants": []}}
	  ]
	}`

	fromMap, err := Normalize([]byte(asMap), DefaultMaxDays)
	require.NoError(t, err)
	fromArray, err := Normalize([]byte(asArray), DefaultMaxDays)
	require.NoError(t, err)

	assert.Equal(t, fromArray, fromMap)
	assert.Equal(t, "A", fromMap.Days[0].Sections.Activities[0].Title)
	assert.InDelta(t, 10, fromMap.Days[0].Budget.Planned, 1e-9)
}

func TestNormalize_SectionsOnDayItself(t *testing.T) {
	t.Parallel()

	raw := `{
	  "tripDetails": {"destination": "Rome", "startDate": "2025-07-10", "endDate": "2025-07-10"},
	  "days": [{"activities": [{"title": "Colosseum", "price": 18}], "restaurants": [{"title": "Roscioli", "price": 40}]}]
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	require.Len(t, doc.Days, 1)
	assert.Equal(t, "Colosseum", doc.Days[0].Sections.Activities[0].Title)
	assert.Empty(t, doc.Days[0].Sections.Hotels)
	assert.InDelta(t, 58, doc.Days[0].Budget.Planned, 1e-9)
}

func TestNormalize_AlternateTripField(t *testing.T) {
	t.Parallel()

	raw := `{
	  "trip": {"location": {"label": "Tokyo"}, "startDate": "2025-04-01T00:00:00.000Z", "endDate": "2025-04-03"},
	  "days": []
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	assert.Equal(t, "Tokyo", doc.TripDetails.Destination.DisplayName())
	assert.Equal(t, domain.GenerationAI, doc.GeneratedBy)
	assert.Equal(t, domain.GenerationAI, doc.TripDetails.Mode)
	require.Len(t, doc.Days, 3, "short day lists are padded to the trip range")
	assert.Equal(t, mustDate("2025-04-03"), doc.Days[2].Date)
	assert.Equal(t, domain.EmptySections(), doc.Days[2].Sections)
}

func TestNormalize_MoreDaysThanRangeExtendsEnd(t *testing.T) {
	t.Parallel()

	raw := `{
	  "tripDetails": {"destination": "Lisbon", "startDate": "2025-09-01", "endDate": "2025-09-01"},
	  "days": [{"activities": []}, {"activities": []}, {"activities": []}]
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	require.Len(t, doc.Days, 3)
	assert.Equal(t, mustDate("2025-09-03"), doc.TripDetails.EndDate)
	require.NoError(t, doc.Validate())
}

func TestNormalize_DatesFromDays(t *testing.T) {
	t.Parallel()

	raw := `{
	  "tripDetails": {"destination": "Berlin"},
	  "days": [{"date": "2025-10-05", "activities": []}, {"date": "2025-10-06", "activities": []}]
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	assert.Equal(t, mustDate("2025-10-05"), doc.TripDetails.StartDate)
	assert.Equal(t, mustDate("2025-10-06"), doc.TripDetails.EndDate)
}

func TestNormalize_ItemFieldCoercion(t *testing.T) {
	t.Parallel()

	raw := `{
	  "tripDetails": {"destination": "Dubai", "startDate": "2025-01-01", "endDate": "2025-01-01"},
	  "days": [{"sections": {"activities": [{
	    "title": "Burj Khalifa",
	    "address": "1 Sheikh Mohammed bin Rashid Blvd",
	    "price": "AED 1,200.50",
	    "rating": "4.7",
	    "userRatingsTotal": "12,345",
	    "photos": "https://img.example/burj.jpg",
	    "contact": {"phone": "+971 4 888 8888", "website": "https://burjkhalifa.ae", "bookingInfo": "Book online"},
	    "operatingHours": {"isOpen": "true", "periods": ["Monday: 8:30 AM – 11:00 PM", {"day": "Tuesday", "hours": "8:30 AM – 11:00 PM"}]}
	  }]}}]
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	it := doc.Days[0].Sections.Activities[0]
	assert.Equal(t, "1 Sheikh Mohammed bin Rashid Blvd", it.Location.Address)
	assert.InDelta(t, 1200.5, it.Price, 1e-9)
	assert.InDelta(t, 4.7, it.Rating, 1e-9)
	assert.Equal(t, 12345, it.UserRatingsTotal)
	assert.Equal(t, []domain.Photo{{URL: "https://img.example/burj.jpg"}}, it.Photos)
	assert.Equal(t, "+971 4 888 8888", it.Contact.Phone)
	assert.Equal(t, "Book online", it.BookingInfo)
	assert.True(t, it.OperatingHours.IsOpen)
	assert.Equal(t, []domain.Period{
		{Day: "Monday", Hours: "8:30 AM – 11:00 PM"},
		{Day: "Tuesday", Hours: "8:30 AM – 11:00 PM"},
	}, it.OperatingHours.Periods)
}

func TestNormalize_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantPath string
		wantErr  error
	}{
		{name: "invalid json", raw: `{"days": [`},
		{name: "not an object", raw: `[1,2,3]`},
		{
			name:     "missing trip",
			raw:      `{"days": []}`,
			wantPath: "tripDetails",
		},
		{
			name:     "days wrong type",
			raw:      `{"tripDetails": {"startDate": "2025-01-01"}, "days": "monday"}`,
			wantPath: "days",
		},
		{
			name:     "days non-numeric key",
			raw:      `{"tripDetails": {"startDate": "2025-01-01"}, "days": {"first": {"activities": []}}}`,
			wantPath: "days",
		},
		{
			name:     "day without sections",
			raw:      `{"tripDetails": {"startDate": "2025-01-01"}, "days": [{"notes": "free day"}]}`,
			wantPath: "days.0",
		},
		{
			name:     "section not a list",
			raw:      `{"tripDetails": {"startDate": "2025-01-01"}, "days": [{"sections": {"hotels": "none"}}]}`,
			wantPath: "days.0.sections.hotels",
		},
		{
			name:     "item wrong type",
			raw:      `{"tripDetails": {"startDate": "2025-01-01"}, "days": [{"activities": [42]}]}`,
			wantPath: "days.0.activities.0",
		},
		{
			name:     "missing start date",
			raw:      `{"tripDetails": {"destination": "Oslo"}, "days": []}`,
			wantPath: "tripDetails.startDate",
		},
		{
			name:     "bad start date",
			raw:      `{"tripDetails": {"startDate": "someday"}, "days": []}`,
			wantPath: "tripDetails.startDate",
		},
		{
			name:     "end before start",
			raw:      `{"tripDetails": {"startDate": "2025-01-05", "endDate": "2025-01-01"}, "days": []}`,
			wantPath: "tripDetails",
			wantErr:  domain.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize([]byte(tt.raw), DefaultMaxDays)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedSeed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			var se *domain.SeedError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.wantPath, se.Path)
		})
	}
}

func TestNormalize_RejectsTripsOverTheDayLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		maxDays int
		wantErr bool
	}{
		{
			name:    "whole calendar range",
			raw:     `{"tripDetails": {"destination": "X", "startDate": "0001-01-01", "endDate": "9999-12-31"}, "days": []}`,
			maxDays: 60,
			wantErr: true,
		},
		{
			name:    "range over limit",
			raw:     `{"tripDetails": {"startDate": "2025-01-01", "endDate": "2025-01-04"}, "days": []}`,
			maxDays: 3,
			wantErr: true,
		},
		{
			name:    "more days than the limit",
			raw:     `{"tripDetails": {"startDate": "2025-01-01", "endDate": "2025-01-01"}, "days": [{"activities": []}, {"activities": []}, {"activities": []}]}`,
			maxDays: 2,
			wantErr: true,
		},
		{
			name:    "duration over limit",
			raw:     `{"tripDetails": {"startDate": "2025-01-01", "duration": 400}}`,
			maxDays: 0,
			wantErr: true,
		},
		{
			name:    "range at limit",
			raw:     `{"tripDetails": {"startDate": "2025-01-01", "endDate": "2025-01-03"}, "days": []}`,
			maxDays: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Normalize([]byte(tt.raw), tt.maxDays)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc.Days, tt.maxDays)
		})
	}
}

func TestNormalize_HeaderFieldsPreserved(t *testing.T) {
	t.Parallel()

	raw := `{
	  "_id": "665f1c",
	  "user_id": "u-1",
	  "title": "Honeymoon",
	  "status": "published",
	  "visibility": "shared",
	  "sharedWith": ["a@example.com"],
	  "generatedBy": "ai",
	  "metadata": {"tags": ["romantic"], "version": 3},
	  "tripDetails": {"destination": "Paris", "startDate": "2025-02-14", "endDate": "2025-02-14"},
	  "days": [{"sections": {"activities": [], "hotels": [], "restaurants": []}}]
	}`
	doc, err := Normalize([]byte(raw), DefaultMaxDays)
	require.NoError(t, err)

	assert.Equal(t, "665f1c", doc.ID)
	assert.Equal(t, "u-1", doc.UserID)
	assert.Equal(t, "Honeymoon", doc.Title)
	assert.Equal(t, domain.StatusPublished, doc.Status)
	assert.Equal(t, domain.VisibilityShared, doc.Visibility)
	assert.Equal(t, []string{"a@example.com"}, doc.SharedWith)
	assert.Equal(t, domain.GenerationAI, doc.GeneratedBy)
	assert.Equal(t, []string{"romantic"}, doc.Metadata.Tags)
	assert.Equal(t, 3, doc.Metadata.Version)
	assert.Equal(t, "en", doc.Metadata.Language)
}

func TestNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{`12.5`, 12.5, true},
		{`"$1,200"`, 1200, true},
		{`"€15-25"`, 15, true},
		{`"Free"`, 0, true},
		{`"$$$"`, 0, false},
		{`{"amount": 30}`, 30, true},
		{`null`, 0, false},
		{`true`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, ok := number(parseValue(tt.raw))
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCoordinates(t *testing.T) {
	t.Parallel()

	want := &domain.Coordinates{Lat: 35.68, Lng: 139.69}
	assert.Equal(t, want, coordinates(parseValue(`[35.68, 139.69]`)))
	assert.Equal(t, want, coordinates(parseValue(`{"lat": 35.68, "lng": 139.69}`)))
	assert.Equal(t, want, coordinates(parseValue(`{"latitude": "35.68", "longitude": "139.69"}`)))
	assert.Equal(t, want, coordinates(parseValue(`"35.68, 139.69"`)))
	assert.Nil(t, coordinates(parseValue(`[91, 0]`)))
	assert.Nil(t, coordinates(parseValue(`"somewhere"`)))
	assert.Nil(t, coordinates(parseValue(`[1]`)))
}
