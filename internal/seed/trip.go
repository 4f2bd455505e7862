package seed

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func parseTrip(r gjson.Result, field string, days []gjson.Result) (domain.Trip, error) {
	trip := domain.Trip{
		Destination: parseDestination(first(r, "destination", "location")),
		Interests:   stringList(r.Get("interests")),
		Travelers:   integer(r.Get("travelers")),
		Cuisines:    stringList(r.Get("cuisines")),
		Budget:      parseTripBudget(r.Get("budget")),
		Mode:        domain.GenerationMode(str(r.Get("mode"))),
	}
	if trip.Travelers <= 0 {
		trip.Travelers = 1
	}
	if !trip.Mode.IsValid() {
		trip.Mode = ""
	}

	var err error
	if trip.StartDate, err = tripDate(r, field, days, "startDate", "start_date"); err != nil {
		return domain.Trip{}, err
	}
	if trip.EndDate, err = tripDate(r, field, days, "endDate", "end_date"); err != nil {
		return domain.Trip{}, err
	}

	switch {
	case trip.StartDate.IsZero():
		return domain.Trip{}, domain.NewSeedError(field+".startDate", "missing")
	case trip.EndDate.IsZero():
		// A start date plus a day list is enough to recover the range.
		n := max(len(days), 1)
		if d := integer(r.Get("duration")); d > 0 && len(days) == 0 {
			n = d
		}
		trip.EndDate = trip.StartDate.AddDays(n - 1)
	}

	if trip.EndDate.Before(trip.StartDate) {
		return domain.Trip{}, fmt.Errorf("%w: %w", domain.NewSeedError(field, "end date before start date"), domain.ErrInvalidDateRange)
	}
	return trip, nil
}

// tripDate reads a trip date, falling back to the first or last day's date
// when the trip itself does not carry one.
func tripDate(r gjson.Result, field string, days []gjson.Result, keys ...string) (domain.Date, error) {
	if v := first(r, keys...); v.Exists() {
		d, err := domain.ParseDate(str(v))
		if err != nil {
			return domain.Date{}, domain.NewSeedError(field+"."+keys[0], "invalid date")
		}
		return d, nil
	}
	if len(days) == 0 {
		return domain.Date{}, nil
	}
	day := days[0]
	if keys[0] == "endDate" {
		day = days[len(days)-1]
	}
	d, err := domain.ParseDate(str(day.Get("date")))
	if err != nil {
		return domain.Date{}, nil
	}
	return d, nil
}

// parseDestination accepts "Paris", {name}, {label} or {label, value}.
func parseDestination(r gjson.Result) domain.Destination {
	if r.Type == gjson.String {
		return domain.Destination{Name: strings.TrimSpace(r.Str)}
	}
	if !r.IsObject() {
		return domain.Destination{}
	}
	d := domain.Destination{
		Name:        str(r.Get("name")),
		Label:       str(r.Get("label")),
		Coordinates: coordinates(r.Get("coordinates")),
	}
	if d.Name == "" {
		d.Name = d.Label
	}
	if d.Name == "" {
		d.Name = str(r.Get("value"))
	}
	return d
}

// parseTripBudget accepts {currency, total, breakdown}, a number or a
// string such as "1500 USD". Descriptive budgets ("moderate") give total 0.
func parseTripBudget(r gjson.Result) domain.TripBudget {
	b := domain.TripBudget{Currency: "USD", Breakdown: domain.DefaultBreakdown()}

	switch {
	case r.IsObject():
		if c := str(r.Get("currency")); c != "" {
			b.Currency = strings.ToUpper(c)
		}
		b.Total, _ = number(r.Get("total"))
		r.Get("breakdown").ForEach(func(k, v gjson.Result) bool {
			if f, ok := number(v); ok {
				b.Breakdown[k.String()] = f
			}
			return true
		})
	case r.Type == gjson.Number || r.Type == gjson.String:
		b.Total, _ = number(r)
		if r.Type == gjson.String {
			if c := currencyOf(r.Str); c != "" {
				b.Currency = c
			}
		}
	}
	return b
}

func currencyOf(s string) string {
	switch {
	case strings.Contains(s, "€"):
		return "EUR"
	case strings.Contains(s, "£"):
		return "GBP"
	case strings.Contains(s, "¥"):
		return "JPY"
	}
	for _, f := range strings.Fields(s) {
		if len(f) == 3 && strings.ToUpper(f) == f && strings.IndexFunc(f, func(r rune) bool { return r < 'A' || r > 'Z' }) < 0 {
			return f
		}
	}
	return ""
}
