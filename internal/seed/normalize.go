// Package seed turns untrusted itinerary documents (AI output or stored
// JSON) into canonical domain.Document values.
package seed

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
)

// DefaultMaxDays bounds a trip when the caller passes no limit.
const DefaultMaxDays = 366

// tripFields lists where a trip may live, canonical slot first.
var tripFields = []string{"tripDetails", "trip", "tripData", "trip_details", "itinerary.tripDetails", "itinerary.trip"}

// Normalize converts raw JSON into a canonical document: days ordered and
// renumbered, all three sections present, item fields defaulted, dates
// derived from the trip start and planned budgets recomputed. A trip
// longer than maxDays is rejected before any day is built; maxDays <= 0
// means DefaultMaxDays.
func Normalize(raw []byte, maxDays int) (domain.Document, error) {
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	if !gjson.ValidBytes(raw) {
		return domain.Document{}, domain.NewSeedError("", "invalid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return domain.Document{}, domain.NewSeedError("", "top level must be an object")
	}

	rawDays, err := collectDays(first(root, "days", "itinerary.days"))
	if err != nil {
		return domain.Document{}, err
	}

	tripRes, field := locateTrip(root)
	if !tripRes.Exists() {
		return domain.Document{}, domain.NewSeedError("tripDetails", "missing")
	}
	trip, err := parseTrip(tripRes, field, rawDays)
	if err != nil {
		return domain.Document{}, err
	}
	if n := max(trip.DayCount(), len(rawDays)); n > maxDays {
		return domain.Document{}, domain.NewValidationError("days", fmt.Sprintf("trip too long (max %d days)", maxDays))
	}

	days := make([]domain.Day, 0, len(rawDays))
	for i, rd := range rawDays {
		day, err := parseDay(rd, i, trip.StartDate)
		if err != nil {
			return domain.Document{}, err
		}
		days = append(days, day)
	}

	// The trip range wins for the day count: pad short day lists and widen
	// the range when the seed carries more days than it covers.
	if n := trip.DayCount(); len(days) < n {
		for i := len(days); i < n; i++ {
			days = append(days, domain.Day{
				Date:      trip.StartDate.AddDays(i),
				DayNumber: i + 1,
				Sections:  domain.EmptySections(),
			})
		}
	} else if len(days) > n {
		trip.EndDate = trip.StartDate.AddDays(len(days) - 1)
	}

	doc := domain.Document{
		ID:          str(first(root, "id", "_id")),
		UserID:      str(first(root, "userId", "user_id")),
		Title:       str(root.Get("title")),
		TripImage:   str(first(root, "tripImg", "tripImage")),
		Status:      domain.ItineraryStatus(str(root.Get("status"))),
		Visibility:  domain.Visibility(str(root.Get("visibility"))),
		TripDetails: trip,
		Days:        days,
		SharedWith:  stringList(root.Get("sharedWith")),
		Metadata:    parseMetadata(root.Get("metadata")),
		GeneratedBy: domain.GenerationMode(str(root.Get("generatedBy"))),
	}
	applyHeaderDefaults(&doc, field)

	return planner.RecomputeAll(doc), nil
}

func locateTrip(root gjson.Result) (gjson.Result, string) {
	for _, f := range tripFields {
		if r := root.Get(f); r.IsObject() {
			return r, f
		}
	}
	return gjson.Result{}, ""
}

func applyHeaderDefaults(doc *domain.Document, tripField string) {
	name := doc.TripDetails.Destination.DisplayName()
	if doc.Title == "" {
		doc.Title = name
	}
	if doc.TripImage == "" {
		doc.TripImage = planner.DestinationImage(name)
	}
	if !doc.Status.IsValid() {
		doc.Status = domain.StatusDraft
	}
	if !doc.Visibility.IsValid() {
		doc.Visibility = domain.VisibilityPrivate
	}
	if !doc.GeneratedBy.IsValid() {
		switch {
		case tripField != tripFields[0]:
			doc.GeneratedBy = domain.GenerationAI
		case doc.TripDetails.Mode.IsValid():
			doc.GeneratedBy = doc.TripDetails.Mode
		default:
			doc.GeneratedBy = domain.GenerationManual
		}
	}
	if !doc.TripDetails.Mode.IsValid() {
		doc.TripDetails.Mode = doc.GeneratedBy
	}
}

func parseMetadata(r gjson.Result) domain.Metadata {
	md := domain.Metadata{
		Tags:       stringList(r.Get("tags")),
		IsTemplate: boolean(r.Get("isTemplate")),
		Language:   str(r.Get("language")),
		Version:    integer(r.Get("version")),
	}
	if md.Language == "" {
		md.Language = "en"
	}
	if md.Version <= 0 {
		md.Version = 1
	}
	return md
}

// collectDays accepts an array of days or an object keyed by decimal
// indices, returned in numeric key order. A missing days field is empty.
func collectDays(r gjson.Result) ([]gjson.Result, error) {
	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil, nil
	case r.IsArray():
		return r.Array(), nil
	case r.IsObject():
		type keyed struct {
			idx int
			val gjson.Result
		}
		var entries []keyed
		var bad string
		r.ForEach(func(k, v gjson.Result) bool {
			idx, err := strconv.Atoi(strings.TrimSpace(k.String()))
			if err != nil || idx < 0 {
				bad = k.String()
				return false
			}
			entries = append(entries, keyed{idx: idx, val: v})
			return true
		})
		if bad != "" {
			return nil, domain.NewSeedError("days", fmt.Sprintf("non-numeric key %q", bad))
		}
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
		out := make([]gjson.Result, len(entries))
		for i, e := range entries {
			out[i] = e.val
		}
		return out, nil
	}
	return nil, domain.NewSeedError("days", "must be an array or an index-keyed object")
}

func parseDay(r gjson.Result, i int, start domain.Date) (domain.Day, error) {
	path := fmt.Sprintf("days.%d", i)
	if !r.IsObject() {
		return domain.Day{}, domain.NewSeedError(path, "must be an object")
	}

	source := r.Get("sections")
	sourcePath := path + ".sections"
	if !source.Exists() || source.Type == gjson.Null {
		source, sourcePath = r, path
	} else if !source.IsObject() {
		return domain.Day{}, domain.NewSeedError(sourcePath, "must be an object")
	}

	present := 0
	sections := domain.EmptySections()
	for _, key := range domain.AllSections {
		list := source.Get(string(key))
		if !list.Exists() {
			continue
		}
		present++
		items, err := parseItems(list, sourcePath+"."+string(key), key)
		if err != nil {
			return domain.Day{}, err
		}
		_ = sections.Set(key, items)
	}
	if present == 0 {
		return domain.Day{}, domain.NewSeedError(sourcePath, "no activities, hotels or restaurants")
	}

	actual, _ := number(r.Get("budget.actual"))
	return domain.Day{
		Date:      start.AddDays(i),
		DayNumber: i + 1,
		Budget:    domain.DayBudget{Actual: actual},
		Sections:  sections,
	}, nil
}
