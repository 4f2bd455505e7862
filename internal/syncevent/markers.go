package syncevent

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// Marker is one pin mirrored from an itinerary item.
type Marker struct {
	ItemID      string
	Title       string
	Address     string
	Kind        MarkerKind
	Coordinates *domain.Coordinates
}

type slot struct {
	day     int
	section domain.SectionKey
}

// MarkerSet mirrors the items of a document as map markers, kept in
// section order. Removals drop the marker so the set never outgrows the
// document.
type MarkerSet struct {
	mu      sync.Mutex
	markers map[slot][]Marker
}

func NewMarkerSet() *MarkerSet {
	return &MarkerSet{markers: make(map[slot][]Marker)}
}

// Reset replaces the set with the markers of doc.
func (m *MarkerSet) Reset(doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.markers = make(map[slot][]Marker)
	for d, day := range doc.Days {
		for _, key := range domain.AllSections {
			items, _ := day.Sections.Get(key)
			if len(items) == 0 {
				continue
			}
			ms := make([]Marker, len(items))
			for i, it := range items {
				ms[i] = markerOf(it, key)
			}
			m.markers[slot{d, key}] = ms
		}
	}
}

// Handle applies an event. It has the Handler signature so it can be
// subscribed to a Bus directly.
func (m *MarkerSet) Handle(_ context.Context, e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := slot{e.DayIndex, e.Section}
	list := m.markers[s]

	switch e.Operation {
	case domain.SyncAdd:
		if e.Item == nil {
			return fmt.Errorf("apply add: missing item")
		}
		if e.Position < 0 || e.Position > len(list) {
			return &domain.RangeError{What: "marker position", Index: e.Position, Len: len(list) + 1}
		}
		list = slices.Insert(list, e.Position, markerOf(*e.Item, e.Section))
	case domain.SyncRemove:
		if e.Position < 0 || e.Position >= len(list) {
			return &domain.RangeError{What: "marker position", Index: e.Position, Len: len(list)}
		}
		list = slices.Delete(list, e.Position, e.Position+1)
	case domain.SyncReorder:
		if e.Position < 0 || e.Position >= len(list) {
			return &domain.RangeError{What: "marker position", Index: e.Position, Len: len(list)}
		}
		if e.ToPosition < 0 || e.ToPosition >= len(list) {
			return &domain.RangeError{What: "marker position", Index: e.ToPosition, Len: len(list)}
		}
		mk := list[e.Position]
		list = slices.Delete(list, e.Position, e.Position+1)
		list = slices.Insert(list, e.ToPosition, mk)
	default:
		return fmt.Errorf("apply %q: unknown operation", e.Operation)
	}

	if len(list) == 0 {
		delete(m.markers, s)
	} else {
		m.markers[s] = list
	}
	return nil
}

// Markers returns a copy of the markers for one day section.
func (m *MarkerSet) Markers(day int, section domain.SectionKey) []Marker {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.markers[slot{day, section}])
}

// Len is the total number of markers.
func (m *MarkerSet) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.markers {
		n += len(l)
	}
	return n
}

func markerOf(it domain.Item, section domain.SectionKey) Marker {
	mk := Marker{
		ItemID:  it.ID,
		Title:   it.Title,
		Address: it.Location.Address,
		Kind:    MarkerFor(section),
	}
	if it.Location.Coordinates != nil {
		c := *it.Location.Coordinates
		mk.Coordinates = &c
	}
	return mk
}
