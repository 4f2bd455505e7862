// Package syncevent carries itinerary mutations to external collaborators
// such as a map view. Every Add, Remove and Reorder applied to a session
// produces exactly one Event. A session that is closed announces a Remove
// for each item it still held.
package syncevent

import (
	"time"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// MarkerKind selects how an item is drawn on the map.
type MarkerKind string

const (
	MarkerActivity   MarkerKind = "activity"
	MarkerHotel      MarkerKind = "hotel"
	MarkerRestaurant MarkerKind = "restaurant"
)

// MarkerFor maps a section to its marker kind.
func MarkerFor(section domain.SectionKey) MarkerKind {
	switch section {
	case domain.SectionHotels:
		return MarkerHotel
	case domain.SectionRestaurants:
		return MarkerRestaurant
	default:
		return MarkerActivity
	}
}

// IconColor is the map pin color for the kind.
func (k MarkerKind) IconColor() string {
	switch k {
	case MarkerHotel:
		return "blue"
	case MarkerRestaurant:
		return "yellow"
	default:
		return "red"
	}
}

// Event describes one applied mutation. Position is the index the item
// was added at or removed from, or the source index of a reorder;
// ToPosition is only meaningful for reorders. Item is set for Add and
// Remove.
type Event struct {
	ItineraryID string               `json:"itineraryId,omitempty"`
	UserID      string               `json:"userId,omitempty"`
	DayIndex    int                  `json:"dayIndex"`
	Section     domain.SectionKey    `json:"section"`
	Operation   domain.SyncOperation `json:"operation"`
	Position    int                  `json:"position"`
	ToPosition  int                  `json:"toPosition,omitempty"`
	Item        *domain.Item         `json:"item,omitempty"`
	Marker      MarkerKind           `json:"marker"`
	At          time.Time            `json:"at"`
}

// Added builds the event for an item inserted at position.
func Added(day int, section domain.SectionKey, position int, item domain.Item) Event {
	it := item.Clone()
	return Event{
		DayIndex:  day,
		Section:   section,
		Operation: domain.SyncAdd,
		Position:  position,
		Item:      &it,
		Marker:    MarkerFor(section),
		At:        time.Now().UTC(),
	}
}

// Removed builds the event for an item taken out of position.
func Removed(day int, section domain.SectionKey, position int, item domain.Item) Event {
	e := Added(day, section, position, item)
	e.Operation = domain.SyncRemove
	return e
}

// Reordered builds the event for a move within one section.
func Reordered(day int, section domain.SectionKey, from, to int) Event {
	return Event{
		DayIndex:   day,
		Section:    section,
		Operation:  domain.SyncReorder,
		Position:   from,
		ToPosition: to,
		Marker:     MarkerFor(section),
		At:         time.Now().UTC(),
	}
}
