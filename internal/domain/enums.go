package domain

import "fmt"

// SectionKey names one of the three fixed item sections of a day.
type SectionKey string

const (
	SectionActivities  SectionKey = "activities"
	SectionHotels      SectionKey = "hotels"
	SectionRestaurants SectionKey = "restaurants"
)

// AllSections lists the section keys in display order.
var AllSections = []SectionKey{SectionActivities, SectionHotels, SectionRestaurants}

func (k SectionKey) String() string { return string(k) }

func (k SectionKey) IsValid() bool {
	switch k {
	case SectionActivities, SectionHotels, SectionRestaurants:
		return true
	}
	return false
}

// ItemType returns the item type implied by membership in the section.
func (k SectionKey) ItemType() ItemType {
	switch k {
	case SectionHotels:
		return ItemTypeHotel
	case SectionRestaurants:
		return ItemTypeRestaurant
	default:
		return ItemTypeActivity
	}
}

// ParseSectionKey validates a raw section name.
func ParseSectionKey(s string) (SectionKey, error) {
	k := SectionKey(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownSection)
	}
	return k, nil
}

// ItemType is the kind of place an item describes.
type ItemType string

const (
	ItemTypeActivity   ItemType = "activity"
	ItemTypeHotel      ItemType = "hotel"
	ItemTypeRestaurant ItemType = "restaurant"
)

func (t ItemType) String() string { return string(t) }

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeActivity, ItemTypeHotel, ItemTypeRestaurant:
		return true
	}
	return false
}

// GenerationMode records how an itinerary was produced.
type GenerationMode string

const (
	GenerationManual GenerationMode = "manual"
	GenerationAI     GenerationMode = "ai"
)

func (m GenerationMode) String() string { return string(m) }

func (m GenerationMode) IsValid() bool {
	switch m {
	case GenerationManual, GenerationAI:
		return true
	}
	return false
}

// ItineraryStatus is the publication state of an itinerary.
type ItineraryStatus string

const (
	StatusDraft     ItineraryStatus = "draft"
	StatusPublished ItineraryStatus = "published"
	StatusArchived  ItineraryStatus = "archived"
)

func (s ItineraryStatus) String() string { return string(s) }

func (s ItineraryStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Visibility controls who may read a saved itinerary.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityShared  Visibility = "shared"
	VisibilityPublic  Visibility = "public"
)

func (v Visibility) String() string { return string(v) }

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityPrivate, VisibilityShared, VisibilityPublic:
		return true
	}
	return false
}

// SyncOperation is the kind of change announced to external collaborators.
type SyncOperation string

const (
	SyncAdd     SyncOperation = "add"
	SyncRemove  SyncOperation = "remove"
	SyncReorder SyncOperation = "reorder"
)

func (o SyncOperation) String() string { return string(o) }

func (o SyncOperation) IsValid() bool {
	switch o {
	case SyncAdd, SyncRemove, SyncReorder:
		return true
	}
	return false
}
