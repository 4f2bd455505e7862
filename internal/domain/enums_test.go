package domain

import (
	"errors"
	"testing"
)

func TestSectionKey_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  SectionKey
		want bool
	}{
		{SectionActivities, true},
		{SectionHotels, true},
		{SectionRestaurants, true},
		{SectionKey("flights"), false},
		{SectionKey(""), false},
		{SectionKey("Hotels"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()
			if got := tt.key.IsValid(); got != tt.want {
				t.Errorf("SectionKey(%q).IsValid() = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestSectionKey_ItemType(t *testing.T) {
	t.Parallel()

	tests := map[SectionKey]ItemType{
		SectionActivities:  ItemTypeActivity,
		SectionHotels:      ItemTypeHotel,
		SectionRestaurants: ItemTypeRestaurant,
	}
	for key, want := range tests {
		if got := key.ItemType(); got != want {
			t.Errorf("%s.ItemType() = %q, want %q", key, got, want)
		}
	}
}

func TestParseSectionKey(t *testing.T) {
	t.Parallel()

	k, err := ParseSectionKey("restaurants")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != SectionRestaurants {
		t.Errorf("got %q, want restaurants", k)
	}

	_, err = ParseSectionKey("museums")
	if !errors.Is(err, ErrUnknownSection) {
		t.Errorf("expected ErrUnknownSection, got %v", err)
	}
}

func TestEnums_IsValid(t *testing.T) {
	t.Parallel()

	if !GenerationAI.IsValid() || !GenerationManual.IsValid() || GenerationMode("llm").IsValid() {
		t.Error("GenerationMode.IsValid mismatch")
	}
	if !StatusDraft.IsValid() || ItineraryStatus("DRAFT").IsValid() {
		t.Error("ItineraryStatus.IsValid mismatch")
	}
	if !VisibilityShared.IsValid() || Visibility("friends").IsValid() {
		t.Error("Visibility.IsValid mismatch")
	}
	if !SyncRemove.IsValid() || SyncOperation("move").IsValid() {
		t.Error("SyncOperation.IsValid mismatch")
	}
	if !ItemTypeHotel.IsValid() || ItemType("hotels").IsValid() {
		t.Error("ItemType.IsValid mismatch")
	}
}

func TestAllSections_Order(t *testing.T) {
	t.Parallel()

	want := []SectionKey{SectionActivities, SectionHotels, SectionRestaurants}
	if len(AllSections) != len(want) {
		t.Fatalf("len = %d, want %d", len(AllSections), len(want))
	}
	for i := range want {
		if AllSections[i] != want[i] {
			t.Errorf("AllSections[%d] = %q, want %q", i, AllSections[i], want[i])
		}
	}
}
