package planner

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// AddItem appends item to the given section of day dayIndex. The item's
// type is stamped from the section it lands in.
func AddItem(doc domain.Document, dayIndex int, item domain.Item, section domain.SectionKey) (domain.Document, error) {
	if err := checkDay(doc, dayIndex); err != nil {
		return domain.Document{}, fmt.Errorf("add item: %w", err)
	}
	if !section.IsValid() {
		return domain.Document{}, fmt.Errorf("add item: section %q: %w", section, domain.ErrUnknownSection)
	}

	item = item.Clone()
	item.Type = section.ItemType()
	if item.Photos == nil {
		item.Photos = []domain.Photo{}
	}
	if item.OperatingHours.Periods == nil {
		item.OperatingHours.Periods = []domain.Period{}
	}

	out := doc.Clone()
	sections := &out.Days[dayIndex].Sections
	items, _ := sections.Get(section)
	_ = sections.Set(section, append(items, item))
	return out, nil
}

// RemoveItem deletes the item at position and returns it alongside the new
// document so callers can announce exactly what was removed.
func RemoveItem(doc domain.Document, dayIndex int, section domain.SectionKey, position int) (domain.Document, domain.Item, error) {
	if err := checkDay(doc, dayIndex); err != nil {
		return domain.Document{}, domain.Item{}, fmt.Errorf("remove item: %w", err)
	}
	items, err := doc.Days[dayIndex].Sections.Get(section)
	if err != nil {
		return domain.Document{}, domain.Item{}, fmt.Errorf("remove item: %w", err)
	}
	if err := checkPosition(position, len(items)); err != nil {
		return domain.Document{}, domain.Item{}, fmt.Errorf("remove item: %w", err)
	}

	out := doc.Clone()
	sections := &out.Days[dayIndex].Sections
	cur, _ := sections.Get(section)
	removed := cur[position]
	_ = sections.Set(section, slices.Delete(cur, position, position+1))
	return out, removed, nil
}

// ReorderItem moves the item at from so that it ends up at index to.
// The relative order of all other items is preserved.
func ReorderItem(doc domain.Document, dayIndex int, section domain.SectionKey, from, to int) (domain.Document, error) {
	if err := checkDay(doc, dayIndex); err != nil {
		return domain.Document{}, fmt.Errorf("reorder item: %w", err)
	}
	items, err := doc.Days[dayIndex].Sections.Get(section)
	if err != nil {
		return domain.Document{}, fmt.Errorf("reorder item: %w", err)
	}
	if err := checkPosition(from, len(items)); err != nil {
		return domain.Document{}, fmt.Errorf("reorder item: from: %w", err)
	}
	if err := checkPosition(to, len(items)); err != nil {
		return domain.Document{}, fmt.Errorf("reorder item: to: %w", err)
	}

	out := doc.Clone()
	if from == to {
		return out, nil
	}

	sections := &out.Days[dayIndex].Sections
	cur, _ := sections.Get(section)
	moved := cur[from]
	cur = slices.Delete(cur, from, from+1)
	cur = slices.Insert(cur, to, moved)
	_ = sections.Set(section, cur)
	return out, nil
}

// Position addresses an item by day, section and ordinal position.
type Position struct {
	DayIndex int
	Section  domain.SectionKey
	Index    int
}

// LocateItem finds the first item carrying the given ID.
func LocateItem(doc domain.Document, id string) (Position, bool) {
	if id == "" {
		return Position{}, false
	}
	for d := range doc.Days {
		for _, key := range domain.AllSections {
			items, _ := doc.Days[d].Sections.Get(key)
			for i, it := range items {
				if it.ID == id {
					return Position{DayIndex: d, Section: key, Index: i}, true
				}
			}
		}
	}
	return Position{}, false
}

func checkDay(doc domain.Document, dayIndex int) error {
	if dayIndex < 0 || dayIndex >= len(doc.Days) {
		return &domain.RangeError{What: "day index", Index: dayIndex, Len: len(doc.Days)}
	}
	return nil
}

func checkPosition(position, n int) error {
	if position < 0 || position >= n {
		return &domain.RangeError{What: "position", Index: position, Len: n}
	}
	return nil
}
