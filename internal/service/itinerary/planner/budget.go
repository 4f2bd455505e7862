package planner

import (
	"fmt"
	"math"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

// RecomputeBudget sets the planned budget of day dayIndex to the sum of all
// item prices in its three sections. Actual spend is left untouched.
func RecomputeBudget(doc domain.Document, dayIndex int) (domain.Document, error) {
	if err := checkDay(doc, dayIndex); err != nil {
		return domain.Document{}, fmt.Errorf("recompute budget: %w", err)
	}
	out := doc.Clone()
	out.Days[dayIndex].Budget.Planned = PlannedForDay(out.Days[dayIndex])
	return out, nil
}

// RecomputeAll recomputes the planned budget of every day.
func RecomputeAll(doc domain.Document) domain.Document {
	out := doc.Clone()
	for i := range out.Days {
		out.Days[i].Budget.Planned = PlannedForDay(out.Days[i])
	}
	return out
}

// PlannedForDay sums item prices across a day's sections. Non-finite
// prices count as zero.
func PlannedForDay(day domain.Day) float64 {
	var sum float64
	for _, key := range domain.AllSections {
		items, _ := day.Sections.Get(key)
		for _, it := range items {
			sum += finite(it.Price)
		}
	}
	return sum
}

// TotalPlanned is the planned spend of the whole trip.
func TotalPlanned(doc domain.Document) float64 {
	var sum float64
	for _, d := range doc.Days {
		sum += finite(d.Budget.Planned)
	}
	return sum
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
