package testhelper

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// BuildDocument returns a valid three-day draft for destination with one
// priced activity on the first day.
func BuildDocument(t *testing.T, destination string) domain.Document {
	t.Helper()

	doc, err := planner.NewDocument(domain.Trip{
		Destination: domain.Destination{Name: destination},
		StartDate:   domain.NewDate(2025, time.May, 10),
		EndDate:     domain.NewDate(2025, time.May, 12),
		Interests:   []string{},
		Cuisines:    []string{},
		Travelers:   1,
		Budget:      domain.TripBudget{Currency: "EUR", Total: 1500},
	})
	if err != nil {
		t.Fatalf("testhelper: BuildDocument: %v", err)
	}
	doc, err = planner.AddItem(doc, 0, domain.Item{ID: "item-" + uniqueSuffix(), Title: "Old Town walk", Price: 25}, domain.SectionActivities)
	if err != nil {
		t.Fatalf("testhelper: BuildDocument add item: %v", err)
	}
	return planner.RecomputeAll(doc)
}

// SeedItinerary inserts a document for userID directly and returns it with
// the assigned id and timestamps.
func SeedItinerary(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, destination string) domain.Document {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := BuildDocument(t, destination+" "+uniqueSuffix())
	doc.ID = uuid.New().String()
	doc.UserID = userID.String()
	doc.CreatedAt, doc.UpdatedAt = now, now

	payload, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("testhelper: SeedItinerary marshal: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO itineraries (id, user_id, title, trip_img, destination, start_date, end_date,
		                          status, visibility, day_count, payload, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6::date, $7::date, $8, $9, $10, $11, $12, $13)`,
		doc.ID, userID, doc.Title, doc.TripImage, doc.TripDetails.Destination.DisplayName(),
		doc.TripDetails.StartDate.String(), doc.TripDetails.EndDate.String(),
		string(doc.Status), string(doc.Visibility), len(doc.Days), payload, now, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItinerary insert: %v", err)
	}

	return doc
}
