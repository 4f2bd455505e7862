// Package itinerary implements the itinerary repository using PostgreSQL.
// Documents are stored whole as JSONB; the listing columns are kept next
// to the payload so List never has to decode it.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/tripplanner-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

const table = "itineraries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides itinerary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new itinerary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new itinerary owned by userID. The id and timestamps are
// assigned here and returned in the document.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc = doc.Clone()
	doc.ID = id.String()
	doc.UserID = userID.String()
	doc.CreatedAt, doc.UpdatedAt = now, now

	payload, err := json.Marshal(doc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("marshal itinerary: %w", err)
	}

	query, args, err := psql.Insert(table).
		Columns("id", "user_id", "title", "trip_img", "destination", "start_date", "end_date",
			"status", "visibility", "day_count", "payload", "created_at", "updated_at").
		Values(id, userID, doc.Title, doc.TripImage, doc.TripDetails.Destination.DisplayName(),
			dateValue(doc.TripDetails.StartDate), dateValue(doc.TripDetails.EndDate),
			string(doc.Status), string(doc.Visibility), len(doc.Days), payload, now, now).
		ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return domain.Document{}, postgres.MapError(err, "itinerary", doc.ID)
	}
	return doc, nil
}

// Update replaces the stored document. Returns domain.ErrNotFound if the
// itinerary does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return domain.Document{}, fmt.Errorf("itinerary %s: %w", doc.ID, domain.ErrNotFound)
	}
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc = doc.Clone()
	doc.UserID = userID.String()
	doc.UpdatedAt = now

	payload, err := json.Marshal(doc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("marshal itinerary: %w", err)
	}

	query, args, err := psql.Update(table).
		Set("title", doc.Title).
		Set("trip_img", doc.TripImage).
		Set("destination", doc.TripDetails.Destination.DisplayName()).
		Set("start_date", dateValue(doc.TripDetails.StartDate)).
		Set("end_date", dateValue(doc.TripDetails.EndDate)).
		Set("status", string(doc.Status)).
		Set("visibility", string(doc.Visibility)).
		Set("day_count", len(doc.Days)).
		Set("payload", payload).
		Set("updated_at", now).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return domain.Document{}, fmt.Errorf("build update: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&doc.CreatedAt); err != nil {
		return domain.Document{}, postgres.MapError(err, "itinerary", doc.ID)
	}
	doc.CreatedAt = doc.CreatedAt.UTC()
	return doc, nil
}

// Delete removes an itinerary. Returns domain.ErrNotFound if it does not
// exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	itinID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
	}

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": itinID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "itinerary", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// PurgeArchived deletes archived itineraries of every user last updated
// before the cutoff and returns how many were removed.
func (r *Repo) PurgeArchived(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"status": string(domain.StatusArchived)}).
		Where(sq.Lt{"updated_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge archived itineraries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Load returns the stored payload of one itinerary.
func (r *Repo) Load(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error) {
	itinID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("itinerary %s: %w", id, domain.ErrNotFound)
	}

	query, args, err := psql.Select("id", "user_id", "payload", "created_at", "updated_at").
		From(table).
		Where(sq.Eq{"id": itinID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var (
		rowID, owner uuid.UUID
		stored       domain.StoredItinerary
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).
		Scan(&rowID, &owner, &stored.Payload, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "itinerary", id)
	}

	stored.ID = rowID.String()
	stored.UserID = owner.String()
	stored.CreatedAt = stored.CreatedAt.UTC()
	stored.UpdatedAt = stored.UpdatedAt.UTC()
	return &stored, nil
}

// List returns summaries ordered by updated_at DESC with pagination, and
// the total number of itineraries the user has.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ItinerarySummary, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := psql.Select("count(*)").From(table).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count itineraries: %w", err)
	}

	query, args, err := psql.Select("id", "title", "trip_img", "destination", "start_date", "end_date",
		"status", "visibility", "day_count", "updated_at").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list itineraries: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ItinerarySummary, 0, limit)
	for rows.Next() {
		var (
			s          domain.ItinerarySummary
			id         uuid.UUID
			start, end time.Time
			status     string
			visibility string
		)
		if err := rows.Scan(&id, &s.Title, &s.TripImage, &s.Destination, &start, &end,
			&status, &visibility, &s.DayCount, &s.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan itinerary: %w", err)
		}
		s.ID = id.String()
		s.StartDate = domain.DateOf(start)
		s.EndDate = domain.DateOf(end)
		s.Status = domain.ItineraryStatus(status)
		s.Visibility = domain.Visibility(visibility)
		s.UpdatedAt = s.UpdatedAt.UTC()
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list itineraries: %w", err)
	}

	return items, total, nil
}

// dateValue encodes a calendar date for a DATE column.
func dateValue(d domain.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
