// Package itinerary implements the itinerary repository using MongoDB.
// The document payload is kept as a nested BSON document next to the
// listing fields, mirroring the PostgreSQL layout.
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heartmarshall/tripplanner-backend/internal/adapter/mongodb"
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

const entity = "itinerary"

// record is the stored shape of one itinerary.
type record struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Title       string    `bson:"title"`
	TripImage   string    `bson:"trip_img"`
	Destination string    `bson:"destination"`
	StartDate   string    `bson:"start_date"`
	EndDate     string    `bson:"end_date"`
	Status      string    `bson:"status"`
	Visibility  string    `bson:"visibility"`
	DayCount    int       `bson:"day_count"`
	Payload     bson.Raw  `bson:"payload"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// Repo provides itinerary persistence backed by MongoDB.
type Repo struct {
	coll *mongo.Collection
}

// New creates a new itinerary repository on the given collection.
func New(db *mongo.Database, collection string) *Repo {
	return &Repo{coll: db.Collection(collection)}
}

// EnsureIndexes creates the listing index. It is safe to call repeatedly.
func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
		Options: options.Index().SetName("user_updated"),
	})
	if err != nil {
		return fmt.Errorf("create itinerary index: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new itinerary owned by userID. The id and timestamps are
// assigned here and returned in the document.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc = doc.Clone()
	doc.ID = uuid.NewString()
	doc.UserID = userID.String()
	doc.CreatedAt, doc.UpdatedAt = now, now

	rec, err := toRecord(doc)
	if err != nil {
		return domain.Document{}, err
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return domain.Document{}, mongodb.MapError(err, entity, doc.ID)
	}
	return doc, nil
}

// Update replaces the stored document. Returns domain.ErrNotFound if the
// itinerary does not exist or belongs to another user.
func (r *Repo) Update(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)

	doc = doc.Clone()
	doc.UserID = userID.String()
	doc.UpdatedAt = now

	rec, err := toRecord(doc)
	if err != nil {
		return domain.Document{}, err
	}

	filter := bson.M{"_id": doc.ID, "user_id": rec.UserID}
	update := bson.M{"$set": bson.M{
		"title":       rec.Title,
		"trip_img":    rec.TripImage,
		"destination": rec.Destination,
		"start_date":  rec.StartDate,
		"end_date":    rec.EndDate,
		"status":      rec.Status,
		"visibility":  rec.Visibility,
		"day_count":   rec.DayCount,
		"payload":     rec.Payload,
		"updated_at":  rec.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"created_at": 1})

	var stored struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return domain.Document{}, mongodb.MapError(err, entity, doc.ID)
	}
	doc.CreatedAt = stored.CreatedAt.UTC()
	return doc, nil
}

// Delete removes an itinerary. Returns domain.ErrNotFound if it does not
// exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID.String()})
	if err != nil {
		return mongodb.MapError(err, entity, id)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// PurgeArchived deletes archived itineraries of every user last updated
// before the cutoff and returns how many were removed.
func (r *Repo) PurgeArchived(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{
		"status":     string(domain.StatusArchived),
		"updated_at": bson.M{"$lt": before.UTC()},
	})
	if err != nil {
		return 0, fmt.Errorf("purge archived itineraries: %w", err)
	}
	return res.DeletedCount, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// Load returns the stored payload of one itinerary.
func (r *Repo) Load(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error) {
	var rec record
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "user_id": userID.String()}).Decode(&rec)
	if err != nil {
		return nil, mongodb.MapError(err, entity, id)
	}

	payload, err := bson.MarshalExtJSON(rec.Payload, false, false)
	if err != nil {
		return nil, fmt.Errorf("%s %s: encode payload: %w", entity, id, err)
	}

	return &domain.StoredItinerary{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Payload:   json.RawMessage(payload),
		CreatedAt: rec.CreatedAt.UTC(),
		UpdatedAt: rec.UpdatedAt.UTC(),
	}, nil
}

// List returns summaries ordered by updated_at DESC with pagination, and
// the total number of itineraries the user has.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ItinerarySummary, int, error) {
	filter := bson.M{"user_id": userID.String()}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count itineraries: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"payload": 0})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list itineraries: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]domain.ItinerarySummary, 0, limit)
	for cur.Next(ctx) {
		var rec record
		if err := cur.Decode(&rec); err != nil {
			return nil, 0, fmt.Errorf("decode itinerary: %w", err)
		}
		items = append(items, rec.summary())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list itineraries: %w", err)
	}

	return items, int(total), nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func toRecord(doc domain.Document) (record, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return record{}, fmt.Errorf("marshal itinerary: %w", err)
	}
	var tree bson.D
	if err := bson.UnmarshalExtJSON(payload, false, &tree); err != nil {
		return record{}, fmt.Errorf("convert itinerary payload: %w", err)
	}
	raw, err := bson.Marshal(tree)
	if err != nil {
		return record{}, fmt.Errorf("encode itinerary payload: %w", err)
	}

	return record{
		ID:          doc.ID,
		UserID:      doc.UserID,
		Title:       doc.Title,
		TripImage:   doc.TripImage,
		Destination: doc.TripDetails.Destination.DisplayName(),
		StartDate:   doc.TripDetails.StartDate.String(),
		EndDate:     doc.TripDetails.EndDate.String(),
		Status:      string(doc.Status),
		Visibility:  string(doc.Visibility),
		DayCount:    len(doc.Days),
		Payload:     raw,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (rec record) summary() domain.ItinerarySummary {
	s := domain.ItinerarySummary{
		ID:          rec.ID,
		Title:       rec.Title,
		TripImage:   rec.TripImage,
		Destination: rec.Destination,
		Status:      domain.ItineraryStatus(rec.Status),
		Visibility:  domain.Visibility(rec.Visibility),
		DayCount:    rec.DayCount,
		UpdatedAt:   rec.UpdatedAt.UTC(),
	}
	// Dates were written by toRecord; a parse failure leaves the zero date.
	s.StartDate, _ = domain.ParseDate(rec.StartDate)
	s.EndDate, _ = domain.ParseDate(rec.EndDate)
	return s
}
