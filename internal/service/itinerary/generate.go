package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/seed"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary/planner"
)

// GenerateWithAI asks the generator for an itinerary, normalizes the
// answer and opens a session on it. The requested trip wins over whatever
// dates or destination the model returned.
func (s *Service) GenerateWithAI(ctx context.Context, in StartTripInput) (domain.Document, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return domain.Document{}, err
	}
	if err := in.Validate(s.cfg.MaxTripDays); err != nil {
		return domain.Document{}, err
	}
	if s.generator == nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", domain.ErrUnavailable)
	}

	trip := in.Trip(domain.GenerationAI)
	if err := trip.Validate(); err != nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", err)
	}

	start := time.Now()
	raw, err := s.generator.Generate(ctx, trip)
	if err != nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", err)
	}

	body, err := seed.ExtractJSON(raw)
	if err != nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", err)
	}
	generated, err := seed.Normalize(body, s.cfg.MaxTripDays)
	if err != nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", err)
	}

	doc, err := planner.Rebase(generated, trip)
	if err != nil {
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", err)
	}
	name := trip.Destination.DisplayName()
	doc.ID = ""
	doc.UserID = userID.String()
	doc.Title = name
	doc.TripImage = planner.DestinationImage(name)
	doc.GeneratedBy = domain.GenerationAI
	doc.CreatedAt, doc.UpdatedAt = time.Time{}, time.Time{}

	doc = s.enrichPhotos(ctx, doc)

	s.log.InfoContext(ctx, "itinerary generated",
		slog.String("destination", name),
		slog.Int("days", len(doc.Days)),
		slog.Duration("took", time.Since(start)),
	)
	return s.open(ctx, userID, doc), nil
}

// enrichPhotos fills in a photo and place details for every item without
// a photo. Lookup misses and failures fall back to stock images; they
// never fail generation.
func (s *Service) enrichPhotos(ctx context.Context, doc domain.Document) domain.Document {
	out := doc.Clone()
	dest := out.TripDetails.Destination.DisplayName()

	for d := range out.Days {
		for _, key := range domain.AllSections {
			items, _ := out.Days[d].Sections.Get(key)
			for i := range items {
				if len(items[i].Photos) > 0 {
					continue
				}
				s.enrichItem(ctx, &items[i], dest)
			}
		}
	}
	return out
}

func (s *Service) enrichItem(ctx context.Context, it *domain.Item, dest string) {
	fallback := func() {
		it.Photos = []domain.Photo{{URL: planner.FallbackImage(it.Type, it.Title)}}
	}
	if s.places == nil || ctx.Err() != nil {
		fallback()
		return
	}

	query := strings.TrimSpace(it.Title)
	if it.Location.Address != "" {
		query += ", " + it.Location.Address
	} else if dest != "" {
		query += ", " + dest
	}

	place, err := s.places.FindPlace(ctx, query)
	if err != nil {
		if !errors.Is(err, domain.ErrPlaceNotFound) {
			s.log.WarnContext(ctx, "place lookup failed",
				slog.String("query", query),
				slog.String("error", err.Error()),
			)
		}
		fallback()
		return
	}

	if place.PhotoURL != "" {
		it.Photos = []domain.Photo{{URL: place.PhotoURL}}
	} else {
		fallback()
	}
	if it.Location.PlaceID == "" {
		it.Location.PlaceID = place.PlaceID
	}
	if it.Location.Address == "" {
		it.Location.Address = place.Address
	}
	if it.Location.Name == "" {
		it.Location.Name = place.Name
	}
	if it.Location.Coordinates == nil && place.Coordinates != nil {
		c := *place.Coordinates
		it.Location.Coordinates = &c
	}
}
