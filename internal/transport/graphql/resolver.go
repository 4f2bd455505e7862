package graphql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/service/itinerary"
)

// itineraryService defines what the resolvers need from the itinerary
// service.
type itineraryService interface {
	StartTrip(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	GenerateWithAI(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	LoadSeed(ctx context.Context, raw []byte) (domain.Document, error)
	Reinitialize(ctx context.Context, in itinerary.StartTripInput) (domain.Document, error)
	Current(ctx context.Context) (itinerary.SessionState, error)
	View(ctx context.Context) (itinerary.ViewState, error)

	AddItem(ctx context.Context, in itinerary.AddItemInput) (domain.Document, error)
	RemoveItem(ctx context.Context, in itinerary.RemoveItemInput) (domain.Document, error)
	RemoveItemByID(ctx context.Context, id string) (domain.Document, error)
	ReorderItem(ctx context.Context, in itinerary.ReorderItemInput) (domain.Document, error)
	RecomputeBudget(ctx context.Context, dayIndex int) (domain.Document, error)

	SelectDay(ctx context.Context, dayIndex int) (itinerary.ViewState, error)
	ToggleExpanded(ctx context.Context, dayIndex int) (itinerary.ViewState, error)

	Save(ctx context.Context) (domain.Document, error)
	Navigate(ctx context.Context, continuation bool) error
	Share(ctx context.Context, in itinerary.ShareInput) (domain.Document, error)
	SetStatus(ctx context.Context, status domain.ItineraryStatus) (domain.Document, error)
	Export(ctx context.Context) (itinerary.ExportResult, error)

	LoadSaved(ctx context.Context, id string) (domain.Document, error)
	List(ctx context.Context, in itinerary.ListInput) (itinerary.ListResult, error)
	Delete(ctx context.Context, id string) error
}

// Resolver is the root resolver.
type Resolver struct {
	itinerary     itineraryService
	allowGenerate func(ctx context.Context) bool
	log           *slog.Logger
}

// NewResolver creates the root resolver. allowGenerate gates AI generation
// per caller and may be nil.
func NewResolver(svc itineraryService, allowGenerate func(ctx context.Context) bool, logger *slog.Logger) *Resolver {
	return &Resolver{itinerary: svc, allowGenerate: allowGenerate, log: logger.With("handler", "graphql")}
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

// ---------------------------------------------------------------------------
// Query
// ---------------------------------------------------------------------------

func (r *queryResolver) Itinerary(ctx context.Context) (itinerary.SessionState, error) {
	return r.itinerary.Current(ctx)
}

func (r *queryResolver) View(ctx context.Context) (itinerary.ViewState, error) {
	return r.itinerary.View(ctx)
}

func (r *queryResolver) Itineraries(ctx context.Context, limit, offset int) (itinerary.ListResult, error) {
	return r.itinerary.List(ctx, itinerary.ListInput{Limit: limit, Offset: offset})
}

// ---------------------------------------------------------------------------
// Mutation: session lifecycle
// ---------------------------------------------------------------------------

func (r *mutationResolver) StartTrip(ctx context.Context, input TripInput) (domain.Document, error) {
	return r.itinerary.StartTrip(ctx, input.toService())
}

func (r *mutationResolver) GenerateItinerary(ctx context.Context, input TripInput) (domain.Document, error) {
	if r.allowGenerate != nil && !r.allowGenerate(ctx) {
		r.log.WarnContext(ctx, "generate rate limited")
		return domain.Document{}, fmt.Errorf("generate itinerary: %w", domain.ErrRateLimited)
	}
	return r.itinerary.GenerateWithAI(ctx, input.toService())
}

func (r *mutationResolver) LoadSeed(ctx context.Context, document string) (domain.Document, error) {
	return r.itinerary.LoadSeed(ctx, []byte(document))
}

func (r *mutationResolver) Reinitialize(ctx context.Context, input TripInput) (domain.Document, error) {
	return r.itinerary.Reinitialize(ctx, input.toService())
}

// ---------------------------------------------------------------------------
// Mutation: items and budget
// ---------------------------------------------------------------------------

func (r *mutationResolver) AddItem(ctx context.Context, day int, section string, item domain.Item) (domain.Document, error) {
	return r.itinerary.AddItem(ctx, itinerary.AddItemInput{DayIndex: day, Section: section, Item: item})
}

func (r *mutationResolver) RemoveItem(ctx context.Context, day int, section string, position int) (domain.Document, error) {
	return r.itinerary.RemoveItem(ctx, itinerary.RemoveItemInput{DayIndex: day, Section: section, Position: position})
}

func (r *mutationResolver) RemoveItemByID(ctx context.Context, id string) (domain.Document, error) {
	return r.itinerary.RemoveItemByID(ctx, id)
}

func (r *mutationResolver) ReorderItem(ctx context.Context, day int, section string, from, to int) (domain.Document, error) {
	return r.itinerary.ReorderItem(ctx, itinerary.ReorderItemInput{DayIndex: day, Section: section, From: from, To: to})
}

func (r *mutationResolver) RecomputeBudget(ctx context.Context, day int) (domain.Document, error) {
	return r.itinerary.RecomputeBudget(ctx, day)
}

func (r *mutationResolver) SelectDay(ctx context.Context, day int) (itinerary.ViewState, error) {
	return r.itinerary.SelectDay(ctx, day)
}

func (r *mutationResolver) ToggleExpanded(ctx context.Context, day int) (itinerary.ViewState, error) {
	return r.itinerary.ToggleExpanded(ctx, day)
}

// ---------------------------------------------------------------------------
// Mutation: persistence and sharing
// ---------------------------------------------------------------------------

func (r *mutationResolver) SaveItinerary(ctx context.Context) (domain.Document, error) {
	return r.itinerary.Save(ctx)
}

func (r *mutationResolver) Navigate(ctx context.Context, continuation bool) (bool, error) {
	if err := r.itinerary.Navigate(ctx, continuation); err != nil {
		return false, err
	}
	return true, nil
}

func (r *mutationResolver) Share(ctx context.Context, recipients []string, visibility domain.Visibility) (domain.Document, error) {
	return r.itinerary.Share(ctx, itinerary.ShareInput{Recipients: recipients, Visibility: visibility})
}

func (r *mutationResolver) SetStatus(ctx context.Context, status domain.ItineraryStatus) (domain.Document, error) {
	return r.itinerary.SetStatus(ctx, status)
}

func (r *mutationResolver) ExportItinerary(ctx context.Context) (itinerary.ExportResult, error) {
	return r.itinerary.Export(ctx)
}

func (r *mutationResolver) LoadItinerary(ctx context.Context, id string) (domain.Document, error) {
	return r.itinerary.LoadSaved(ctx, id)
}

func (r *mutationResolver) DeleteItinerary(ctx context.Context, id string) (bool, error) {
	if err := r.itinerary.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Root field tables
// ---------------------------------------------------------------------------

// fieldFunc resolves one root field from its coerced arguments.
type fieldFunc func(ctx context.Context, args map[string]any) (any, error)

// withArgs decodes the arguments into A before calling fn.
func withArgs[A any](fn func(ctx context.Context, a A) (any, error)) fieldFunc {
	return func(ctx context.Context, raw map[string]any) (any, error) {
		var a A
		if err := decodeArgs(raw, &a); err != nil {
			return nil, err
		}
		return fn(ctx, a)
	}
}

func (r *Resolver) queryFields() map[string]fieldFunc {
	q := &queryResolver{r}
	return map[string]fieldFunc{
		"itinerary": func(ctx context.Context, _ map[string]any) (any, error) { return q.Itinerary(ctx) },
		"view":      func(ctx context.Context, _ map[string]any) (any, error) { return q.View(ctx) },
		"itineraries": withArgs(func(ctx context.Context, a pageArgs) (any, error) {
			return q.Itineraries(ctx, a.Limit, a.Offset)
		}),
	}
}

func (r *Resolver) mutationFields() map[string]fieldFunc {
	m := &mutationResolver{r}
	return map[string]fieldFunc{
		"startTrip": withArgs(func(ctx context.Context, a tripArgs) (any, error) {
			return m.StartTrip(ctx, a.Input)
		}),
		"generateItinerary": withArgs(func(ctx context.Context, a tripArgs) (any, error) {
			return m.GenerateItinerary(ctx, a.Input)
		}),
		"loadSeed": withArgs(func(ctx context.Context, a seedArgs) (any, error) {
			return m.LoadSeed(ctx, a.Document)
		}),
		"reinitialize": withArgs(func(ctx context.Context, a tripArgs) (any, error) {
			return m.Reinitialize(ctx, a.Input)
		}),
		"addItem": withArgs(func(ctx context.Context, a addItemArgs) (any, error) {
			return m.AddItem(ctx, a.Day, a.Section, a.Item)
		}),
		"removeItem": withArgs(func(ctx context.Context, a removeItemArgs) (any, error) {
			return m.RemoveItem(ctx, a.Day, a.Section, a.Position)
		}),
		"removeItemById": withArgs(func(ctx context.Context, a idArgs) (any, error) {
			return m.RemoveItemByID(ctx, a.ID)
		}),
		"reorderItem": withArgs(func(ctx context.Context, a reorderArgs) (any, error) {
			return m.ReorderItem(ctx, a.Day, a.Section, a.From, a.To)
		}),
		"recomputeBudget": withArgs(func(ctx context.Context, a dayArgs) (any, error) {
			return m.RecomputeBudget(ctx, a.Day)
		}),
		"selectDay": withArgs(func(ctx context.Context, a dayArgs) (any, error) {
			return m.SelectDay(ctx, a.Day)
		}),
		"toggleExpanded": withArgs(func(ctx context.Context, a dayArgs) (any, error) {
			return m.ToggleExpanded(ctx, a.Day)
		}),
		"saveItinerary": func(ctx context.Context, _ map[string]any) (any, error) { return m.SaveItinerary(ctx) },
		"navigate": withArgs(func(ctx context.Context, a navigateArgs) (any, error) {
			return m.Navigate(ctx, a.Continuation)
		}),
		"share": withArgs(func(ctx context.Context, a shareArgs) (any, error) {
			return m.Share(ctx, a.Recipients, a.Visibility)
		}),
		"setStatus": withArgs(func(ctx context.Context, a statusArgs) (any, error) {
			return m.SetStatus(ctx, a.Status)
		}),
		"exportItinerary": func(ctx context.Context, _ map[string]any) (any, error) { return m.ExportItinerary(ctx) },
		"loadItinerary": withArgs(func(ctx context.Context, a idArgs) (any, error) {
			return m.LoadItinerary(ctx, a.ID)
		}),
		"deleteItinerary": withArgs(func(ctx context.Context, a idArgs) (any, error) {
			return m.DeleteItinerary(ctx, a.ID)
		}),
	}
}
