package syncevent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

func titlesOf(ms []Marker) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Title
	}
	return out
}

func TestMarkerSet_AddRemoveReorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	set := NewMarkerSet()
	bus := NewBus()
	bus.Subscribe(set.Handle)

	for i, title := range []string{"A", "B", "C"} {
		require.NoError(t, bus.Publish(ctx, Added(0, domain.SectionActivities, i, domain.Item{Title: title})))
	}
	require.NoError(t, bus.Publish(ctx, Added(0, domain.SectionHotels, 0, domain.Item{Title: "H"})))
	assert.Equal(t, 4, set.Len())

	require.NoError(t, bus.Publish(ctx, Reordered(0, domain.SectionActivities, 0, 2)))
	assert.Equal(t, []string{"B", "C", "A"}, titlesOf(set.Markers(0, domain.SectionActivities)))

	require.NoError(t, bus.Publish(ctx, Removed(0, domain.SectionActivities, 1, domain.Item{Title: "C"})))
	assert.Equal(t, []string{"B", "A"}, titlesOf(set.Markers(0, domain.SectionActivities)))

	require.NoError(t, bus.Publish(ctx, Removed(0, domain.SectionHotels, 0, domain.Item{Title: "H"})))
	assert.Equal(t, 2, set.Len(), "removed items leave no marker behind")
	assert.Empty(t, set.Markers(0, domain.SectionHotels))

	assert.Equal(t, MarkerActivity, set.Markers(0, domain.SectionActivities)[0].Kind)
}

func TestMarkerSet_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	set := NewMarkerSet()

	err := set.Handle(ctx, Removed(0, domain.SectionActivities, 0, domain.Item{}))
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	err = set.Handle(ctx, Added(0, domain.SectionActivities, 1, domain.Item{}))
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)

	err = set.Handle(ctx, Event{Operation: domain.SyncAdd})
	assert.Error(t, err)

	err = set.Handle(ctx, Event{Operation: "rename"})
	assert.Error(t, err)
}

func TestMarkerSet_Reset(t *testing.T) {
	t.Parallel()

	coords := &domain.Coordinates{Lat: 48.85, Lng: 2.35}
	doc := domain.Document{Days: []domain.Day{
		{Sections: domain.Sections{
			Activities:  []domain.Item{{ID: "a", Title: "Louvre", Location: domain.Location{Coordinates: coords}}},
			Hotels:      []domain.Item{},
			Restaurants: []domain.Item{{ID: "r", Title: "Bistro"}},
		}},
		{Sections: domain.EmptySections()},
	}}

	set := NewMarkerSet()
	require.NoError(t, set.Handle(context.Background(), Added(5, domain.SectionHotels, 0, domain.Item{Title: "stale"})))
	set.Reset(doc)

	assert.Equal(t, 2, set.Len())
	acts := set.Markers(0, domain.SectionActivities)
	require.Len(t, acts, 1)
	assert.Equal(t, coords, acts[0].Coordinates)
	assert.NotSame(t, coords, acts[0].Coordinates)
	assert.Equal(t, MarkerRestaurant, set.Markers(0, domain.SectionRestaurants)[0].Kind)
}
