package syncevent

import (
	"context"
	"sync"
)

// Mirror keeps one MarkerSet per user, fed from the event stream of every
// editing session. It stands in for a map client that only sees events.
type Mirror struct {
	mu   sync.Mutex
	sets map[string]*MarkerSet
}

func NewMirror() *Mirror {
	return &Mirror{sets: make(map[string]*MarkerSet)}
}

// Handle routes e to the user's marker set. When the event does not fit the
// mirrored state, as happens when the mirror started mid-session, the
// user's set is dropped and the error returned; it is rebuilt from the
// next Add on an empty section.
func (m *Mirror) Handle(ctx context.Context, e Event) error {
	set := m.set(e.UserID)
	if err := set.Handle(ctx, e); err != nil {
		m.mu.Lock()
		delete(m.sets, e.UserID)
		m.mu.Unlock()
		return err
	}
	return nil
}

// Set returns the marker set of userID, or nil if none is mirrored.
func (m *Mirror) Set(userID string) *MarkerSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets[userID]
}

// Users is the number of users with mirrored markers.
func (m *Mirror) Users() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sets)
}

func (m *Mirror) set(userID string) *MarkerSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sets[userID]
	if !ok {
		s = NewMarkerSet()
		m.sets[userID] = s
	}
	return s
}
