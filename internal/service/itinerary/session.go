package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
)

// NoDay marks an empty selection.
const NoDay = -1

// ViewState is the editing selection. It is never persisted.
type ViewState struct {
	SelectedDay int `json:"selectedDay"`
	ExpandedDay int `json:"expandedDay"`
}

func initialView(doc domain.Document) ViewState {
	if len(doc.Days) == 0 {
		return ViewState{SelectedDay: NoDay, ExpandedDay: NoDay}
	}
	return ViewState{SelectedDay: 0, ExpandedDay: 0}
}

// clamp keeps the selection inside a document of n days.
func (v ViewState) clamp(n int) ViewState {
	if n == 0 {
		return ViewState{SelectedDay: NoDay, ExpandedDay: NoDay}
	}
	if v.SelectedDay < 0 {
		v.SelectedDay = 0
	}
	if v.SelectedDay >= n {
		v.SelectedDay = n - 1
	}
	if v.ExpandedDay >= n {
		v.ExpandedDay = NoDay
	}
	return v
}

// Session is one user's in-memory itinerary. Every mutation runs under mu,
// so snapshots never observe a half-applied change.
type Session struct {
	mu   sync.Mutex
	doc  domain.Document
	view ViewState

	// closed is set once the session left the store. Later mutations fail
	// so no event follows the final removals.
	closed bool

	// pubMu orders event delivery to match mutation order without holding
	// mu during I/O.
	pubMu sync.Mutex

	// saveMu serializes saves so an unsaved document is created only once.
	saveMu sync.Mutex
}

func newSession(doc domain.Document) *Session {
	return &Session{doc: doc, view: initialView(doc)}
}

// Snapshot returns a deep copy of the current document.
func (sess *Session) Snapshot() domain.Document {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc.Clone()
}

// View returns the current selection.
func (sess *Session) View() ViewState {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.view
}

// mutation computes the next document and the events that announce it.
type mutation func(doc domain.Document) (domain.Document, []syncevent.Event, error)

// apply runs fn under the document lock and publishes its events after the
// lock is released. Publish failures are logged and never undo the change.
func (sess *Session) apply(ctx context.Context, pub eventPublisher, log *slog.Logger, fn mutation) (domain.Document, error) {
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return domain.Document{}, fmt.Errorf("itinerary was closed: %w", domain.ErrNotFound)
	}
	next, events, err := fn(sess.doc)
	if err != nil {
		sess.mu.Unlock()
		return domain.Document{}, err
	}
	sess.doc = next
	sess.view = sess.view.clamp(len(next.Days))
	out := next.Clone()

	sess.pubMu.Lock()
	sess.mu.Unlock()
	defer sess.pubMu.Unlock()

	publish(ctx, pub, log, out, events)
	return out, nil
}

// close marks the session closed and retracts every item of its document,
// so collaborators drop the markers of an itinerary nobody edits anymore.
// Closing twice is a no-op.
func (sess *Session) close(ctx context.Context, pub eventPublisher, log *slog.Logger) {
	sess.mu.Lock()
	if sess.closed {
		sess.mu.Unlock()
		return
	}
	sess.closed = true
	doc := sess.doc.Clone()

	sess.pubMu.Lock()
	sess.mu.Unlock()
	defer sess.pubMu.Unlock()

	publish(ctx, pub, log, doc, clearEvents(doc))
}

// publish delivers events stamped with the identity of doc. Failures are
// logged only.
func publish(ctx context.Context, pub eventPublisher, log *slog.Logger, doc domain.Document, events []syncevent.Event) {
	for _, ev := range events {
		ev.ItineraryID = doc.ID
		ev.UserID = doc.UserID
		if err := pub.Publish(ctx, ev); err != nil {
			log.WarnContext(ctx, "publish sync event",
				slog.String("operation", string(ev.Operation)),
				slog.Int("day", ev.DayIndex),
				slog.String("error", err.Error()),
			)
		}
	}
}

// clearEvents removes every item of doc, last day and last position first
// so each index is valid when applied in order.
func clearEvents(doc domain.Document) []syncevent.Event {
	var events []syncevent.Event
	for d := len(doc.Days) - 1; d >= 0; d-- {
		for _, key := range domain.AllSections {
			items, _ := doc.Days[d].Sections.Get(key)
			for p := len(items) - 1; p >= 0; p-- {
				events = append(events, syncevent.Removed(d, key, p, items[p]))
			}
		}
	}
	return events
}

// setView updates the selection under the lock.
func (sess *Session) setView(fn func(v ViewState, days int) (ViewState, error)) (ViewState, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	v, err := fn(sess.view, len(sess.doc.Days))
	if err != nil {
		return ViewState{}, err
	}
	sess.view = v
	return v, nil
}

// stamp writes persisted identity back into the session document.
func (sess *Session) stamp(saved domain.Document) domain.Document {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.doc.ID = saved.ID
	sess.doc.UserID = saved.UserID
	sess.doc.CreatedAt = saved.CreatedAt
	sess.doc.UpdatedAt = saved.UpdatedAt
	if sess.doc.TripImage == "" {
		sess.doc.TripImage = saved.TripImage
	}
	return sess.doc.Clone()
}
