package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/heartmarshall/tripplanner-backend/internal/config"
	"github.com/heartmarshall/tripplanner-backend/internal/domain"
	"github.com/heartmarshall/tripplanner-backend/internal/syncevent"
	"github.com/heartmarshall/tripplanner-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itineraryRepo interface {
	Create(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	Update(ctx context.Context, userID uuid.UUID, doc domain.Document) (domain.Document, error)
	Load(ctx context.Context, userID uuid.UUID, id string) (*domain.StoredItinerary, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ItinerarySummary, int, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

// generator returns the raw model text for a trip.
type generator interface {
	Generate(ctx context.Context, trip domain.Trip) ([]byte, error)
}

type placeLookup interface {
	FindPlace(ctx context.Context, query string) (*domain.Place, error)
}

type snapshotStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

type eventPublisher interface {
	Publish(ctx context.Context, e syncevent.Event) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service owns the per-user editing sessions and orchestrates the planner,
// the seed normalizer and the external collaborators around them.
type Service struct {
	log       *slog.Logger
	repo      itineraryRepo
	events    eventPublisher
	generator generator
	places    placeLookup
	snapshots snapshotStore
	sessions  *lru.Cache[uuid.UUID, *Session]
	cfg       config.PlannerConfig

	// openMu pairs the lookup of a replaced session with its replacement.
	openMu sync.Mutex
}

// NewService creates a new itinerary service. Sync events go to events,
// which may be nil.
func NewService(
	logger *slog.Logger,
	repo itineraryRepo,
	events eventPublisher,
	cfg config.PlannerConfig,
) (*Service, error) {
	if events == nil {
		events = syncevent.Noop{}
	}
	s := &Service{
		log:    logger.With("service", "itinerary"),
		repo:   repo,
		events: events,
		cfg:    cfg,
	}
	sessions, err := lru.NewWithEvict(cfg.SessionCapacity, s.evicted)
	if err != nil {
		return nil, fmt.Errorf("create session store: %w", err)
	}
	s.sessions = sessions
	return s, nil
}

// SetGenerator injects the optional AI itinerary generator.
func (s *Service) SetGenerator(g generator) {
	s.generator = g
}

// SetPlaces injects the optional place/photo lookup.
func (s *Service) SetPlaces(p placeLookup) {
	s.places = p
}

// SetSnapshots injects the optional export store.
func (s *Service) SetSnapshots(st snapshotStore) {
	s.snapshots = st
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func userFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// session returns the caller's active session.
func (s *Service) session(ctx context.Context) (uuid.UUID, *Session, error) {
	userID, err := userFromCtx(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return uuid.Nil, nil, fmt.Errorf("no active itinerary: %w", domain.ErrNotFound)
	}
	return userID, sess, nil
}

// open replaces the caller's session with one editing doc. A replaced
// session is closed like a discarded one.
func (s *Service) open(ctx context.Context, userID uuid.UUID, doc domain.Document) domain.Document {
	sess := newSession(doc)

	s.openMu.Lock()
	prev, replaced := s.sessions.Peek(userID)
	evicted := s.sessions.Add(userID, sess)
	s.openMu.Unlock()

	if replaced {
		prev.close(ctx, s.events, s.log)
	}
	if evicted {
		s.log.WarnContext(ctx, "session store full, evicted least recently used session")
	}
	return sess.Snapshot()
}

// evicted runs when a session leaves the store through Remove or capacity
// eviction. It has no request context.
func (s *Service) evicted(userID uuid.UUID, sess *Session) {
	sess.close(context.Background(), s.events, s.log.With(slog.String("user_id", userID.String())))
}

// clampLimit ensures a limit is within [1, max], defaulting from 0 to defaultVal.
func clampLimit(limit, max, defaultVal int) int {
	if limit <= 0 {
		return defaultVal
	}
	if limit > max {
		return max
	}
	return limit
}
