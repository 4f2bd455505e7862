// Package ctxutil carries request-scoped identifiers through context.Context.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// key is a typed context key; keys of different T never collide.
type key[T any] struct{ name string }

func (k key[T]) with(ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, k, v)
}

func (k key[T]) from(ctx context.Context) (T, bool) {
	v, ok := ctx.Value(k).(T)
	return v, ok
}

var (
	userIDKey    = key[uuid.UUID]{"user_id"}
	requestIDKey = key[string]{"request_id"}
	userSlotKey  = key[*UserSlot]{"user_slot"}
)

// WithUserID stores the user ID in the context. If an outer middleware
// opened a UserSlot, the ID is recorded there as well.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	if slot, ok := userSlotKey.from(ctx); ok && slot != nil {
		slot.id = id
	}
	return userIDKey.with(ctx, id)
}

// UserIDFromCtx extracts the user ID from the context.
// Returns uuid.Nil and false if the value is missing or nil.
func UserIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := userIDKey.from(ctx)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return requestIDKey.with(ctx, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := requestIDKey.from(ctx)
	return id
}

// UserSlot reports the authenticated user back to middleware that runs
// before authentication, such as the access logger.
type UserSlot struct {
	id uuid.UUID
}

// UserID returns the user recorded by WithUserID further down the chain.
func (s *UserSlot) UserID() (uuid.UUID, bool) {
	if s == nil || s.id == uuid.Nil {
		return uuid.Nil, false
	}
	return s.id, true
}

// WithUserSlot opens an empty slot on the context. A slot is meant to be
// read after the downstream handler has returned.
func WithUserSlot(ctx context.Context) (context.Context, *UserSlot) {
	slot := &UserSlot{}
	return userSlotKey.with(ctx, slot), slot
}
