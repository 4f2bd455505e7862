package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tests := []struct {
		name   string
		ctx    context.Context
		want   uuid.UUID
		wantOK bool
	}{
		{"set", WithUserID(context.Background(), id), id, true},
		{"missing", context.Background(), uuid.Nil, false},
		{"nil uuid", WithUserID(context.Background(), uuid.Nil), uuid.Nil, false},
		{"foreign key with same name", context.WithValue(context.Background(), "user_id", id), uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := UserIDFromCtx(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, RequestIDFromCtx(context.Background()))
	assert.Equal(t, "req-1", RequestIDFromCtx(WithRequestID(context.Background(), "req-1")))
}

func TestKeysDoNotCollide(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithRequestID(WithUserID(context.Background(), id), "req-2")

	got, ok := UserIDFromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, "req-2", RequestIDFromCtx(ctx))
}

func TestUserSlot(t *testing.T) {
	t.Parallel()

	ctx, slot := WithUserSlot(context.Background())
	_, ok := slot.UserID()
	assert.False(t, ok, "slot must start empty")

	id := uuid.New()
	_ = WithUserID(ctx, id)

	got, ok := slot.UserID()
	require.True(t, ok)
	assert.Equal(t, id, got)

	var none *UserSlot
	_, ok = none.UserID()
	assert.False(t, ok)
}
