package shared

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTraceIDRoundTrip(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))

	id := NewTraceID()
	assert.Len(t, id, 32)
	assert.True(t, ValidTraceID(id))
	assert.NotEqual(t, id, NewTraceID())

	ctx := WithTraceID(context.Background(), id)
	assert.Equal(t, id, GetTraceID(ctx))
}

func TestValidTraceID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"abc-123_XYZ", true},
		{"", false},
		{"has space", false},
		{"semi;colon", false},
		{string(make([]byte, MaxTraceIDLength+1)), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidTraceID(tt.id), "id %q", tt.id)
	}
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok, "nil user ID is not authenticated")

	id := uuid.New()
	got, ok := UserIDFromContext(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
