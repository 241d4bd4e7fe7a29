package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
		transient bool
	}{
		{name: "nil error"},
		{name: "generic error", err: errors.New("some error")},
		{name: "ErrNotFound", err: ErrNotFound, notFound: true},
		{name: "wrapped ErrTaskNotFound", err: fmt.Errorf("get task: %w", ErrTaskNotFound), notFound: true},
		{name: "ErrProjectNotFound", err: ErrProjectNotFound, notFound: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, notFound: true},
		{name: "ErrEmailExists", err: ErrEmailExists, duplicate: true},
		{name: "wrapped ErrDuplicate", err: fmt.Errorf("create: %w", ErrDuplicate), duplicate: true},
		{
			name:      "transient inside StoreError",
			err:       NewStoreError("notification", "create", "connection lost", ErrTransient),
			transient: true,
		},
		{name: "invalid entity is not transient", err: ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err), "IsNotFoundError")
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err), "IsDuplicateError")
			assert.Equal(t, tt.transient, IsTransient(tt.err), "IsTransient")
		})
	}
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("task", "update", "database error", originalErr)

	assert.Equal(t,
		"update operation on task failed: database error: database connection failed",
		storeErr.Error())
	assert.ErrorIs(t, storeErr, originalErr)

	bare := NewStoreError("task", "update", "no rows", nil)
	assert.Equal(t, "update operation on task failed: no rows", bare.Error())
}
