package service

import (
	"errors"
	"strings"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/store"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isNotFound reports whether err means a referenced row is missing.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || store.IsNotFoundError(err)
}
