// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Implementations report failures through the sentinel errors in this
// package so callers can branch with errors.Is: ErrNotFound for missing
// rows, ErrDuplicate and ErrInvalidEntity for constraint violations, and
// ErrTransient for failures that are worth retrying.
package store
