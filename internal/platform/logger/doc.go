// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
//
// Setup configures a JSON handler on stdout and makes it the slog default.
// Request-scoped loggers travel through context.Context via WithLogger and
// FromContext.
package logger
