// Package domain contains the core business entities of the task tracker:
// users, projects, tasks, comments, notifications and the task audit log,
// together with the error taxonomy shared by every layer above it.
//
// Entities are plain structs with constructor functions (NewTask, NewUser...)
// that assign identifiers and run Validate. Nothing in this package touches
// storage or transport.
package domain
