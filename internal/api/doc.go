// Package api holds the HTTP handlers of the task-management service. It
// decodes and validates requests, calls the services and maps their errors
// to status codes and safe messages. Routes are mounted in cmd/server.
package api
