// Package notify turns task change events into stored notifications for the
// task's assignee.
//
// The Notifier holds one subscription and handles payloads one at a time.
// Each store write is retried with exponential backoff; a payload that
// still fails after the last attempt is logged and dropped so the next one
// can be handled.
package notify
