// Package config handles configuration loading, parsing, and validation
// from an optional YAML file and TASKMGMT_-prefixed environment variables.
// It provides type-safe access to the settings of the HTTP server, database,
// credentials, event broker, notifier and due-date scheduler.
package config
