// Package service holds the application operations behind the HTTP API:
// registering and logging in users, creating and updating tasks, filtered
// task queries, and the project, comment and notification endpoints.
//
// Services validate input, check that referenced rows exist, run writes in
// transactions through store.RunInTransaction and announce committed task
// changes through an events.ChangePublisher. Errors are returned wrapped so
// that errors.Is works against both domain and store sentinels.
package service
