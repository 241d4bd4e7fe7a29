// Package query turns a sparse task search Filter into a single
// parameterized SQL statement.
//
// The package is pure: it performs no I/O. Existence checks for referenced
// projects and users belong to the caller, which runs them before executing
// the rendered Statement.
//
// Every filter value is bound as a positional argument. The one exception is
// the due-date window, which is rendered from a validated int into an
// interval literal. A comment keyword joins the comments table, so a task
// with several matching comments appears once per match.
package query
