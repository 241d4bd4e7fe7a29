// Package scheduler runs the daily due-date reminder scan.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/store"
)

// ScanResult summarizes one scan.
type ScanResult struct {
	Found   int
	Sent    int
	Skipped int
	Failed  int
}

// DueDateScanner writes a reminder notification for every open task due
// tomorrow.
type DueDateScanner struct {
	tasks         store.TaskStore
	notifications store.NotificationStore
	loc           *time.Location
	now           func() time.Time
	logger        *slog.Logger
}

// Option configures a DueDateScanner.
type Option func(*DueDateScanner)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *DueDateScanner) { s.now = now }
}

// NewDueDateScanner creates a scanner that evaluates "tomorrow" in loc.
// A nil loc means UTC.
func NewDueDateScanner(
	tasks store.TaskStore,
	notifications store.NotificationStore,
	loc *time.Location,
	logger *slog.Logger,
	opts ...Option,
) *DueDateScanner {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &DueDateScanner{
		tasks:         tasks,
		notifications: notifications,
		loc:           loc,
		now:           time.Now,
		logger:        logger.With(slog.String("component", "due_date_scanner")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TomorrowWindow returns the first and last millisecond of the day after
// now, in loc.
func TomorrowWindow(now time.Time, loc *time.Location) (from, to time.Time) {
	local := now.In(loc)
	from = time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
	to = time.Date(local.Year(), local.Month(), local.Day()+1, 23, 59, 59, int(999*time.Millisecond), loc)
	return from, to
}

// Scan finds open tasks due tomorrow and notifies their assignees. Failure
// to notify one task is logged and the scan continues; only a failure to
// list tasks is returned.
func (s *DueDateScanner) Scan(ctx context.Context) (ScanResult, error) {
	from, to := TomorrowWindow(s.now(), s.loc)
	log := s.logger.With(
		slog.Time("window_start", from),
		slog.Time("window_end", to))

	tasks, err := s.tasks.ListDueBetween(ctx, from, to)
	if err != nil {
		log.Error("failed to list tasks due tomorrow", slog.String("error", err.Error()))
		return ScanResult{}, fmt.Errorf("list tasks due tomorrow: %w", err)
	}

	res := ScanResult{Found: len(tasks)}
	for i := range tasks {
		t := &tasks[i]
		if t.AssignedUserID == nil {
			res.Skipped++
			log.Debug("task due tomorrow has no assignee", slog.String("task_id", t.ID.String()))
			continue
		}

		n, err := domain.NewNotification(*t.AssignedUserID, t.ID, domain.DueTomorrowMessage(t.Title))
		if err == nil {
			err = s.notifications.Create(ctx, n)
		}
		if err != nil {
			res.Failed++
			log.Error("failed to send due date reminder",
				slog.String("task_id", t.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		res.Sent++
	}

	log.Info("due date scan finished",
		slog.Int("found", res.Found),
		slog.Int("sent", res.Sent),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed))
	return res, nil
}
