package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/akssingh0102/task-management/internal/config"
)

// Scanner is the job run on each tick.
type Scanner interface {
	Scan(ctx context.Context) (ScanResult, error)
}

// Scheduler runs a Scanner on a cron schedule.
type Scheduler struct {
	schedule cron.Schedule
	spec     string
	loc      *time.Location
	scanner  Scanner
	logger   *slog.Logger
}

// New parses cfg and returns a Scheduler for scanner.
func New(cfg config.SchedulerConfig, scanner Scanner, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	schedule, err := cron.ParseStandard(cfg.DueScanCron)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", cfg.DueScanCron, err)
	}
	return &Scheduler{
		schedule: schedule,
		spec:     cfg.DueScanCron,
		loc:      loc,
		scanner:  scanner,
		logger:   logger.With(slog.String("component", "scheduler")),
	}, nil
}

// Next reports when the job would run after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.loc))
}

// Run starts the cron loop and blocks until ctx is cancelled. A running
// scan is allowed to finish before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	cl := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() {
		if _, err := s.scanner.Scan(ctx); err != nil {
			s.logger.Error("scheduled scan failed", slog.String("error", err.Error()))
		}
	}))

	c.Start()
	s.logger.Info("scheduler started",
		slog.String("spec", s.spec),
		slog.String("timezone", s.loc.String()),
		slog.Time("next_run", s.Next(time.Now())))

	<-ctx.Done()
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err.Error()}, keysAndValues...)...)
}
