package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/akssingh0102/task-management/internal/config"
	"github.com/akssingh0102/task-management/internal/events"
	"github.com/akssingh0102/task-management/internal/notify"
	"github.com/akssingh0102/task-management/internal/platform/pgnotify"
	"github.com/akssingh0102/task-management/internal/platform/postgres"
	"github.com/akssingh0102/task-management/internal/scheduler"
	"github.com/akssingh0102/task-management/internal/seed"
	"github.com/akssingh0102/task-management/internal/service"
	"github.com/akssingh0102/task-management/internal/service/auth"
	"github.com/akssingh0102/task-management/internal/store"
)

// stores groups the postgres-backed stores shared by every command.
type stores struct {
	users         store.UserStore
	projects      store.ProjectStore
	comments      store.CommentStore
	tasks         store.TaskStore
	logs          store.TaskLogStore
	notifications store.NotificationStore
}

func newStores(db *sql.DB, logger *slog.Logger) stores {
	return stores{
		users:         postgres.NewPostgresUserStore(db, logger),
		projects:      postgres.NewPostgresProjectStore(db, logger),
		comments:      postgres.NewPostgresCommentStore(db, logger),
		tasks:         postgres.NewPostgresTaskStore(db, logger),
		logs:          postgres.NewPostgresTaskLogStore(db, logger),
		notifications: postgres.NewPostgresNotificationStore(db, logger),
	}
}

func (s stores) seedStores() seed.Stores {
	return seed.Stores{
		Users:         s.users,
		Projects:      s.projects,
		Tasks:         s.tasks,
		Comments:      s.comments,
		Notifications: s.notifications,
	}
}

// application holds the dependencies of the serve command and owns the
// connections it must close on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB
	pool   *pgxpool.Pool

	stores      stores
	credentials auth.CredentialService
	users       service.UserService
	tasks       service.TaskService
	projects    service.ProjectService

	broker    events.Broker
	notifier  *notify.Notifier
	scanner   *scheduler.DueDateScanner
	scheduler *scheduler.Scheduler
}

// newApplication wires the services on top of db. It takes ownership of db:
// cleanup closes it, and so does a failed newApplication.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (_ *application, err error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		stores: newStores(db, logger),
	}
	defer func() {
		if err != nil {
			app.cleanup()
		}
	}()

	app.credentials, err = auth.NewCredentialService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize credential service: %w", err)
	}
	logger.Info("credential service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	if err = app.setupBroker(ctx); err != nil {
		return nil, err
	}
	publisher := events.NewPublisher(app.broker, cfg.Broker.Channel, logger)

	app.users = service.NewUserService(app.stores.users, auth.NewBcryptHasher(cfg.Auth.BcryptCost), app.credentials, logger)
	app.projects = service.NewProjectService(
		app.stores.projects,
		app.stores.comments,
		app.stores.tasks,
		app.stores.notifications,
		logger,
	)
	app.tasks, err = service.NewTaskService(service.TaskServiceDeps{
		DB:        db,
		Tasks:     app.stores.tasks,
		Logs:      app.stores.logs,
		Projects:  app.stores.projects,
		Users:     app.stores.users,
		Publisher: publisher,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if cfg.Notifier.Enabled {
		app.notifier = notify.NewNotifier(app.broker, cfg.Broker.Channel, app.stores.notifications, cfg.Notifier, logger)
	}

	app.scanner, err = newScanner(cfg.Scheduler, app.stores, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Scheduler.Enabled {
		app.scheduler, err = scheduler.New(cfg.Scheduler, app.scanner, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create scheduler: %w", err)
		}
	}

	return app, nil
}

func (app *application) setupBroker(ctx context.Context) error {
	switch app.config.Broker.Driver {
	case "memory":
		app.broker = events.NewMemoryBroker(events.DefaultBufferSize, app.logger)
	default:
		pool, err := openPool(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.pool = pool
		app.broker = pgnotify.New(pool, app.config.Broker.ReconnectDelay, app.logger)
	}
	app.logger.Info("change broker initialized",
		slog.String("driver", app.config.Broker.Driver),
		slog.String("channel", app.config.Broker.Channel))
	return nil
}

func newScanner(cfg config.SchedulerConfig, s stores, logger *slog.Logger) (*scheduler.DueDateScanner, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", cfg.Timezone, err)
	}
	return scheduler.NewDueDateScanner(s.tasks, s.notifications, loc, logger), nil
}

// run serves HTTP and runs the background workers until ctx is cancelled
// or one of them fails.
func (app *application) run(ctx context.Context) error {
	srv := newServer(app.config.Server, newRouter(routerDeps{
		logger:      app.logger,
		db:          app.db,
		credentials: app.credentials,
		users:       app.users,
		tasks:       app.tasks,
		projects:    app.projects,
	}))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serve(ctx, srv, app.config.Server.ShutdownTimeout, app.logger)
	})
	if app.notifier != nil {
		g.Go(func() error { return app.notifier.Run(ctx) })
	}
	if app.scheduler != nil {
		g.Go(func() error { return app.scheduler.Run(ctx) })
	}
	return g.Wait()
}

// cleanup releases the pool and the database. It is safe to call more
// than once.
func (app *application) cleanup() {
	if app.pool != nil {
		app.pool.Close()
		app.pool = nil
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
		app.db = nil
	}
	app.logger.Info("application resources released")
}
