package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akssingh0102/task-management/internal/config"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/platform/postgres"
	"github.com/akssingh0102/task-management/internal/scheduler"
	"github.com/akssingh0102/task-management/internal/seed"
	"github.com/akssingh0102/task-management/internal/service/auth"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "task-management",
		Short:         "Task management API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default ./config.yaml or /etc/task-management/config.yaml)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newScanDueCmd(opts))

	return cmd
}

// bootstrap loads the configuration and installs the application logger.
func (o *rootOptions) bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("broker_driver", cfg.Broker.Driver))
	return cfg, log, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, change notifier and due-date scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.bootstrap()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := openDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}
			app, err := newApplication(ctx, cfg, log, db)
			if err != nil {
				return err
			}
			defer app.cleanup()

			return app.run(ctx)
		},
	}
}

var migrateCommands = []string{
	postgres.MigrateUp,
	postgres.MigrateDown,
	postgres.MigrateReset,
	postgres.MigrateStatus,
	postgres.MigrateVersion,
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|reset|status|version]",
		Short:     "Apply or inspect the database schema migrations",
		Long:      "Runs a goose command against the configured database. Defaults to up.",
		ValidArgs: migrateCommands,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := postgres.MigrateUp
			if len(args) == 1 {
				command = args[0]
			}

			cfg, log, err := opts.bootstrap()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			return postgres.Migrate(cmd.Context(), db, command, log)
		},
	}
}

func newSeedCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample users, projects, tasks, comments and notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.bootstrap()
			if err != nil {
				return err
			}
			fixtures, err := seed.Default()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
			res, err := seed.Apply(cmd.Context(), fixtures, newStores(db, log).seedStores(), hasher, log)
			if errors.Is(err, seed.ErrAlreadySeeded) {
				log.Info("database already seeded, nothing to do")
				return nil
			}
			if err != nil {
				return fmt.Errorf("seed failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d projects, %d tasks, %d comments, %d notifications\n",
				res.Users, res.Projects, res.Tasks, res.Comments, res.Notifications)
			return nil
		},
	}
}

func newScanDueCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan-due",
		Short: "Run the due-tomorrow reminder scan once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.bootstrap()
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			scanner, err := newScanner(cfg.Scheduler, newStores(db, log), log)
			if err != nil {
				return err
			}
			return runScan(cmd.Context(), scanner, cmd.OutOrStdout())
		},
	}
}

func runScan(ctx context.Context, s scheduler.Scanner, w io.Writer) error {
	res, err := s.Scan(ctx)
	if err != nil {
		return fmt.Errorf("due-date scan failed: %w", err)
	}
	fmt.Fprintf(w, "found %d tasks due tomorrow: %d sent, %d skipped, %d failed\n",
		res.Found, res.Sent, res.Skipped, res.Failed)
	return nil
}
