package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/spf13/cobra"

	"github.com/jobtasks/dashboard/internal/adapters/auth"
	"github.com/jobtasks/dashboard/internal/adapters/calendar"
	"github.com/jobtasks/dashboard/internal/adapters/export"
	"github.com/jobtasks/dashboard/internal/adapters/repository"
	"github.com/jobtasks/dashboard/internal/application/state"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
	"github.com/jobtasks/dashboard/internal/infrastructure/database"
	"github.com/jobtasks/dashboard/internal/infrastructure/logger"
	"github.com/jobtasks/dashboard/internal/infrastructure/metrics"
	"github.com/jobtasks/dashboard/internal/infrastructure/server"
	"github.com/jobtasks/dashboard/internal/ports"
)

// Version is set at build time with -ldflags "-X .../commands.Version=...".
var Version = "dev"

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		Long:  "Start the API server. Without database or JWT settings it still starts and answers 503 on the API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage PostgreSQL schema migrations (up, down, version). The sqlite store migrates itself on startup.",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), func(m *migrate.Migrate) error { return m.Up() })
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), func(m *migrate.Migrate) error { return m.Down() })
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigration(cmd.OutOrStdout(), func(m *migrate.Migrate) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Current migration version: %d\nDirty: %t\n", version, dirty)
				return nil
			})
		},
	})

	return migrateCmd
}

// NewTokenCommand mints session tokens for local use.
func NewTokenCommand() *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Session token commands",
	}

	issueCmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a bearer token for a user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, _ := cmd.Flags().GetString("user")
			email, _ := cmd.Flags().GetString("email")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			token, err := auth.NewTokenService(cfg.JWT).Issue(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issueCmd.Flags().String("user", "", "User id placed in the token subject (required)")
	issueCmd.Flags().String("email", "", "User email")
	_ = issueCmd.MarkFlagRequired("user")

	tokenCmd.AddCommand(issueCmd)
	return tokenCmd
}

// NewExportCommand writes a user's tasks to a file.
func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's tasks",
	}

	for _, format := range []string{"csv", "pdf"} {
		format := format
		cmd := &cobra.Command{
			Use:   format,
			Short: "Export tasks as " + format,
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, _ := cmd.Flags().GetString("user")
				out, _ := cmd.Flags().GetString("out")
				return runExport(cmd.OutOrStdout(), format, userID, out)
			},
		}
		cmd.Flags().String("user", "", "User id whose tasks are exported (required)")
		cmd.Flags().String("out", "", "Output file; defaults to the download name, - for stdout")
		_ = cmd.MarkFlagRequired("user")
		exportCmd.AddCommand(cmd)
	}
	return exportCmd
}

// NewCalendarCommand lists upcoming events with a Google access token.
func NewCalendarCommand() *cobra.Command {
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Calendar commands",
	}

	upcomingCmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List upcoming events",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			events, err := calendar.NewClient(cfg.Calendar).Upcoming(cmd.Context(), token)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No upcoming events")
			}
			for _, ev := range events {
				when := ev.Start.Local().Format("Mon Jan 2 15:04")
				if ev.AllDay {
					when = ev.Start.Format("Mon Jan 2") + " (all day)"
				}
				fmt.Fprintf(w, "%s  %s\n", when, ev.Summary)
			}
			return nil
		},
	}
	upcomingCmd.Flags().String("token", os.Getenv("CALENDAR_ACCESS_TOKEN"), "Google OAuth access token")

	calendarCmd.AddCommand(upcomingCmd)
	return calendarCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dashboard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Task Dashboard %s\n", Version)
		},
	}
}

// storage is the backing store selected by the database driver.
type storage struct {
	tasks  ports.TaskRepository
	docs   ports.DocumentRepository
	health func(ctx context.Context) error
	stats  func() map[string]interface{}
	close  func() error
}

// openStorage connects the configured store. With migrateUp set, pending
// Postgres migrations are applied first.
func openStorage(cfg config.DatabaseConfig, migrateUp bool) (*storage, error) {
	if cfg.Driver == config.DriverSQLite {
		db, err := database.NewEmbedded(cfg, repository.Models()...)
		if err != nil {
			return nil, err
		}
		return &storage{
			tasks:  repository.NewGormTaskRepository(db.Gorm),
			docs:   repository.NewGormDocumentRepository(db.Gorm),
			health: db.HealthCheck,
			close:  db.Close,
		}, nil
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if migrateUp {
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &storage{
		tasks:  repository.NewTaskRepository(db.DB),
		docs:   repository.NewDocumentRepository(db.DB),
		health: db.HealthCheck,
		stats:  db.GetConnectionInfo,
		close:  db.Close,
	}, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	m := metrics.New()
	deps := server.Dependencies{
		Tokens:   auth.NewTokenService(cfg.JWT),
		Calendar: calendar.NewClient(cfg.Calendar),
		Metrics:  m,
	}

	for component, err := range cfg.Readiness() {
		appLogger.Warnw("Component not configured", "component", component, "error", err)
	}

	if cfg.Database.Configured() == nil {
		store, err := openStorage(cfg.Database, true)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.close()

		deps.States = state.NewRegistry(store.tasks, store.docs, appLogger, m)
		deps.HealthCheck = store.health
		deps.DatabaseStats = store.stats
	}

	srv := server.New(cfg, deps, appLogger)

	appLogger.Infow("Starting task dashboard API",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"driver", cfg.Database.Driver,
		"version", Version,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runMigration(w io.Writer, step func(m *migrate.Migrate) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Database.Driver == config.DriverSQLite {
		fmt.Fprintln(w, "The sqlite store migrates itself on startup; nothing to do")
		return nil
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	m, err := db.Migrator()
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = step(m)
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(w, "No migrations to run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(w, "Migration completed successfully")
	return nil
}

func runExport(w io.Writer, format, userID, out string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Database.Configured(); err != nil {
		return err
	}

	store, err := openStorage(cfg.Database, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.close()

	st := state.New(userID, store.tasks, store.docs, logger.NewNop(), nil)
	if err := st.Tasks.Load(context.Background()); err != nil {
		return err
	}

	now := time.Now()
	if out == "" {
		out = export.CSVFilename(now)
		if format == "pdf" {
			out = export.PDFFilename(now)
		}
	}

	dst := w
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		dst = f
	}

	tasks := st.Tasks.Tasks()
	if format == "pdf" {
		err = export.WritePDF(dst, tasks, now)
	} else {
		err = export.WriteCSV(dst, tasks)
	}
	if err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(w, "Exported %d tasks to %s\n", len(tasks), out)
	}
	return nil
}
