package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/jobboard-api/internal/config"
	"github.com/phrazzld/jobboard-api/internal/platform/postgres"
	"github.com/phrazzld/jobboard-api/internal/redact"
	"github.com/phrazzld/jobboard-api/internal/service"
	"github.com/phrazzld/jobboard-api/internal/service/auth"
	"github.com/phrazzld/jobboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jobStore store.JobStore

	jwtService auth.JWTService
	jobService service.JobService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection is owned by the application from here on and is
// closed by cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.jobStore = postgres.NewPostgresJobStore(db, logger)

	app.jobService, err = service.NewJobService(app.jobStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create job service: %w", err)
	}

	logger.Info("Application initialized successfully",
		"production", cfg.Server.IsProduction())
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", redact.Error(err))
		}
	}

	app.logger.Info("Application shutdown completed")
}
