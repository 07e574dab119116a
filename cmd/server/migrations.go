package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/jobboard-api/internal/platform/postgres"
)

// runMigrations executes a goose command (up, down, reset, status, version)
// with the migrations embedded in the postgres package.
func runMigrations(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	logger.Info("Executing migrations", "command", command)
	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return err
	}
	logger.Info("Migrations completed", "command", command)
	return nil
}
