//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/jobboard-api/internal/domain"
	"github.com/stretchr/testify/require"
)

// MustInsertCompany inserts a company owned by a random user and returns its ID.
// Company names are unique, so concurrent tests should pass distinct names.
func MustInsertCompany(ctx context.Context, t *testing.T, tx *sql.Tx, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO companies (id, name, description, location, user_id)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, name+" builds things", "Remote", uuid.New())
	require.NoError(t, err, "Failed to insert company")

	return id
}

// MustInsertApplication inserts a pending application to jobID and returns its ID.
// createdAt orders applications; pass distinct values to get a stable order.
func MustInsertApplication(
	ctx context.Context,
	t *testing.T,
	tx *sql.Tx,
	jobID uuid.UUID,
	createdAt time.Time,
) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO applications (id, job_id, applicant_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, id, jobID, uuid.New(), string(domain.ApplicationStatusPending), createdAt)
	require.NoError(t, err, "Failed to insert application")

	return id
}
