package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/jobboard-api/internal/domain"
)

// JobFilter selects jobs for JobStore.Find.
type JobFilter struct {
	// Keyword is a case-insensitive pattern matched against title OR description.
	// An empty keyword matches every job.
	Keyword string

	// CreatedBy, when set, restricts results to jobs created by that user.
	CreatedBy *uuid.UUID

	// PopulateCompany expands each job's company reference into Job.Company.
	PopulateCompany bool
}

// JobPopulate selects which references JobStore.GetByID expands.
type JobPopulate struct {
	Applications bool
}

// JobStore defines the interface for job data persistence.
type JobStore interface {
	// Create saves a new job to the store.
	// Returns validation errors from the domain Job if data is invalid, and
	// ErrInvalidEntity if the referenced company does not exist.
	Create(ctx context.Context, job *domain.Job) error

	// Find returns the jobs matching filter, newest first.
	// Returns an empty (non-nil) slice if nothing matches.
	Find(ctx context.Context, filter JobFilter) ([]*domain.Job, error)

	// GetByID retrieves a job by its unique ID, expanding the requested references.
	// Returns ErrJobNotFound if the job does not exist.
	GetByID(ctx context.Context, id uuid.UUID, populate JobPopulate) (*domain.Job, error)

	// WithTx returns a new JobStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) JobStore
}
