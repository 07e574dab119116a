package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/phrazzld/jobboard-api/internal/domain"
	"github.com/phrazzld/jobboard-api/internal/platform/logger"
	"github.com/phrazzld/jobboard-api/internal/store"
)

// jobColumns are selected for every job; application_ids carries the ids of
// the job's applications in submission order.
const jobColumns = `
	j.id, j.title, j.description, j.requirements, j.salary, j.location,
	j.job_type, j.experience_level, j.position, j.company_id, j.created_by,
	j.created_at, j.updated_at,
	ARRAY(
		SELECT a.id::text FROM applications a
		WHERE a.job_id = j.id
		ORDER BY a.created_at, a.id
	) AS application_ids`

const companyColumns = `
	c.id, c.name, c.description, c.website, c.location, c.logo, c.user_id,
	c.created_at, c.updated_at`

// PostgresJobStore implements the store.JobStore interface
// using a PostgreSQL database as the storage backend.
type PostgresJobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresJobStore creates a new PostgreSQL implementation of the JobStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresJobStore(db store.DBTX, logger *slog.Logger) *PostgresJobStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresJobStore{
		db:     db,
		logger: logger.With(slog.String("component", "job_store")),
	}
}

// Ensure PostgresJobStore implements store.JobStore interface
var _ store.JobStore = (*PostgresJobStore)(nil)

// WithTx implements store.JobStore.WithTx
func (s *PostgresJobStore) WithTx(tx *sql.Tx) store.JobStore {
	return &PostgresJobStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.JobStore.Create
// Returns store.ErrInvalidEntity if the company does not exist (foreign key violation).
func (s *PostgresJobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return err
	}

	query := `
		INSERT INTO jobs (
			id, title, description, requirements, salary, location, job_type,
			experience_level, position, company_id, created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Description,
		job.Requirements,
		job.Salary,
		job.Location,
		job.JobType,
		job.ExperienceLevel,
		job.Position,
		job.CompanyID,
		job.CreatedBy,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during job creation",
				slog.String("job_id", job.ID.String()),
				slog.String("company_id", job.CompanyID.String()))
			return fmt.Errorf("%w: company with ID %s not found", store.ErrInvalidEntity, job.CompanyID)
		}

		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return store.NewStoreError("job", "create", "failed to insert job", MapError(err))
	}

	log.Info("job created successfully",
		slog.String("job_id", job.ID.String()),
		slog.String("company_id", job.CompanyID.String()),
		slog.String("created_by", job.CreatedBy.String()))
	return nil
}

// Find implements store.JobStore.Find
// Results are ordered newest first; ties on created_at fall back to id.
func (s *PostgresJobStore) Find(ctx context.Context, filter store.JobFilter) ([]*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildFindQuery(filter)

	log.Debug("finding jobs",
		slog.String("keyword", filter.Keyword),
		slog.Bool("by_creator", filter.CreatedBy != nil),
		slog.Bool("populate_company", filter.PopulateCompany))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query jobs", slog.String("error", err.Error()))
		return nil, store.NewStoreError("job", "find", "failed to query jobs", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	m := pgtype.NewMap()
	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job, err := scanJob(rows, m, filter.PopulateCompany)
		if err != nil {
			log.Error("failed to scan job row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("job", "find", "failed to scan job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating job rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("job", "find", "failed to read jobs", MapError(err))
	}

	log.Debug("jobs found", slog.Int("count", len(jobs)))
	return jobs, nil
}

// buildFindQuery renders the SELECT for filter with its positional arguments.
func buildFindQuery(filter store.JobFilter) (string, []any) {
	var (
		b          strings.Builder
		args       []any
		conditions []string
	)

	b.WriteString("SELECT")
	b.WriteString(jobColumns)
	if filter.PopulateCompany {
		b.WriteString(",")
		b.WriteString(companyColumns)
	}
	b.WriteString("\n\tFROM jobs j")
	if filter.PopulateCompany {
		b.WriteString("\n\tJOIN companies c ON c.id = j.company_id")
	}

	// An empty pattern matches everything, so it adds no condition.
	if filter.Keyword != "" {
		args = append(args, filter.Keyword)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(j.title ~* $%d OR j.description ~* $%d)", n, n))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		conditions = append(conditions, fmt.Sprintf("j.created_by = $%d", len(args)))
	}
	if len(conditions) > 0 {
		b.WriteString("\n\tWHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}

	b.WriteString("\n\tORDER BY j.created_at DESC, j.id DESC")
	return b.String(), args
}

// GetByID implements store.JobStore.GetByID
// Returns store.ErrJobNotFound if the job does not exist.
func (s *PostgresJobStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
	populate store.JobPopulate,
) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving job by ID", slog.String("job_id", id.String()))

	query := "SELECT" + jobColumns + "\n\tFROM jobs j\n\tWHERE j.id = $1"

	job, err := scanJob(s.db.QueryRowContext(ctx, query, id), pgtype.NewMap(), false)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("job not found", slog.String("job_id", id.String()))
			return nil, store.ErrJobNotFound
		}
		log.Error("failed to get job by ID",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return nil, store.NewStoreError("job", "get", "failed to load job", MapError(err))
	}

	if populate.Applications {
		apps, err := s.applicationsForJob(ctx, id)
		if err != nil {
			log.Error("failed to load job applications",
				slog.String("error", err.Error()),
				slog.String("job_id", id.String()))
			return nil, store.NewStoreError("job", "get", "failed to load applications", MapError(err))
		}
		job.Applications = apps
		job.ApplicationIDs = make([]uuid.UUID, 0, len(apps))
		for _, a := range apps {
			job.ApplicationIDs = append(job.ApplicationIDs, a.ID)
		}
	}

	log.Debug("job retrieved successfully", slog.String("job_id", id.String()))
	return job, nil
}

// applicationsForJob loads the applications submitted to a job, oldest first.
// The result is never nil.
func (s *PostgresJobStore) applicationsForJob(ctx context.Context, jobID uuid.UUID) ([]*domain.Application, error) {
	query := `
		SELECT id, job_id, applicant_id, status, created_at, updated_at
		FROM applications
		WHERE job_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	apps := make([]*domain.Application, 0)
	for rows.Next() {
		var (
			app    domain.Application
			status string
		)
		if err := rows.Scan(&app.ID, &app.JobID, &app.ApplicantID, &status, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, err
		}
		app.Status = domain.ApplicationStatus(status)
		apps = append(apps, &app)
	}
	return apps, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanJob reads a row selected with jobColumns, followed by companyColumns
// when withCompany is set.
func scanJob(row rowScanner, m *pgtype.Map, withCompany bool) (*domain.Job, error) {
	var (
		job            domain.Job
		applicationIDs []string
		company        domain.Company
	)

	dest := []any{
		&job.ID,
		&job.Title,
		&job.Description,
		m.SQLScanner(&job.Requirements),
		&job.Salary,
		&job.Location,
		&job.JobType,
		&job.ExperienceLevel,
		&job.Position,
		&job.CompanyID,
		&job.CreatedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
		m.SQLScanner(&applicationIDs),
	}
	if withCompany {
		dest = append(dest,
			&company.ID,
			&company.Name,
			&company.Description,
			&company.Website,
			&company.Location,
			&company.Logo,
			&company.UserID,
			&company.CreatedAt,
			&company.UpdatedAt,
		)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	job.ApplicationIDs = make([]uuid.UUID, 0, len(applicationIDs))
	for _, raw := range applicationIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid application id %q: %w", raw, err)
		}
		job.ApplicationIDs = append(job.ApplicationIDs, id)
	}
	if job.Requirements == nil {
		job.Requirements = []string{}
	}
	if withCompany {
		job.Company = &company
	}

	return &job, nil
}
