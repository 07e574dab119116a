package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/jobboard-api/internal/domain"
	"github.com/phrazzld/jobboard-api/internal/platform/logger"
	"github.com/phrazzld/jobboard-api/internal/store"
)

// JobService provides job posting and browsing operations.
type JobService interface {
	// CreateJob publishes a new job on behalf of userID.
	// Returns a *domain.ValidationError (errors.Is domain.ErrValidation) for invalid params.
	CreateJob(ctx context.Context, userID uuid.UUID, params domain.JobParams) (*domain.Job, error)

	// ListJobs returns jobs whose title or description matches keyword,
	// newest first, with their company expanded. An empty keyword matches all jobs.
	ListJobs(ctx context.Context, keyword string) ([]*domain.Job, error)

	// GetJob returns a single job with its applications expanded.
	// Returns ErrJobNotFound if the job does not exist.
	GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error)

	// ListJobsByCreator returns the jobs created by userID, newest first,
	// with their company expanded.
	ListJobsByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Job, error)
}

// jobServiceImpl implements the JobService interface
type jobServiceImpl struct {
	jobStore store.JobStore
	logger   *slog.Logger
}

// NewJobService creates a new JobService.
// It returns an error if jobStore is nil.
func NewJobService(jobStore store.JobStore, logger *slog.Logger) (JobService, error) {
	if jobStore == nil {
		return nil, &JobServiceError{
			Operation: "create_service",
			Message:   "jobStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &jobServiceImpl{
		jobStore: jobStore,
		logger:   logger.With("component", "job_service"),
	}, nil
}

// CreateJob implements JobService.CreateJob
func (s *jobServiceImpl) CreateJob(
	ctx context.Context,
	userID uuid.UUID,
	params domain.JobParams,
) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	job, err := domain.NewJob(userID, params)
	if err != nil {
		log.Warn("invalid job posting",
			"error", err,
			"user_id", userID)
		return nil, NewJobServiceError("create_job", "invalid job", err)
	}

	if err := s.jobStore.Create(ctx, job); err != nil {
		log.Error("failed to save job",
			"error", err,
			"user_id", userID,
			"job_id", job.ID)
		return nil, NewJobServiceError("create_job", "failed to save job", err)
	}

	log.Info("job posted",
		"job_id", job.ID,
		"company_id", job.CompanyID,
		"user_id", userID)
	return job, nil
}

// ListJobs implements JobService.ListJobs
func (s *jobServiceImpl) ListJobs(ctx context.Context, keyword string) ([]*domain.Job, error) {
	jobs, err := s.jobStore.Find(ctx, store.JobFilter{
		Keyword:         keyword,
		PopulateCompany: true,
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list jobs",
			"error", err,
			"keyword", keyword)
		return nil, NewJobServiceError("list_jobs", "failed to list jobs", err)
	}
	return jobs, nil
}

// GetJob implements JobService.GetJob
func (s *jobServiceImpl) GetJob(ctx context.Context, jobID uuid.UUID) (*domain.Job, error) {
	job, err := s.jobStore.GetByID(ctx, jobID, store.JobPopulate{Applications: true})
	if err != nil {
		if !store.IsNotFoundError(err) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get job",
				"error", err,
				"job_id", jobID)
		}
		return nil, NewJobServiceError("get_job", "failed to get job", err)
	}
	return job, nil
}

// ListJobsByCreator implements JobService.ListJobsByCreator
func (s *jobServiceImpl) ListJobsByCreator(ctx context.Context, userID uuid.UUID) ([]*domain.Job, error) {
	jobs, err := s.jobStore.Find(ctx, store.JobFilter{
		CreatedBy:       &userID,
		PopulateCompany: true,
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list jobs by creator",
			"error", err,
			"user_id", userID)
		return nil, NewJobServiceError("list_jobs_by_creator", "failed to list jobs", err)
	}
	return jobs, nil
}
