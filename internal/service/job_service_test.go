package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/jobboard-api/internal/domain"
	"github.com/phrazzld/jobboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockJobStore is a mock implementation of store.JobStore
type MockJobStore struct {
	mock.Mock
}

func (m *MockJobStore) Create(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobStore) Find(ctx context.Context, filter store.JobFilter) ([]*domain.Job, error) {
	args := m.Called(ctx, filter)
	jobs, _ := args.Get(0).([]*domain.Job)
	return jobs, args.Error(1)
}

func (m *MockJobStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
	populate store.JobPopulate,
) (*domain.Job, error) {
	args := m.Called(ctx, id, populate)
	job, _ := args.Get(0).(*domain.Job)
	return job, args.Error(1)
}

func (m *MockJobStore) WithTx(tx *sql.Tx) store.JobStore {
	return m
}

func validParams() domain.JobParams {
	return domain.JobParams{
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		Requirements: "Go,SQL, Docker",
		Salary:       120000,
		Location:     "Remote",
		JobType:      "Full-time",
		Experience:   "Senior",
		Position:     2,
		CompanyID:    uuid.New(),
	}
}

func TestNewJobService(t *testing.T) {
	t.Parallel()

	t.Run("nil store", func(t *testing.T) {
		svc, err := NewJobService(nil, nil)
		assert.Nil(t, svc)
		var svcErr *JobServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_service", svcErr.Operation)
	})

	t.Run("nil logger uses default", func(t *testing.T) {
		svc, err := NewJobService(new(MockJobStore), nil)
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})
}

func TestJobService_CreateJob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		params := validParams()
		mockStore.On("Create", ctx, mock.MatchedBy(func(j *domain.Job) bool {
			return j.CreatedBy == userID && j.CompanyID == params.CompanyID
		})).Return(nil)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		job, err := svc.CreateJob(ctx, userID, params)
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL", " Docker"}, job.Requirements)
		assert.Equal(t, "Senior", job.ExperienceLevel)
		assert.Equal(t, userID, job.CreatedBy)
		assert.Empty(t, job.ApplicationIDs)
		mockStore.AssertExpectations(t)
	})

	t.Run("invalid params are not stored", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		params := validParams()
		params.Title = ""

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		job, err := svc.CreateJob(ctx, userID, params)
		assert.Nil(t, job)
		assert.ErrorIs(t, err, domain.ErrValidation)
		mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		mockStore.On("Create", ctx, mock.Anything).
			Return(store.ErrInvalidEntity)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		job, err := svc.CreateJob(ctx, userID, validParams())
		assert.Nil(t, job)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		var svcErr *JobServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create_job", svcErr.Operation)
	})
}

func TestJobService_ListJobs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passes keyword and expands company", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		want := []*domain.Job{{ID: uuid.New()}}
		mockStore.On("Find", ctx, store.JobFilter{Keyword: "go", PopulateCompany: true}).
			Return(want, nil)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		jobs, err := svc.ListJobs(ctx, "go")
		require.NoError(t, err)
		assert.Equal(t, want, jobs)
		mockStore.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		dbErr := errors.New("connection refused")
		mockStore.On("Find", ctx, mock.Anything).Return(nil, dbErr)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		jobs, err := svc.ListJobs(ctx, "")
		assert.Nil(t, jobs)
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestJobService_GetJob(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("expands applications", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		want := &domain.Job{ID: jobID}
		mockStore.On("GetByID", ctx, jobID, store.JobPopulate{Applications: true}).Return(want, nil)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		job, err := svc.GetJob(ctx, jobID)
		require.NoError(t, err)
		assert.Same(t, want, job)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		mockStore.On("GetByID", ctx, jobID, mock.Anything).Return(nil, store.ErrJobNotFound)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		job, err := svc.GetJob(ctx, jobID)
		assert.Nil(t, job)
		assert.Equal(t, ErrJobNotFound, err)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		mockStore := new(MockJobStore)
		dbErr := errors.New("timeout")
		mockStore.On("GetByID", ctx, jobID, mock.Anything).Return(nil, dbErr)

		svc, err := NewJobService(mockStore, nil)
		require.NoError(t, err)

		_, err = svc.GetJob(ctx, jobID)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrJobNotFound)
	})
}

func TestJobService_ListJobsByCreator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	mockStore := new(MockJobStore)
	mockStore.On("Find", ctx, mock.MatchedBy(func(f store.JobFilter) bool {
		return f.CreatedBy != nil && *f.CreatedBy == userID && f.PopulateCompany && f.Keyword == ""
	})).Return([]*domain.Job{}, nil)

	svc, err := NewJobService(mockStore, nil)
	require.NoError(t, err)

	jobs, err := svc.ListJobsByCreator(ctx, userID)
	require.NoError(t, err)
	assert.NotNil(t, jobs)
	assert.Empty(t, jobs)
	mockStore.AssertExpectations(t)
}

func TestNewJobServiceError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewJobServiceError("op", "msg", nil))
	assert.Equal(t, ErrJobNotFound, NewJobServiceError("op", "msg", store.ErrJobNotFound))

	err := NewJobServiceError("list_jobs", "failed", errors.New("boom"))
	assert.EqualError(t, err, "job service list_jobs failed: failed: boom")
}
