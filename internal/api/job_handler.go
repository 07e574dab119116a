package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/phrazzld/jobboard-api/internal/api/shared"
	"github.com/phrazzld/jobboard-api/internal/platform/logger"
	"github.com/phrazzld/jobboard-api/internal/service"
)

// Messages and parameter names used by the job handlers.
const (
	msgIdentityMissing  = "User ID missing. Authentication required."
	msgInvalidNumbers   = "Salary and Position must be valid numbers."
	msgSomethingMissing = "Something is missing."
	msgInvalidFormat    = "Invalid request format"
	msgJobCreated       = "New job created successfully."
	msgJobNotFound      = "Job not found."
	msgPostJobFailed    = "Server error while posting the job"
	msgListJobsFailed   = "Server error while fetching jobs"
	msgGetJobFailed     = "Server error while fetching the job"
	msgListAdminFailed  = "Server error while fetching admin jobs"
	keywordQueryParam   = "keyword"
	jobIDPathParam      = "id"
)

// JobHandler handles job-related HTTP requests
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// PostJob handles POST /api/v1/job/post requests.
//
// Checks run in order and the first failure answers: identity (401),
// numeric salary and position (400), required fields (400).
func (h *JobHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgIdentityMissing)
		return
	}

	var req CreateJobRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, shared.ErrEmptyBody) && !isFieldMismatch(err) {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidFormat, err)
		return
	}

	if !req.NumbersValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidNumbers)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Debug("job posting rejected", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, msgSomethingMissing)
		return
	}

	params, err := req.toParams()
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgPostJobFailed, err)
		return
	}

	job, err := h.jobService.CreateJob(r.Context(), userID, params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgPostJobFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateJobResponse{
		Message: msgJobCreated,
		Job:     job,
		Success: true,
	})
}

// isFieldMismatch reports whether err only says the body did not fit the
// request shape: an array body, or an object field of the wrong JSON type.
// Such bodies still go through the numeric and required-field checks, with
// the mismatched parts left unset.
func isFieldMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return false
	}
	return typeErr.Field != "" || typeErr.Value == "array"
}

// GetAllJobs handles GET /api/v1/job/get requests.
// The optional keyword query parameter filters on title or description.
func (h *JobHandler) GetAllJobs(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get(keywordQueryParam)

	jobs, err := h.jobService.ListJobs(r.Context(), keyword)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgListJobsFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, JobsResponse{Jobs: nonNil(jobs), Success: true})
}

// GetJobByID handles GET /api/v1/job/get/{id} requests.
// A malformed id is reported like any other lookup failure.
func (h *JobHandler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	jobID, err := getPathUUID(r, jobIDPathParam)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgGetJobFailed, err)
		return
	}

	job, err := h.jobService.GetJob(r.Context(), jobID)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, msgJobNotFound)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgGetJobFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, JobResponse{Job: job, Success: true})
}

// GetAdminJobs handles GET /api/v1/job/getadminjobs requests,
// listing the jobs posted by the authenticated user.
func (h *JobHandler) GetAdminJobs(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, msgIdentityMissing)
		return
	}

	jobs, err := h.jobService.ListJobsByCreator(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgListAdminFailed, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, JobsResponse{Jobs: nonNil(jobs), Success: true})
}
