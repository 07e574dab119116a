package domain

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job-specific validation errors
var (
	ErrJobIDEmpty           = errors.New("job ID cannot be empty")
	ErrJobCreatorEmpty      = errors.New("job creator cannot be empty")
	ErrJobCompanyEmpty      = errors.New("job company cannot be empty")
	ErrJobFieldEmpty        = errors.New("job field cannot be empty")
	ErrJobNumberNotFinite   = errors.New("job numeric field must be a finite number")
	ErrJobRequirementsEmpty = errors.New("job requirements cannot be empty")
)

// RequirementsSeparator splits the requirements input into individual entries.
const RequirementsSeparator = ","

// JobParams carries the caller-supplied fields of a new job posting.
type JobParams struct {
	Title        string
	Description  string
	Requirements string // comma-separated
	Salary       float64
	Location     string
	JobType      string
	Experience   string
	Position     float64
	CompanyID    uuid.UUID
}

// Job is a posting published by a recruiter on behalf of a company.
//
// Company and Applications are only set when the corresponding reference has
// been expanded by the store; otherwise only CompanyID and ApplicationIDs are.
type Job struct {
	ID              uuid.UUID
	Title           string
	Description     string
	Requirements    []string
	Salary          float64
	Location        string
	JobType         string
	ExperienceLevel string
	Position        float64
	CompanyID       uuid.UUID
	Company         *Company
	CreatedBy       uuid.UUID
	ApplicationIDs  []uuid.UUID
	Applications    []*Application
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewJob creates a Job created by createdBy from the given params.
// Requirements are split on commas exactly as given: entries are not trimmed
// and empty entries are kept.
// Returns an error if validation fails.
func NewJob(createdBy uuid.UUID, p JobParams) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:              uuid.New(),
		Title:           p.Title,
		Description:     p.Description,
		Requirements:    SplitRequirements(p.Requirements),
		Salary:          p.Salary,
		Location:        p.Location,
		JobType:         p.JobType,
		ExperienceLevel: p.Experience,
		Position:        p.Position,
		CompanyID:       p.CompanyID,
		CreatedBy:       createdBy,
		ApplicationIDs:  []uuid.UUID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// SplitRequirements splits a comma-separated requirements string.
// "a,b," yields ["a" "b" ""].
func SplitRequirements(raw string) []string {
	return strings.Split(raw, RequirementsSeparator)
}

// Validate checks if the Job has valid data.
// Returns a *ValidationError naming the first invalid field.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return NewValidationError("id", "is required", ErrJobIDEmpty)
	}
	if j.CreatedBy == uuid.Nil {
		return NewValidationError("created_by", "is required", ErrJobCreatorEmpty)
	}
	if j.CompanyID == uuid.Nil {
		return NewValidationError("company", "is required", ErrJobCompanyEmpty)
	}

	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", j.Title},
		{"description", j.Description},
		{"location", j.Location},
		{"jobType", j.JobType},
		{"experienceLevel", j.ExperienceLevel},
	} {
		if f.value == "" {
			return NewValidationError(f.name, "is required", ErrJobFieldEmpty)
		}
	}

	if len(j.Requirements) == 0 {
		return NewValidationError("requirements", "is required", ErrJobRequirementsEmpty)
	}
	if !isFinite(j.Salary) {
		return NewValidationError("salary", "must be a finite number", ErrJobNumberNotFinite)
	}
	if !isFinite(j.Position) {
		return NewValidationError("position", "must be a finite number", ErrJobNumberNotFinite)
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// jobJSON is the wire shape of a Job. Company and Applications hold either the
// referenced IDs or the expanded records.
type jobJSON struct {
	ID              uuid.UUID `json:"_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Requirements    []string  `json:"requirements"`
	Salary          float64   `json:"salary"`
	Location        string    `json:"location"`
	JobType         string    `json:"jobType"`
	ExperienceLevel string    `json:"experienceLevel"`
	Position        float64   `json:"position"`
	Company         any       `json:"company"`
	CreatedBy       uuid.UUID `json:"created_by"`
	Applications    any       `json:"applications"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MarshalJSON renders the job with its company and applications either as
// IDs or, when expanded, as full records.
func (j *Job) MarshalJSON() ([]byte, error) {
	out := jobJSON{
		ID:              j.ID,
		Title:           j.Title,
		Description:     j.Description,
		Requirements:    j.Requirements,
		Salary:          j.Salary,
		Location:        j.Location,
		JobType:         j.JobType,
		ExperienceLevel: j.ExperienceLevel,
		Position:        j.Position,
		Company:         j.CompanyID,
		CreatedBy:       j.CreatedBy,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}
	if out.Requirements == nil {
		out.Requirements = []string{}
	}

	if j.Company != nil {
		out.Company = j.Company
	}

	switch {
	case j.Applications != nil:
		out.Applications = j.Applications
	case j.ApplicationIDs != nil:
		out.Applications = j.ApplicationIDs
	default:
		out.Applications = []uuid.UUID{}
	}

	return json.Marshal(out)
}
