package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

// Possible application status values
const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Application is a candidate's application to a job.
type Application struct {
	ID          uuid.UUID         `json:"_id"`
	JobID       uuid.UUID         `json:"job"`
	ApplicantID uuid.UUID         `json:"applicant"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
