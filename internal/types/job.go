package types

import (
	"time"

	"github.com/google/uuid"
)

// EmploymentType describes the contract type of a job posting.
type EmploymentType string

// Employment type constants
const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

// Valid reports whether the employment type is recognized.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// JobStatus is the lifecycle status of a job posting. Transitions are
// driven by HR actions, never by the scoring engine.
type JobStatus string

// Job status constants
const (
	JobActive JobStatus = "active"
	JobPaused JobStatus = "paused"
	JobClosed JobStatus = "closed"
)

// Valid reports whether the job status is recognized.
func (s JobStatus) Valid() bool {
	switch s {
	case JobActive, JobPaused, JobClosed:
		return true
	}
	return false
}

// JobPosting represents an open position that candidates apply to.
type JobPosting struct {
	ID                uuid.UUID       `json:"id"`
	Title             string          `json:"title"`
	Company           string          `json:"company"`
	Location          string          `json:"location,omitempty"`
	EmploymentType    EmploymentType  `json:"employment_type"`
	Description       string          `json:"description,omitempty"`
	Requirements      []string        `json:"requirements"`
	ExperienceLevel   ExperienceLevel `json:"experience_level,omitempty"`
	Status            JobStatus       `json:"status"`
	ExpiresAt         *time.Time      `json:"expires_at,omitempty"`
	ApplicationsCount int             `json:"applications_count"`
	ViewsCount        int             `json:"views_count"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// IsExpired reports whether the posting is past its expiry timestamp.
func (j *JobPosting) IsExpired() bool {
	return j.ExpiresAt != nil && time.Now().After(*j.ExpiresAt)
}

// AcceptsApplications reports whether new applications may be submitted.
func (j *JobPosting) AcceptsApplications() bool {
	return j.Status == JobActive && !j.IsExpired()
}
