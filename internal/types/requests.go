package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// CreateJobRequest represents the request to create a job posting.
type CreateJobRequest struct {
	Title           string    `json:"title" validate:"required,min=1"`
	Company         string    `json:"company" validate:"required,min=1"`
	Location        string    `json:"location,omitempty"`
	EmploymentType  string    `json:"employment_type" validate:"required,oneof=full_time part_time contract internship"`
	Description     string    `json:"description,omitempty"`
	Requirements    []string  `json:"requirements"`
	ExperienceLevel string    `json:"experience_level,omitempty" validate:"omitempty,oneof=entry mid senior executive"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// SubmitApplicationRequest represents a candidate's application submission.
type SubmitApplicationRequest struct {
	ResumeID string `json:"resume_id" validate:"required,uuid"`
}

// TransitionRequest represents an HR-driven status change on an application.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason,omitempty"`
}

// AddNoteRequest represents adding a free-text note to an application.
type AddNoteRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ScheduleInterviewRequest represents scheduling an interview for an application.
type ScheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Mode        string    `json:"mode" validate:"required,oneof=onsite video phone"`
	Location    string    `json:"location,omitempty"`
}

// InterviewFeedbackRequest represents interview feedback submission.
type InterviewFeedbackRequest struct {
	Recommendation string `json:"recommendation" validate:"required,oneof=hire no_hire hold"`
	Comments       string `json:"comments,omitempty"`
}

// IngestResumeRequest represents raw résumé text handed to the parser.
type IngestResumeRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SubmitApplicationRequest using the validator.
func (r *SubmitApplicationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the TransitionRequest using the validator.
func (r *TransitionRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the AddNoteRequest using the validator.
func (r *AddNoteRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ScheduleInterviewRequest using the validator.
func (r *ScheduleInterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the InterviewFeedbackRequest using the validator.
func (r *InterviewFeedbackRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the IngestResumeRequest using the validator.
func (r *IngestResumeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
