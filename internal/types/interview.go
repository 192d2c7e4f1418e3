package types

import (
	"time"

	"github.com/google/uuid"
)

// InterviewMode describes how an interview is conducted.
type InterviewMode string

// Interview mode constants
const (
	InterviewOnsite InterviewMode = "onsite"
	InterviewVideo  InterviewMode = "video"
	InterviewPhone  InterviewMode = "phone"
)

// FeedbackRecommendation is the interviewer's hiring verdict.
type FeedbackRecommendation string

// Feedback recommendation constants
const (
	FeedbackHire   FeedbackRecommendation = "hire"
	FeedbackNoHire FeedbackRecommendation = "no_hire"
	FeedbackHold   FeedbackRecommendation = "hold"
)

// Valid reports whether the recommendation is recognized.
func (r FeedbackRecommendation) Valid() bool {
	switch r {
	case FeedbackHire, FeedbackNoHire, FeedbackHold:
		return true
	}
	return false
}

// Interview is a scheduled interview for an application. Scheduling
// mechanics live outside the lifecycle engine; the engine only records
// the reference on the application.
type Interview struct {
	ID            uuid.UUID     `json:"id"`
	ApplicationID uuid.UUID     `json:"application_id"`
	ScheduledAt   time.Time     `json:"scheduled_at"`
	Mode          InterviewMode `json:"mode"`
	Location      string        `json:"location,omitempty"`
	InterviewerID uuid.UUID     `json:"interviewer_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// InterviewFeedback is the outcome submitted after an interview.
type InterviewFeedback struct {
	InterviewID    uuid.UUID              `json:"interview_id"`
	Recommendation FeedbackRecommendation `json:"recommendation"`
	Comments       string                 `json:"comments,omitempty"`
	SubmittedAt    time.Time              `json:"submitted_at"`
}
