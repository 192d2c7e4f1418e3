package types

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the state of an application in its lifecycle.
type ApplicationStatus string

// Application status constants
const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusScreening          ApplicationStatus = "screening"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewed        ApplicationStatus = "interviewed"
	StatusRejected           ApplicationStatus = "rejected"
	StatusHired              ApplicationStatus = "hired"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// Valid reports whether the status is one of the recognized states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusScreening, StatusShortlisted, StatusInterviewScheduled,
		StatusInterviewed, StatusRejected, StatusHired, StatusWithdrawn:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are permitted out of the status.
func (s ApplicationStatus) Terminal() bool {
	switch s {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// RecommendationTier is the coarse bucket of a match score used for ranking candidates.
type RecommendationTier string

// Recommendation tier constants
const (
	TierHighlyRecommended RecommendationTier = "highly_recommended"
	TierRecommended       RecommendationTier = "recommended"
	TierMaybe             RecommendationTier = "maybe"
	TierNotRecommended    RecommendationTier = "not_recommended"
)

// TierForScore buckets a 0-100 match score into a recommendation tier.
func TierForScore(score int) RecommendationTier {
	switch {
	case score >= 80:
		return TierHighlyRecommended
	case score >= 60:
		return TierRecommended
	case score >= 40:
		return TierMaybe
	default:
		return TierNotRecommended
	}
}

// ActorRole identifies who performed an action on an application.
type ActorRole string

// Actor role constants
const (
	RoleCandidate ActorRole = "candidate"
	RoleHR        ActorRole = "hr"
	RoleSystem    ActorRole = "system"
)

// Valid reports whether the role is recognized.
func (r ActorRole) Valid() bool {
	switch r {
	case RoleCandidate, RoleHR, RoleSystem:
		return true
	}
	return false
}

// Actor is the identity performing a transition.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role ActorRole `json:"role"`
}

// SystemActor is the actor recorded for automatic transitions.
var SystemActor = Actor{Role: RoleSystem}

// TimelineEntry is a single record in an application's append-only status log.
type TimelineEntry struct {
	Status    ApplicationStatus `json:"status"`
	ChangedBy Actor             `json:"changed_by"`
	Reason    string            `json:"reason,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Note is a free-text annotation attached to an application by HR.
type Note struct {
	Author    Actor     `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Application ties a candidate's résumé to a job posting and tracks its
// progress through the hiring pipeline. Applications are never hard-deleted;
// withdrawal is a status.
type Application struct {
	ID             uuid.UUID          `json:"id"`
	CandidateID    uuid.UUID          `json:"candidate_id"`
	ResumeID       uuid.UUID          `json:"resume_id"`
	JobID          uuid.UUID          `json:"job_id"`
	Status         ApplicationStatus  `json:"status"`
	Score          int                `json:"score"`
	Recommendation RecommendationTier `json:"recommendation"`
	MatchingSkills int                `json:"matching_skills"`
	TotalSkills    int                `json:"total_skills"`
	InterviewID    *uuid.UUID         `json:"interview_id,omitempty"`
	Timeline       []TimelineEntry    `json:"timeline"`
	Notes          []Note             `json:"notes,omitempty"`
	Version        int                `json:"version"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// CurrentTimelineEntry returns the most recent timeline record, or nil if
// the timeline is empty.
func (a *Application) CurrentTimelineEntry() *TimelineEntry {
	if len(a.Timeline) == 0 {
		return nil
	}
	return &a.Timeline[len(a.Timeline)-1]
}
