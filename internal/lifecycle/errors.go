// Package lifecycle enforces the application status state machine and its
// side effects: timeline logging, job counter updates, and notification
// dispatch on transitions.
package lifecycle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/types"
)

// InvalidTransitionError indicates an attempted move to a state not
// reachable from the application's current state.
type InvalidTransitionError struct {
	From types.ApplicationStatus
	To   types.ApplicationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// InvalidStatusError indicates an unrecognized status value.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid application status: %q", e.Status)
}

// DuplicateApplicationError indicates a second non-withdrawn application
// for the same (candidate, job) pair.
type DuplicateApplicationError struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
}

func (e *DuplicateApplicationError) Error() string {
	return fmt.Sprintf("candidate %s already applied to job %s", e.CandidateID, e.JobID)
}

// NotFoundError indicates a missing résumé, job, application, or interview
// referenced by an operation.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// JobNotOpenError indicates a submission against a posting that is paused,
// closed, or expired.
type JobNotOpenError struct {
	JobID  uuid.UUID
	Status types.JobStatus
}

func (e *JobNotOpenError) Error() string {
	return fmt.Sprintf("job %s is not accepting applications (status: %s)", e.JobID, e.Status)
}

// ConcurrentUpdateError indicates the application was modified by another
// writer between read and write. The operation can be retried.
type ConcurrentUpdateError struct {
	ApplicationID uuid.UUID
}

func (e *ConcurrentUpdateError) Error() string {
	return fmt.Sprintf("application %s was concurrently modified", e.ApplicationID)
}
