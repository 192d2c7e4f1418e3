package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-screener/internal/notify"
	"github.com/jonathan/talent-screener/internal/scoring"
	"github.com/jonathan/talent-screener/internal/types"
)

// rejectionReasonNoHire is recorded when interview feedback recommends
// against hiring.
const rejectionReasonNoHire = "Did not meet interview requirements"

// Store is the persistence boundary for the lifecycle engine. Read methods
// return (nil, nil) when the record does not exist. CreateApplication and
// ApplyTransition must apply the application write and the job counter
// update atomically relative to concurrent writers on the same rows;
// CreateApplication returns *DuplicateApplicationError when a non-withdrawn
// application already exists for the (candidate, job) pair, and
// ApplyTransition returns *ConcurrentUpdateError on a version conflict.
type Store interface {
	GetResumeProfile(ctx context.Context, id uuid.UUID) (*types.ResumeProfile, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error)
	CreateApplication(ctx context.Context, app *types.Application) error
	ApplyTransition(ctx context.Context, app *types.Application, jobDelta int) error
	AddNote(ctx context.Context, appID uuid.UUID, note types.Note) error
}

// Engine drives application lifecycle operations: submission, status
// transitions, interview scheduling and feedback, and notes.
type Engine struct {
	store      Store
	scorer     scoring.MatchScorer
	dispatcher notify.Dispatcher
	now        func() time.Time
}

// NewEngine creates a lifecycle engine.
func NewEngine(store Store, scorer scoring.MatchScorer, dispatcher notify.Dispatcher) *Engine {
	return &Engine{
		store:      store,
		scorer:     scorer,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Submit creates a new application in the submitted state with a computed
// match score, increments the job's application counter, and returns the
// notification intents for the creation.
func (e *Engine) Submit(ctx context.Context, candidateID, jobID, resumeID uuid.UUID, actor types.Actor) (*types.Application, []notify.NotificationIntent, error) {
	resume, err := e.store.GetResumeProfile(ctx, resumeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load resume: %w", err)
	}
	if resume == nil {
		return nil, nil, &NotFoundError{Resource: "resume", ID: resumeID}
	}

	job, err := e.store.GetJobPosting(ctx, jobID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, nil, &NotFoundError{Resource: "job", ID: jobID}
	}
	if !job.AcceptsApplications() {
		return nil, nil, &JobNotOpenError{JobID: jobID, Status: job.Status}
	}

	result := e.scorer.ScoreMatch(resume, job)
	now := e.now()

	app := &types.Application{
		ID:             uuid.New(),
		CandidateID:    candidateID,
		ResumeID:       resumeID,
		JobID:          jobID,
		Status:         types.StatusSubmitted,
		Score:          result.Score,
		Recommendation: result.Recommendation,
		MatchingSkills: result.MatchingSkills,
		TotalSkills:    result.TotalSkills,
		Timeline: []types.TimelineEntry{
			{Status: types.StatusSubmitted, ChangedBy: actor, Timestamp: now},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := e.store.CreateApplication(ctx, app); err != nil {
		return nil, nil, err
	}

	return app, e.dispatcher.OnTransition(app, "", types.StatusSubmitted), nil
}

// Transition moves an application to a new status, appending a timeline
// record and applying counter side effects atomically. It returns the
// updated application and the notification intents for the transition.
func (e *Engine) Transition(ctx context.Context, appID uuid.UUID, to types.ApplicationStatus, actor types.Actor, reason string) (*types.Application, []notify.NotificationIntent, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	return e.transition(ctx, app, to, actor, reason)
}

// ScheduleInterview records the interview reference on the application and
// transitions it to interview_scheduled. The Interview entity must already
// exist; scheduling mechanics live outside this engine.
func (e *Engine) ScheduleInterview(ctx context.Context, appID, interviewID uuid.UUID, actor types.Actor) (*types.Application, []notify.NotificationIntent, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, nil, err
	}

	interview, err := e.store.GetInterview(ctx, interviewID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load interview: %w", err)
	}
	if interview == nil {
		return nil, nil, &NotFoundError{Resource: "interview", ID: interviewID}
	}

	app.InterviewID = &interviewID
	return e.transition(ctx, app, types.StatusInterviewScheduled, actor, "")
}

// RecordInterviewFeedback marks the application interviewed and applies the
// feedback verdict: hire auto-transitions to hired, no_hire auto-transitions
// to rejected, hold leaves the application in interviewed.
func (e *Engine) RecordInterviewFeedback(ctx context.Context, appID uuid.UUID, feedback types.InterviewFeedback, actor types.Actor) (*types.Application, []notify.NotificationIntent, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, nil, err
	}

	var intents []notify.NotificationIntent

	if app.Status == types.StatusInterviewScheduled {
		app, intents, err = e.transition(ctx, app, types.StatusInterviewed, actor, "")
		if err != nil {
			return nil, nil, err
		}
	}
	if app.Status != types.StatusInterviewed {
		return nil, nil, &InvalidTransitionError{From: app.Status, To: types.StatusInterviewed}
	}

	var followup []notify.NotificationIntent
	switch feedback.Recommendation {
	case types.FeedbackHire:
		app, followup, err = e.transition(ctx, app, types.StatusHired, types.SystemActor, "")
	case types.FeedbackNoHire:
		app, followup, err = e.transition(ctx, app, types.StatusRejected, types.SystemActor, rejectionReasonNoHire)
	case types.FeedbackHold:
		// Stays in interviewed pending a decision.
	default:
		return nil, nil, fmt.Errorf("unrecognized feedback recommendation: %q", feedback.Recommendation)
	}
	if err != nil {
		return nil, nil, err
	}

	return app, append(intents, followup...), nil
}

// AddNote appends a free-text note to an application.
func (e *Engine) AddNote(ctx context.Context, appID uuid.UUID, text string, actor types.Actor) (*types.Note, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, err
	}

	note := types.Note{Author: actor, Text: text, CreatedAt: e.now()}
	if err := e.store.AddNote(ctx, app.ID, note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &note, nil
}

func (e *Engine) loadApplication(ctx context.Context, appID uuid.UUID) (*types.Application, error) {
	app, err := e.store.GetApplication(ctx, appID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, &NotFoundError{Resource: "application", ID: appID}
	}
	return app, nil
}

func (e *Engine) transition(ctx context.Context, app *types.Application, to types.ApplicationStatus, actor types.Actor, reason string) (*types.Application, []notify.NotificationIntent, error) {
	if err := ValidateTransition(app.Status, to); err != nil {
		return nil, nil, err
	}

	from := app.Status
	now := e.now()

	app.Status = to
	app.Timeline = append(app.Timeline, types.TimelineEntry{
		Status:    to,
		ChangedBy: actor,
		Reason:    reason,
		Timestamp: now,
	})
	app.UpdatedAt = now

	jobDelta := 0
	if to == types.StatusWithdrawn {
		jobDelta = -1
	}

	if err := e.store.ApplyTransition(ctx, app, jobDelta); err != nil {
		return nil, nil, err
	}
	app.Version++

	return app, e.dispatcher.OnTransition(app, from, to), nil
}
