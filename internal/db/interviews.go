package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-screener/internal/types"
)

// CreateInterview inserts an interview record
func (db *DB) CreateInterview(ctx context.Context, interview *types.Interview) error {
	if interview.ID == uuid.Nil {
		interview.ID = uuid.New()
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO interviews (id, application_id, scheduled_at, mode, location, interviewer_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		interview.ID, interview.ApplicationID, interview.ScheduledAt,
		string(interview.Mode), interview.Location, interview.InterviewerID,
	).Scan(&interview.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}
	return nil
}

// GetInterview retrieves an interview by ID
func (db *DB) GetInterview(ctx context.Context, id uuid.UUID) (*types.Interview, error) {
	var i types.Interview
	var mode string

	err := db.pool.QueryRow(ctx,
		`SELECT id, application_id, scheduled_at, mode, location, interviewer_id, created_at
		 FROM interviews WHERE id = $1`,
		id,
	).Scan(&i.ID, &i.ApplicationID, &i.ScheduledAt, &mode, &i.Location, &i.InterviewerID, &i.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	i.Mode = types.InterviewMode(mode)
	return &i, nil
}

// SaveInterviewFeedback stores or replaces the feedback for an interview
func (db *DB) SaveInterviewFeedback(ctx context.Context, feedback *types.InterviewFeedback) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_feedback (interview_id, recommendation, comments)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (interview_id) DO UPDATE SET
		     recommendation = $2,
		     comments = $3,
		     submitted_at = NOW()
		 RETURNING submitted_at`,
		feedback.InterviewID, string(feedback.Recommendation), feedback.Comments,
	).Scan(&feedback.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to save interview feedback: %w", err)
	}
	return nil
}

// GetInterviewFeedback retrieves the feedback for an interview
func (db *DB) GetInterviewFeedback(ctx context.Context, interviewID uuid.UUID) (*types.InterviewFeedback, error) {
	var f types.InterviewFeedback
	var recommendation string

	err := db.pool.QueryRow(ctx,
		`SELECT interview_id, recommendation, comments, submitted_at
		 FROM interview_feedback WHERE interview_id = $1`,
		interviewID,
	).Scan(&f.InterviewID, &recommendation, &f.Comments, &f.SubmittedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview feedback: %w", err)
	}

	f.Recommendation = types.FeedbackRecommendation(recommendation)
	return &f, nil
}
