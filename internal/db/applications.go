package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-screener/internal/lifecycle"
	"github.com/jonathan/talent-screener/internal/types"
)

var _ lifecycle.Store = (*DB)(nil)

// CreateApplication inserts an application and increments the job's
// application counter in one transaction. A unique partial index on
// (candidate_id, job_id) over non-withdrawn rows enforces the one-live-
// application rule; a violation maps to *lifecycle.DuplicateApplicationError.
func (db *DB) CreateApplication(ctx context.Context, app *types.Application) error {
	timelineJSON, err := json.Marshal(app.Timeline)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}
	notesJSON, err := json.Marshal(app.Notes)
	if err != nil {
		return fmt.Errorf("failed to marshal notes: %w", err)
	}

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO applications (id, candidate_id, resume_id, job_id, status, score,
		                           recommendation, matching_skills, total_skills,
		                           timeline, notes, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at`,
		app.ID, app.CandidateID, app.ResumeID, app.JobID, string(app.Status), app.Score,
		string(app.Recommendation), app.MatchingSkills, app.TotalSkills,
		timelineJSON, notesJSON, app.Version,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &lifecycle.DuplicateApplicationError{
				CandidateID: app.CandidateID,
				JobID:       app.JobID,
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE job_postings
		 SET applications_count = applications_count + 1, updated_at = NOW()
		 WHERE id = $1`,
		app.JobID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment applications count: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit application: %w", err)
	}
	return nil
}

// ApplyTransition persists a status change with optimistic locking: the row
// is updated only if its stored version still matches app.Version, and the
// job counter delta (if any) is applied in the same transaction. The counter
// never goes below zero. A version mismatch maps to
// *lifecycle.ConcurrentUpdateError.
func (db *DB) ApplyTransition(ctx context.Context, app *types.Application, jobDelta int) error {
	timelineJSON, err := json.Marshal(app.Timeline)
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx,
		`UPDATE applications
		 SET status = $1, interview_id = $2, timeline = $3,
		     version = version + 1, updated_at = NOW()
		 WHERE id = $4 AND version = $5`,
		string(app.Status), app.InterviewID, timelineJSON, app.ID, app.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &lifecycle.ConcurrentUpdateError{ApplicationID: app.ID}
	}

	if jobDelta != 0 {
		_, err = tx.Exec(ctx,
			`UPDATE job_postings
			 SET applications_count = GREATEST(0, applications_count + $1), updated_at = NOW()
			 WHERE id = $2`,
			jobDelta, app.JobID,
		)
		if err != nil {
			return fmt.Errorf("failed to adjust applications count: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, resume_id, job_id, status, score, recommendation,
		        matching_skills, total_skills, interview_id, timeline, notes, version,
		        created_at, updated_at
		 FROM applications WHERE id = $1`,
		id,
	)
	return scanApplication(row)
}

// AddNote appends a note to an application's notes array
func (db *DB) AddNote(ctx context.Context, appID uuid.UUID, note types.Note) error {
	noteJSON, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal note: %w", err)
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET notes = notes || $1::jsonb, updated_at = NOW()
		 WHERE id = $2`,
		noteJSON, appID,
	)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &lifecycle.NotFoundError{Resource: "application", ID: appID}
	}
	return nil
}

// ApplicationFilters holds optional filters for listing applications
type ApplicationFilters struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Status      types.ApplicationStatus
	Limit       int
}

// ListApplications retrieves applications with optional filters, highest
// score first so HR sees the strongest candidates at the top
func (db *DB) ListApplications(ctx context.Context, filters ApplicationFilters) ([]types.Application, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, candidate_id, resume_id, job_id, status, score, recommendation,
		       matching_skills, total_skills, interview_id, timeline, notes, version,
		       created_at, updated_at
		FROM applications WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.JobID != uuid.Nil {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.CandidateID != uuid.Nil {
		query += fmt.Sprintf(" AND candidate_id = $%d", argNum)
		args = append(args, filters.CandidateID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(filters.Status))
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY score DESC, created_at ASC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, nil
}

func scanApplication(row pgx.Row) (*types.Application, error) {
	var a types.Application
	var timelineJSON, notesJSON []byte
	var status, recommendation string

	err := row.Scan(&a.ID, &a.CandidateID, &a.ResumeID, &a.JobID, &status, &a.Score,
		&recommendation, &a.MatchingSkills, &a.TotalSkills, &a.InterviewID,
		&timelineJSON, &notesJSON, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	a.Status = types.ApplicationStatus(status)
	a.Recommendation = types.RecommendationTier(recommendation)
	if err := json.Unmarshal(timelineJSON, &a.Timeline); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
	}
	if err := json.Unmarshal(notesJSON, &a.Notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notes: %w", err)
	}

	return &a, nil
}
