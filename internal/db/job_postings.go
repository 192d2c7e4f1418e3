package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-screener/internal/types"
)

// CreateJobPosting inserts a new job posting. A zero ID is assigned by the
// caller so the posting can be referenced immediately.
func (db *DB) CreateJobPosting(ctx context.Context, job *types.JobPosting) error {
	requirementsJSON, err := json.Marshal(job.Requirements)
	if err != nil {
		return fmt.Errorf("failed to marshal requirements: %w", err)
	}

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.Status == "" {
		job.Status = types.JobActive
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO job_postings (id, title, company, location, employment_type,
		                           description, requirements, experience_level, status, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		job.ID, job.Title, job.Company, job.Location, string(job.EmploymentType),
		job.Description, requirementsJSON, string(job.ExperienceLevel), string(job.Status), job.ExpiresAt,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job posting: %w", err)
	}
	return nil
}

// GetJobPosting retrieves a job posting by ID
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, title, company, location, employment_type, description, requirements,
		        experience_level, status, expires_at, applications_count, views_count,
		        created_at, updated_at
		 FROM job_postings WHERE id = $1`,
		id,
	)
	return scanJobPosting(row)
}

// RecordJobView bumps the view counter for a posting. Missing postings are
// ignored; views are advisory.
func (db *DB) RecordJobView(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET views_count = views_count + 1 WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to record job view: %w", err)
	}
	return nil
}

// UpdateJobStatus sets the posting status (active, paused, closed)
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_postings SET status = $1, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job posting not found: %s", id)
	}
	return nil
}

// JobFilters holds optional filters for listing job postings
type JobFilters struct {
	Status          types.JobStatus
	ExperienceLevel types.ExperienceLevel
	Limit           int
}

// ListJobPostings retrieves postings with optional filters, newest first
func (db *DB) ListJobPostings(ctx context.Context, filters JobFilters) ([]types.JobPosting, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, title, company, location, employment_type, description, requirements,
		       experience_level, status, expires_at, applications_count, views_count,
		       created_at, updated_at
		FROM job_postings WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, string(filters.Status))
		argNum++
	}
	if filters.ExperienceLevel != "" {
		query += fmt.Sprintf(" AND experience_level = $%d", argNum)
		args = append(args, string(filters.ExperienceLevel))
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobPosting
	for rows.Next() {
		job, err := scanJobPosting(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

func scanJobPosting(row pgx.Row) (*types.JobPosting, error) {
	var j types.JobPosting
	var requirementsJSON []byte
	var employmentType, level, status string

	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &employmentType,
		&j.Description, &requirementsJSON, &level, &status, &j.ExpiresAt,
		&j.ApplicationsCount, &j.ViewsCount, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}

	j.EmploymentType = types.EmploymentType(employmentType)
	j.ExperienceLevel = types.ExperienceLevel(level)
	j.Status = types.JobStatus(status)
	if err := json.Unmarshal(requirementsJSON, &j.Requirements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}

	return &j, nil
}
