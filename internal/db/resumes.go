package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-screener/internal/types"
)

// SaveResumeProfile inserts a résumé profile, or replaces the stored fields
// when the profile already exists. A zero ID is assigned by the database.
func (db *DB) SaveResumeProfile(ctx context.Context, profile *types.ResumeProfile) error {
	skillsJSON, err := json.Marshal(profile.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	experienceJSON, err := json.Marshal(profile.Experience)
	if err != nil {
		return fmt.Errorf("failed to marshal experience: %w", err)
	}
	educationJSON, err := json.Marshal(profile.Education)
	if err != nil {
		return fmt.Errorf("failed to marshal education: %w", err)
	}
	certificationsJSON, err := json.Marshal(profile.Certifications)
	if err != nil {
		return fmt.Errorf("failed to marshal certifications: %w", err)
	}

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO resume_profiles (id, candidate_id, skills, experience, education,
		                              certifications, summary, experience_level)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     skills = $3,
		     experience = $4,
		     education = $5,
		     certifications = $6,
		     summary = $7,
		     experience_level = $8,
		     updated_at = NOW()
		 RETURNING created_at, updated_at`,
		profile.ID, profile.CandidateID, skillsJSON, experienceJSON, educationJSON,
		certificationsJSON, profile.Summary, string(profile.ExperienceLevel),
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save resume profile: %w", err)
	}
	return nil
}

// GetResumeProfile retrieves a résumé profile by ID
func (db *DB) GetResumeProfile(ctx context.Context, id uuid.UUID) (*types.ResumeProfile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, skills, experience, education, certifications,
		        summary, experience_level, created_at, updated_at
		 FROM resume_profiles WHERE id = $1`,
		id,
	)
	return scanResumeProfile(row)
}

// GetResumeProfileByCandidate retrieves the most recently updated résumé
// profile for a candidate
func (db *DB) GetResumeProfileByCandidate(ctx context.Context, candidateID uuid.UUID) (*types.ResumeProfile, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, skills, experience, education, certifications,
		        summary, experience_level, created_at, updated_at
		 FROM resume_profiles WHERE candidate_id = $1
		 ORDER BY updated_at DESC LIMIT 1`,
		candidateID,
	)
	return scanResumeProfile(row)
}

// DeleteResumeProfile removes a résumé profile. Applications referencing it
// keep their recorded scores; the profile itself is gone.
func (db *DB) DeleteResumeProfile(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM resume_profiles WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete resume profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("resume profile not found: %s", id)
	}
	return nil
}

func scanResumeProfile(row pgx.Row) (*types.ResumeProfile, error) {
	var p types.ResumeProfile
	var skillsJSON, experienceJSON, educationJSON, certificationsJSON []byte
	var level string

	err := row.Scan(&p.ID, &p.CandidateID, &skillsJSON, &experienceJSON, &educationJSON,
		&certificationsJSON, &p.Summary, &level, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume profile: %w", err)
	}

	p.ExperienceLevel = types.ExperienceLevel(level)
	if err := json.Unmarshal(skillsJSON, &p.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(experienceJSON, &p.Experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := json.Unmarshal(educationJSON, &p.Education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}
	if err := json.Unmarshal(certificationsJSON, &p.Certifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certifications: %w", err)
	}

	return &p, nil
}
