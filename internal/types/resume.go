// Package types provides type definitions for structured data used throughout the talent-screener system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceLevel is a coarse seniority classification derived from a candidate's work history.
type ExperienceLevel string

// Experience level constants
const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

// Valid reports whether the level is one of the recognized classifications.
func (l ExperienceLevel) Valid() bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

// Rank maps a level to its numeric position (entry=1 .. executive=4).
// Unrecognized or absent levels rank as mid.
func (l ExperienceLevel) Rank() int {
	switch l {
	case LevelEntry:
		return 1
	case LevelMid:
		return 2
	case LevelSenior:
		return 3
	case LevelExecutive:
		return 4
	}
	return 2
}

// LevelForYears classifies total years of experience into a level.
func LevelForYears(years float64) ExperienceLevel {
	switch {
	case years < 2:
		return LevelEntry
	case years < 5:
		return LevelMid
	case years < 10:
		return LevelSenior
	default:
		return LevelExecutive
	}
}

// ExperienceEntry is a single position in a candidate's work history.
// Dates use the "YYYY-MM" format; EndDate is empty when Current is set.
type ExperienceEntry struct {
	Company       string  `json:"company"`
	Position      string  `json:"position"`
	StartDate     string  `json:"start_date,omitempty"`
	EndDate       string  `json:"end_date,omitempty"`
	DurationYears float64 `json:"duration_years"`
	Current       bool    `json:"current,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// EducationEntry is a single education record on a résumé.
type EducationEntry struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// ResumeProfile holds the parsed fields of a candidate's résumé.
// It is replaced wholesale when the résumé is reprocessed.
type ResumeProfile struct {
	ID              uuid.UUID         `json:"id"`
	CandidateID     uuid.UUID         `json:"candidate_id"`
	Skills          []string          `json:"skills"`
	Experience      []ExperienceEntry `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	Certifications  []string          `json:"certifications"`
	Summary         string            `json:"summary,omitempty"`
	ExperienceLevel ExperienceLevel   `json:"experience_level,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TotalExperienceYears sums the duration of all experience entries.
// Negative durations are treated as zero.
func (p *ResumeProfile) TotalExperienceYears() float64 {
	total := 0.0
	for _, exp := range p.Experience {
		if exp.DurationYears > 0 {
			total += exp.DurationYears
		}
	}
	return total
}
