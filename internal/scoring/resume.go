// Package scoring computes résumé quality scores and candidate-to-job match
// scores. All functions are pure and safe for concurrent use.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/talent-screener/internal/types"
)

// Per-category point weights and caps for the résumé quality score.
const (
	pointsPerSkill      = 2
	maxSkillPoints      = 30
	pointsPerYear       = 8.0
	maxExperiencePoints = 40
	educationPoints     = 20
	pointsPerCert       = 5
	maxCertPoints       = 10
)

// ComputeResumeScore computes an absolute résumé quality score in [0, 100]
// from the parsed profile. Missing or empty collections contribute zero;
// the function never fails.
func ComputeResumeScore(profile *types.ResumeProfile) int {
	score := math.Min(maxSkillPoints, float64(pointsPerSkill*distinctSkillCount(profile.Skills)))
	score += math.Min(maxExperiencePoints, pointsPerYear*profile.TotalExperienceYears())
	if len(profile.Education) > 0 {
		score += educationPoints
	}
	score += math.Min(maxCertPoints, float64(pointsPerCert*len(profile.Certifications)))

	final := int(math.Round(score))
	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}
	return final
}

// distinctSkillCount counts skills after case-insensitive deduplication,
// ignoring blank entries.
func distinctSkillCount(skills []string) int {
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized != "" {
			seen[normalized] = true
		}
	}
	return len(seen)
}
