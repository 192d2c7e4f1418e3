package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/talent-screener/internal/types"
)

// Match score components.
const (
	// neutralBaseScore is used when a job lists no requirements.
	neutralBaseScore = 50.0
	// exactLevelBonus applies when candidate and job experience levels match.
	exactLevelBonus = 10
	// adjacentLevelBonus applies when the levels differ by exactly one step.
	adjacentLevelBonus = 5
)

// MatchResult is the outcome of scoring a résumé against a job posting.
type MatchResult struct {
	Score               int                      `json:"score"`
	Recommendation      types.RecommendationTier `json:"recommendation"`
	MatchingSkills      int                      `json:"matching_skills"`
	TotalSkills         int                      `json:"total_skills"`
	MatchedRequirements []string                 `json:"matched_requirements,omitempty"`
	MissingRequirements []string                 `json:"missing_requirements,omitempty"`
	ExperienceGap       string                   `json:"experience_gap,omitempty"`
	Suggestions         []string                 `json:"suggestions,omitempty"`
}

// MatchScorer scores a résumé profile against a job posting. The heuristic
// implementation below is the default; a model-backed scorer can be
// substituted without touching the lifecycle engine.
type MatchScorer interface {
	ScoreMatch(profile *types.ResumeProfile, job *types.JobPosting) MatchResult
}

// HeuristicScorer implements MatchScorer using deterministic skill-overlap
// and experience-level rules.
type HeuristicScorer struct{}

// ScoreMatch implements MatchScorer.
func (HeuristicScorer) ScoreMatch(profile *types.ResumeProfile, job *types.JobPosting) MatchResult {
	return ComputeJobMatch(profile, job)
}

// ComputeJobMatch computes a candidate-to-job match score in [0, 100] and a
// recommendation tier. A résumé with no processed skills simply matches
// nothing; the function never fails.
func ComputeJobMatch(profile *types.ResumeProfile, job *types.JobPosting) MatchResult {
	matched, missing := matchRequirements(profile.Skills, job.Requirements)
	total := len(matched) + len(missing)

	base := neutralBaseScore
	if total > 0 {
		base = float64(len(matched)) / float64(total) * 100
	}

	score := int(math.Round(base)) + levelBonus(profile.ExperienceLevel, job.ExperienceLevel)
	if score > 100 {
		score = 100
	}

	return MatchResult{
		Score:               score,
		Recommendation:      types.TierForScore(score),
		MatchingSkills:      len(matched),
		TotalSkills:         total,
		MatchedRequirements: matched,
		MissingRequirements: missing,
		ExperienceGap:       experienceGap(profile.ExperienceLevel, job.ExperienceLevel),
		Suggestions:         buildSuggestions(missing, base),
	}
}

// matchRequirements partitions job requirements into matched and missing.
// A requirement matches when any profile skill contains it as a
// case-insensitive substring, or vice versa, or the two are known synonyms.
func matchRequirements(skills, requirements []string) (matched, missing []string) {
	lowered := make([]string, 0, len(skills))
	for _, skill := range skills {
		if s := strings.ToLower(strings.TrimSpace(skill)); s != "" {
			lowered = append(lowered, s)
		}
	}

	for _, requirement := range requirements {
		req := strings.ToLower(strings.TrimSpace(requirement))
		if req == "" {
			continue
		}
		hit := false
		for _, skill := range lowered {
			if strings.Contains(skill, req) || strings.Contains(req, skill) || synonymousSkills(req, skill) {
				hit = true
				break
			}
		}
		if hit {
			matched = append(matched, requirement)
		} else {
			missing = append(missing, requirement)
		}
	}
	return matched, missing
}

// levelBonus rewards experience-level proximity. Absent levels on either
// side default to mid.
func levelBonus(candidate, required types.ExperienceLevel) int {
	diff := candidate.Rank() - required.Rank()
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return exactLevelBonus
	case 1:
		return adjacentLevelBonus
	}
	return 0
}
