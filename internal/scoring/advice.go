package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/talent-screener/internal/types"
)

// maxSuggestedSkills limits how many missing requirements are named in a
// single suggestion.
const maxSuggestedSkills = 3

// experienceGap describes the distance between the candidate's level and
// the job's target level. Absent levels default to mid on both sides.
func experienceGap(candidate, required types.ExperienceLevel) string {
	if !candidate.Valid() {
		candidate = types.LevelMid
	}
	if !required.Valid() {
		required = types.LevelMid
	}
	if candidate == required {
		return "Experience requirements fully met"
	}
	return fmt.Sprintf("Experience level: %s, required: %s", candidate, required)
}

// buildSuggestions produces improvement hints for the candidate based on
// missing requirements and the base skill-overlap score.
func buildSuggestions(missing []string, base float64) []string {
	var suggestions []string

	if len(missing) > 0 {
		shown := missing
		if len(shown) > maxSuggestedSkills {
			shown = shown[:maxSuggestedSkills]
		}
		suggestions = append(suggestions,
			"Consider developing skills in: "+strings.Join(shown, ", "))
	}

	if base < 60 {
		suggestions = append(suggestions,
			"Expand technical skill set to better match job requirements")
	}

	return suggestions
}
