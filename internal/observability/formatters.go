// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/talent-screener/internal/scoring"
	"github.com/jonathan/talent-screener/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResumeProfile outputs a human-readable summary of a parsed résumé.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.ExperienceLevel != "" {
		sb.WriteString(fmt.Sprintf("Level:      %s\n", profile.ExperienceLevel))
	}
	sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", profile.TotalExperienceYears()))
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills (%d):\n", len(profile.Skills)))
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(profile.Experience) > 0 {
		sb.WriteString("Positions:\n")
		count := min(len(profile.Experience), 3)
		for i := 0; i < count; i++ {
			entry := profile.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", entry.Position))
			if entry.Company != "" {
				sb.WriteString(fmt.Sprintf(" at %s", entry.Company))
			}
			sb.WriteString("\n")
		}
		if len(profile.Experience) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Experience)-3))
		}
		sb.WriteString("\n")
	}

	if len(profile.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, entry := range profile.Education {
			sb.WriteString(fmt.Sprintf("  • %s", entry.Institution))
			if entry.Degree != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", entry.Degree))
			}
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSED RESUME PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeScore outputs the standalone quality score for a profile.
func (p *Printer) PrintResumeScore(profile *types.ResumeProfile, score int) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %d / 100\n\n", score))
	sb.WriteString(fmt.Sprintf("Skills listed:      %d\n", len(profile.Skills)))
	sb.WriteString(fmt.Sprintf("Years experience:   %.1f\n", profile.TotalExperienceYears()))
	sb.WriteString(fmt.Sprintf("Education records:  %d\n", len(profile.Education)))
	sb.WriteString(fmt.Sprintf("Certifications:     %d", len(profile.Certifications)))

	p.printBox("RESUME QUALITY SCORE", sb.String())
}

// PrintMatchResult outputs the score of one résumé against one posting.
func (p *Printer) PrintMatchResult(job *types.JobPosting, result scoring.MatchResult) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:    %s at %s\n", job.Title, job.Company))
	sb.WriteString(fmt.Sprintf("Score:  %d / 100 (%s)\n", result.Score, result.Recommendation))
	sb.WriteString(fmt.Sprintf("Skills: %d of %d requirements matched\n", result.MatchingSkills, result.TotalSkills))

	if len(result.MissingRequirements) > 0 {
		sb.WriteString("\nMissing:\n")
		count := min(len(result.MissingRequirements), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.MissingRequirements[i]))
		}
		if len(result.MissingRequirements) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.MissingRequirements)-maxItemsToShow))
		}
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, suggestion := range result.Suggestions {
			sb.WriteString(fmt.Sprintf("  • %s\n", suggestion))
		}
	}

	p.printBox("JOB MATCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedJobs outputs the top matches of a résumé against many postings.
func (p *Printer) PrintRankedJobs(ranked []scoring.RankedJob) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs scored: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := ranked[i]
		title := entry.Job.Title
		if entry.Job.Company != "" {
			title += " at " + entry.Job.Company
		}
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %d (%s)\n", entry.Result.Score, entry.Result.Recommendation))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", len(ranked)-maxItemsToShow))
	}

	p.printBox("TOP JOB MATCHES", sb.String())
}
