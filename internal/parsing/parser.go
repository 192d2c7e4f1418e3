// Package parsing extracts structured résumé profiles from plain text.
// It is the stand-in for the excluded NLP ingestion backend; anything
// implementing ResumeParser can replace it.
package parsing

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/talent-screener/internal/types"
)

// ResumeParser turns raw résumé text into a populated profile.
type ResumeParser interface {
	Parse(ctx context.Context, text string) (*types.ResumeProfile, error)
}

// HeuristicParser is a rule-based ResumeParser: it splits the text into
// labeled sections and applies per-section extraction rules.
type HeuristicParser struct{}

// NewHeuristicParser creates a heuristic résumé parser.
func NewHeuristicParser() *HeuristicParser {
	return &HeuristicParser{}
}

// sectionHeaders maps recognized header lines to canonical section keys.
var sectionHeaders = map[string]string{
	"skills":                  "skills",
	"technical skills":        "skills",
	"technologies":            "skills",
	"experience":              "experience",
	"work experience":         "experience",
	"professional experience": "experience",
	"employment":              "experience",
	"employment history":      "experience",
	"education":               "education",
	"academic background":     "education",
	"certifications":          "certifications",
	"certificates":            "certifications",
	"licenses":                "certifications",
	"summary":                 "summary",
	"profile":                 "summary",
	"objective":               "summary",
}

// dateRangePattern matches ranges like "Jan 2020 - Mar 2022",
// "2018 to 2021" and "June 2021 - Present".
var dateRangePattern = regexp.MustCompile(
	`(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{4})\s*(?:-|–|—|to)\s*((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}|\d{4}|present|current)\b`)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Parse implements ResumeParser. It never returns a partial profile with an
// error; absent sections simply yield empty collections.
func (p *HeuristicParser) Parse(_ context.Context, text string) (*types.ResumeProfile, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: "resume text is empty"}
	}

	sections := splitSections(text)

	profile := &types.ResumeProfile{
		Skills:         parseSkills(sections["skills"]),
		Experience:     parseExperience(sections["experience"]),
		Education:      parseEducation(sections["education"]),
		Certifications: parseCertifications(sections["certifications"]),
		Summary:        strings.Join(sections["summary"], " "),
	}
	profile.ExperienceLevel = types.LevelForYears(profile.TotalExperienceYears())

	return profile, nil
}

// splitSections groups lines under their most recent section header.
// Lines before the first header land in "summary".
func splitSections(text string) map[string][]string {
	sections := make(map[string][]string)
	current := "summary"

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		header := strings.ToLower(strings.TrimSuffix(trimmed, ":"))
		if key, ok := sectionHeaders[header]; ok {
			current = key
			continue
		}

		sections[current] = append(sections[current], trimmed)
	}
	return sections
}

// parseSkills splits section lines on common delimiters and normalizes
// each token, deduplicating case-insensitively.
func parseSkills(lines []string) []string {
	var skills []string
	seen := make(map[string]bool)

	for _, line := range lines {
		tokens := strings.FieldsFunc(stripBullet(line), func(r rune) bool {
			return r == ',' || r == ';' || r == '•' || r == '|'
		})
		for _, token := range tokens {
			skill := NormalizeSkillName(token)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if !seen[key] {
				seen[key] = true
				skills = append(skills, skill)
			}
		}
	}
	return skills
}

// parseExperience extracts one entry per line carrying a date range.
// Lines without a range extend the description of the preceding entry.
func parseExperience(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry

	for _, line := range lines {
		line = stripBullet(line)
		match := dateRangePattern.FindStringSubmatchIndex(line)
		if match == nil {
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				if last.Description != "" {
					last.Description += " "
				}
				last.Description += line
			}
			continue
		}

		startRaw := line[match[2]:match[3]]
		endRaw := line[match[4]:match[5]]
		heading := strings.Trim(strings.TrimSpace(line[:match[0]]), "(,-–— ")

		entry := types.ExperienceEntry{}
		entry.Position, entry.Company = splitHeading(heading)

		start, startOK := parseMonthYear(startRaw)
		end := time.Now()
		switch lower := strings.ToLower(endRaw); lower {
		case "present", "current":
			entry.Current = true
		default:
			if parsed, ok := parseMonthYear(endRaw); ok {
				end = parsed
				entry.EndDate = end.Format("2006-01")
			}
		}
		if startOK {
			entry.StartDate = start.Format("2006-01")
			years := end.Sub(start).Hours() / (24 * 365.25)
			if years > 0 {
				entry.DurationYears = years
			}
		}

		entries = append(entries, entry)
	}
	return entries
}

// splitHeading separates "Position at Company" or "Position, Company"
// headings. A heading without a separator is treated as the position.
func splitHeading(heading string) (position, company string) {
	if idx := strings.Index(heading, " at "); idx >= 0 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+4:])
	}
	if idx := strings.Index(heading, ","); idx >= 0 {
		return strings.TrimSpace(heading[:idx]), strings.TrimSpace(heading[idx+1:])
	}
	return heading, ""
}

// degreeKeywords maps degree spellings to canonical degree names.
var degreeKeywords = []struct {
	keyword string
	degree  string
}{
	{"phd", "PhD"},
	{"doctorate", "PhD"},
	{"master", "Master"},
	{"mba", "MBA"},
	{"m.s", "Master"},
	{"bachelor", "Bachelor"},
	{"b.s", "Bachelor"},
	{"b.a", "Bachelor"},
	{"associate", "Associate"},
}

func parseEducation(lines []string) []types.EducationEntry {
	var entries []types.EducationEntry

	for _, line := range lines {
		line = stripBullet(line)
		entry := types.EducationEntry{Institution: line}

		lower := strings.ToLower(line)
		for _, dk := range degreeKeywords {
			if strings.Contains(lower, dk.keyword) {
				entry.Degree = dk.degree
				break
			}
		}

		if year := yearPattern.FindString(line); year != "" {
			entry.Year, _ = strconv.Atoi(year)
			entry.Institution = strings.Trim(strings.ReplaceAll(line, year, ""), " ,-–—()")
		}

		entries = append(entries, entry)
	}
	return entries
}

func parseCertifications(lines []string) []string {
	var certs []string
	for _, line := range lines {
		if cert := stripBullet(line); cert != "" {
			certs = append(certs, cert)
		}
	}
	return certs
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
}

// monthYearFormats tried in order when parsing range endpoints.
var monthYearFormats = []string{"Jan 2006", "January 2006", "Jan. 2006", "2006"}

func parseMonthYear(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, format := range monthYearFormats {
		if parsed, err := time.Parse(format, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
