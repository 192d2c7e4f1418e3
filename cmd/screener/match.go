package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-screener/internal/observability"
	"github.com/jonathan/talent-screener/internal/parsing"
	"github.com/jonathan/talent-screener/internal/schemas"
	"github.com/jonathan/talent-screener/internal/scoring"
	"github.com/jonathan/talent-screener/internal/types"
)

var (
	matchResumeFile string
	matchJobFile    string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a résumé against a job posting",
	Long:  `Parse a raw résumé text file, validate a job posting JSON document, and print the match score between the two without touching the database.`,
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVarP(&matchResumeFile, "resume", "r", "", "Path to résumé text file (required)")
	matchCmd.Flags().StringVarP(&matchJobFile, "job", "j", "", "Path to job posting JSON file (required)")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("job")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(_ *cobra.Command, _ []string) error {
	resumeText, err := os.ReadFile(matchResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	jobData, err := os.ReadFile(matchJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job file: %w", err)
	}
	if err := schemas.ValidateJobPosting(jobData); err != nil {
		return fmt.Errorf("invalid job posting: %w", err)
	}
	var job types.JobPosting
	if err := json.Unmarshal(jobData, &job); err != nil {
		return fmt.Errorf("failed to unmarshal job posting: %w", err)
	}

	parser := parsing.NewHeuristicParser()
	profile, err := parser.Parse(context.Background(), string(resumeText))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	result := scoring.ComputeJobMatch(profile, &job)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResumeProfile(profile)
	printer.PrintMatchResult(&job, result)

	return nil
}
