package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-screener/internal/observability"
	"github.com/jonathan/talent-screener/internal/parsing"
	"github.com/jonathan/talent-screener/internal/scoring"
)

var (
	scoreInputFile  string
	scoreOutputFile string
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Parse a résumé text file and compute its quality score",
	Long:  `Parse a raw résumé text file into a structured profile, compute the standalone quality score, and print a summary. With --out, the parsed profile is also written as JSON.`,
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreInputFile, "in", "i", "", "Path to résumé text file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to write the parsed profile JSON")
	_ = scoreCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(scoreInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	parser := parsing.NewHeuristicParser()
	profile, err := parser.Parse(context.Background(), string(content))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintResumeProfile(profile)
	printer.PrintResumeScore(profile, scoring.ComputeResumeScore(profile))

	if scoreOutputFile != "" {
		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal profile: %w", err)
		}
		if err := os.WriteFile(scoreOutputFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
	}

	return nil
}
