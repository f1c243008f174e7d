package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wsoto/resume-pipeline/internal/analysis"
	"github.com/wsoto/resume-pipeline/internal/schemas"
)

var analyzeCommand = &cobra.Command{
	Use:   "analyze",
	Short: "Compute deterministic ATS analytics for the resume",
	Long:  "Runs only the heuristic analyzer and the schema normalization, without any model call or AWS access, and prints the analytics record as JSON.",
	RunE:  runAnalyzeCmd,
}

var analyzeInPath string

func init() {
	analyzeCommand.Flags().StringVar(&analyzeInPath, "in", "resume.md", "Path to resume Markdown")

	rootCmd.AddCommand(analyzeCommand)
}

func runAnalyzeCmd(_ *cobra.Command, _ []string) error {
	doc, err := readDocument(analyzeInPath)
	if err != nil {
		return err
	}

	record := schemas.Normalize(analysis.Analyze(doc))
	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode analytics record: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
