// Package main provides the entry point for the resume deployment pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_pipeline",
	Short: "Resume deployment pipeline",
	Long:  "Converts a Markdown resume into ATS-friendly HTML and analytics, model-first with a deterministic fallback, and publishes both to S3 and DynamoDB.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
