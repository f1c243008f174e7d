package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsoto/resume-pipeline/internal/bedrock"
	"github.com/wsoto/resume-pipeline/internal/config"
	"github.com/wsoto/resume-pipeline/internal/logger"
	"github.com/wsoto/resume-pipeline/internal/markdown"
	"github.com/wsoto/resume-pipeline/internal/pipeline"
	"github.com/wsoto/resume-pipeline/internal/storage"
)

// minResumeChars guards against deploying an empty or truncated input file.
const minResumeChars = 16

var deployCommand = &cobra.Command{
	Use:   "deploy",
	Short: "Run the full deployment pipeline end-to-end",
	Long: `Reads the resume, attempts model generation of HTML and analytics
(falling back to the deterministic renderer and analyzer on recoverable
generation failures), uploads the page to S3, and records the run in the
deployment and analytics tables. Prints a JSON summary on success.`,
	RunE: runDeployCmd,
}

var (
	deployResumePath string
	deployModelID    string
)

func init() {
	deployCommand.Flags().StringVar(&deployResumePath, "resume", "", "Path to resume Markdown (overrides RESUME_PATH)")
	deployCommand.Flags().StringVar(&deployModelID, "model-id", "", "Model identifier (overrides MODEL_ID)")

	rootCmd.AddCommand(deployCommand)
}

func runDeployCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("resume") {
		cfg.ResumePath = deployResumePath
	}
	if cmd.Flags().Changed("model-id") {
		cfg.ModelID = deployModelID
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	doc, err := readDocument(cfg.ResumePath)
	if err != nil {
		return err
	}

	generator, err := bedrock.NewRuntimeClient(ctx, cfg.BedrockRegion, cfg.ModelID)
	if err != nil {
		return err
	}
	objects, err := storage.NewObjectStore(ctx, cfg.Region, cfg.Bucket)
	if err != nil {
		return err
	}
	records, err := storage.NewRecordStore(ctx, cfg.Region, cfg.DeploymentTable, cfg.AnalyticsTable)
	if err != nil {
		return err
	}

	summary, err := pipeline.Run(ctx, pipeline.Options{
		Document:      doc,
		Environment:   cfg.Environment,
		CommitSHA:     cfg.CommitSHA,
		BedrockRegion: cfg.BedrockRegion,
		Generator:     generator,
		Objects:       objects,
		Records:       records,
		Log:           log,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run summary: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// readDocument loads and clamps the resume, rejecting implausibly short
// input before any external call is made.
func readDocument(path string) (markdown.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return markdown.Document{}, fmt.Errorf("failed to read resume %s: %w", path, err)
	}

	doc := markdown.NewDocument(string(data))
	if len(doc.Source()) < minResumeChars {
		return markdown.Document{}, fmt.Errorf("resume %s is implausibly short (%d chars)", path, len(doc.Source()))
	}
	return doc, nil
}
