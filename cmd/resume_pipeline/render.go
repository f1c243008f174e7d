package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wsoto/resume-pipeline/internal/markdown"
)

var renderCommand = &cobra.Command{
	Use:   "render",
	Short: "Render the resume to HTML deterministically",
	Long:  "Runs only the deterministic Markdown renderer, without any model call or AWS access. Useful for previewing the fallback page locally.",
	RunE:  runRenderCmd,
}

var (
	renderInPath  string
	renderOutPath string
)

func init() {
	renderCommand.Flags().StringVar(&renderInPath, "in", "resume.md", "Path to resume Markdown")
	renderCommand.Flags().StringVar(&renderOutPath, "out", "", "Output HTML path (default: stdout)")

	rootCmd.AddCommand(renderCommand)
}

func runRenderCmd(_ *cobra.Command, _ []string) error {
	doc, err := readDocument(renderInPath)
	if err != nil {
		return err
	}

	html := markdown.RenderHTML(doc)
	if renderOutPath == "" {
		fmt.Println(html)
		return nil
	}

	if err := os.WriteFile(renderOutPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOutPath, err)
	}
	return nil
}
