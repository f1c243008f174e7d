// Package pipeline orchestrates one deployment run: model-first generation
// with a deterministic fallback, strict validation, then persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wsoto/resume-pipeline/internal/analysis"
	"github.com/wsoto/resume-pipeline/internal/bedrock"
	"github.com/wsoto/resume-pipeline/internal/markdown"
	"github.com/wsoto/resume-pipeline/internal/prompts"
	"github.com/wsoto/resume-pipeline/internal/schemas"
	"github.com/wsoto/resume-pipeline/internal/storage"
)

// FallbackModelID tags artifacts produced by the deterministic path.
const FallbackModelID = "fallback-deterministic"

// Generation call budgets. The analytics call is small on purpose: the
// response is one short JSON object.
const (
	htmlMaxTokens        = 4000
	htmlTemperature      = 0.2
	analyticsMaxTokens   = 350
	analyticsTemperature = 0.1
)

// ObjectStore is the site-upload collaborator.
type ObjectStore interface {
	UploadHTML(ctx context.Context, env, html string) (string, error)
}

// RecordStore is the run-record collaborator.
type RecordStore interface {
	PutDeployment(ctx context.Context, rec storage.DeploymentRecord) error
	PutAnalytics(ctx context.Context, item storage.AnalyticsItem) error
}

// Options holds everything one run needs. Collaborators are injected so
// tests can run the full sequence without AWS.
type Options struct {
	Document      markdown.Document
	Environment   string
	CommitSHA     string
	BedrockRegion string

	Generator bedrock.Client
	Objects   ObjectStore
	Records   RecordStore
	Log       *zap.Logger

	// Now and NewID default to the clock and random UUIDs; injectable for
	// deterministic tests.
	Now   func() time.Time
	NewID func() string
}

// Summary is the machine-readable run result printed to stdout.
type Summary struct {
	Status         string `json:"status"`
	Environment    string `json:"environment"`
	CommitSHA      string `json:"commit_sha"`
	S3URL          string `json:"s3_url"`
	DeploymentID   string `json:"deployment_id"`
	AnalysisID     string `json:"analysis_id"`
	ModelUsed      string `json:"model_used"`
	UsedFallback   bool   `json:"used_fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	BedrockRegion  string `json:"bedrock_region"`
}

// artifacts carries the generation outputs into the persistence phase.
type artifacts struct {
	html           string
	record         schemas.AnalyticsRecord
	modelUsed      string
	usedFallback   bool
	fallbackReason string
}

// Run executes the full sequence: model-first generation, the single
// fallback decision, then upload and the two record writes. Nothing is
// persisted before generation has fully succeeded one way or the other.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}

	art, err := generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	s3URL, err := opts.Objects.UploadHTML(ctx, opts.Environment, art.html)
	if err != nil {
		return nil, fmt.Errorf("site upload failed: %w", err)
	}

	deploymentID := opts.NewID()
	analysisID := opts.NewID()
	timestamp := opts.Now().UTC().Format(time.RFC3339)

	err = opts.Records.PutDeployment(ctx, storage.DeploymentRecord{
		DeploymentID: deploymentID,
		CommitSHA:    opts.CommitSHA,
		Environment:  opts.Environment,
		Status:       "success",
		S3URL:        s3URL,
		ModelUsed:    art.modelUsed,
		Timestamp:    timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("deployment record write failed: %w", err)
	}

	err = opts.Records.PutAnalytics(ctx, storage.AnalyticsItem{
		AnalysisID:      analysisID,
		CommitSHA:       opts.CommitSHA,
		Environment:     opts.Environment,
		ModelUsed:       art.modelUsed,
		Timestamp:       timestamp,
		WordCount:       art.record.WordCount,
		ATSScore:        art.record.ATSScore,
		Keywords:        art.record.Keywords,
		Readability:     art.record.Readability,
		MissingSections: art.record.MissingSections,
	})
	if err != nil {
		// The deployment record is already written; surface the orphan so
		// the inconsistency is visible in the logs.
		opts.Log.Error("analytics record write failed after deployment record was written",
			zap.String("deployment_id", deploymentID),
			zap.Error(err))
		return nil, fmt.Errorf("analytics record write failed: %w", err)
	}

	return &Summary{
		Status:         "ok",
		Environment:    opts.Environment,
		CommitSHA:      opts.CommitSHA,
		S3URL:          s3URL,
		DeploymentID:   deploymentID,
		AnalysisID:     analysisID,
		ModelUsed:      art.modelUsed,
		UsedFallback:   art.usedFallback,
		FallbackReason: art.fallbackReason,
		BedrockRegion:  opts.BedrockRegion,
	}, nil
}

// generate attempts the model path and applies the single fallback decision
// point. Only failures the classifier marks recoverable degrade to the
// deterministic path; everything else aborts the run.
func generate(ctx context.Context, opts Options) (*artifacts, error) {
	html, record, err := generateWithModel(ctx, opts)
	if err == nil {
		return &artifacts{html: html, record: record, modelUsed: opts.Generator.ModelID()}, nil
	}

	cls := bedrock.Classify(err)
	if cls.Outcome != bedrock.Fallback {
		return nil, err
	}

	opts.Log.Warn("generation unavailable, falling back to deterministic rendering and analytics",
		zap.String("condition", cls.Condition),
		zap.Error(err))

	return &artifacts{
		html:           markdown.RenderHTML(opts.Document),
		record:         schemas.Normalize(analysis.Analyze(opts.Document)),
		modelUsed:      FallbackModelID,
		usedFallback:   true,
		fallbackReason: cls.Condition,
	}, nil
}

// generateWithModel runs the two generation calls and the strict validation
// of their output. Any returned error is still subject to classification by
// the caller; sanitation and schema failures carry no recoverable condition
// and therefore classify as fatal.
func generateWithModel(ctx context.Context, opts Options) (string, schemas.AnalyticsRecord, error) {
	raw, err := opts.Generator.GenerateText(ctx,
		prompts.HTMLPrompt(opts.Document.Source()), htmlMaxTokens, htmlTemperature)
	if err != nil {
		return "", schemas.AnalyticsRecord{}, fmt.Errorf("html generation failed: %w", err)
	}

	html := bedrock.SanitizeHTML(raw)
	if !looksLikeHTML(html) {
		return "", schemas.AnalyticsRecord{}, errors.New("generated output has no recognizable HTML structure")
	}

	atsRaw, err := opts.Generator.GenerateText(ctx,
		prompts.AnalyticsPrompt(opts.Document.Source()), analyticsMaxTokens, analyticsTemperature)
	if err != nil {
		return "", schemas.AnalyticsRecord{}, fmt.Errorf("analytics generation failed: %w", err)
	}

	obj, err := bedrock.ExtractJSONObject(atsRaw)
	if err != nil {
		return "", schemas.AnalyticsRecord{}, fmt.Errorf("analytics output unusable: %w", err)
	}

	record, err := schemas.ValidateCandidate(obj)
	if err != nil {
		return "", schemas.AnalyticsRecord{}, fmt.Errorf("analytics validation failed: %w", err)
	}

	return html, record, nil
}

var structuralTags = []string{"<h1", "<h2", "<h3", "<p", "<ul", "<li", "<html"}

// looksLikeHTML checks for at least one structural tag in sanitized output.
func looksLikeHTML(html string) bool {
	lower := strings.ToLower(html)
	for _, tag := range structuralTags {
		if strings.Contains(lower, tag) {
			return true
		}
	}
	return false
}
