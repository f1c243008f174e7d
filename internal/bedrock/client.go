// Package bedrock provides the text-generation collaborator: a small client
// over the Bedrock runtime plus the failure classification that decides when
// a generation failure degrades to the deterministic path.
package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const anthropicVersion = "bedrock-2023-05-31"

// Client is the abstraction over the hosted text-generation call.
type Client interface {
	// GenerateText sends one prompt and returns the joined text response.
	GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	// ModelID returns the configured model identifier.
	ModelID() string
}

// invokeAPI is the slice of the runtime SDK the client needs.
type invokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// RuntimeClient implements Client over bedrockruntime.InvokeModel with a
// bounded retry: at most one retry, with a fixed backoff before it.
// Aggressive retries only make throttling worse.
type RuntimeClient struct {
	api     invokeAPI
	modelID string
	retries int
	backoff time.Duration
}

// NewRuntimeClient creates a RuntimeClient in the given region.
func NewRuntimeClient(ctx context.Context, region, modelID string) (*RuntimeClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &RuntimeClient{
		api:     bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
		retries: 1,
		backoff: 2 * time.Second,
	}, nil
}

// ModelID returns the configured model identifier.
func (c *RuntimeClient) ModelID() string {
	return c.modelID
}

type invokeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string          `json:"anthropic_version"`
	MaxTokens        int             `json:"max_tokens"`
	Temperature      float64         `json:"temperature"`
	Messages         []invokeMessage `json:"messages"`
}

type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateText invokes the model and joins the text parts of the response.
func (c *RuntimeClient) GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		Messages:         []invokeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode model request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			if err := sleepContext(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return "", err
			}
		}

		out, err := c.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(c.modelID),
			Body:        body,
			Accept:      aws.String("application/json"),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			lastErr = err
			continue
		}
		return decodeResponseText(out.Body)
	}
	return "", lastErr
}

// decodeResponseText extracts the joined text parts of an Anthropic-shaped
// response body.
func decodeResponseText(body []byte) (string, error) {
	var resp invokeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	var parts []string
	for _, item := range resp.Content {
		if item.Type == "text" {
			parts = append(parts, item.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
