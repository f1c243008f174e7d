package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsiteURL(t *testing.T) {
	url := WebsiteURL("resume-site", "us-east-1", "beta/index.html")
	assert.Equal(t, "http://resume-site.s3-website-us-east-1.amazonaws.com/beta/index.html", url)
}

func TestDeploymentRecordAttributeNames(t *testing.T) {
	av, err := attributevalue.MarshalMap(DeploymentRecord{
		DeploymentID: "d-1",
		CommitSHA:    "abc123",
		Environment:  "beta",
		Status:       "success",
		S3URL:        "http://example",
		ModelUsed:    "fallback-deterministic",
		Timestamp:    "2026-09-01T00:00:00Z",
	})
	require.NoError(t, err)

	for _, name := range []string{
		"deployment_id", "commit_sha", "environment", "status",
		"s3_url", "model_used", "timestamp",
	} {
		assert.Contains(t, av, name)
	}
}

func TestAnalyticsItemAttributeNames(t *testing.T) {
	av, err := attributevalue.MarshalMap(AnalyticsItem{
		AnalysisID:      "a-1",
		CommitSHA:       "abc123",
		Environment:     "beta",
		ModelUsed:       "model-x",
		Timestamp:       "2026-09-01T00:00:00Z",
		WordCount:       9,
		ATSScore:        58,
		Keywords:        []string{"python"},
		Readability:     "Fair",
		MissingSections: []string{"Summary"},
	})
	require.NoError(t, err)

	for _, name := range []string{
		"analysis_id", "commit_sha", "environment", "model_used", "timestamp",
		"word_count", "ats_score", "keywords", "readability", "missing_sections",
	} {
		assert.Contains(t, av, name)
	}
}
