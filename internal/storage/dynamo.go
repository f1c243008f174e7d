package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DeploymentRecord is the write-once deployment-tracking item.
type DeploymentRecord struct {
	DeploymentID string `dynamodbav:"deployment_id"`
	CommitSHA    string `dynamodbav:"commit_sha"`
	Environment  string `dynamodbav:"environment"`
	Status       string `dynamodbav:"status"`
	S3URL        string `dynamodbav:"s3_url"`
	ModelUsed    string `dynamodbav:"model_used"`
	Timestamp    string `dynamodbav:"timestamp"`
}

// AnalyticsItem is the write-once analytics item: run identity plus the
// validated analytics fields.
type AnalyticsItem struct {
	AnalysisID  string `dynamodbav:"analysis_id"`
	CommitSHA   string `dynamodbav:"commit_sha"`
	Environment string `dynamodbav:"environment"`
	ModelUsed   string `dynamodbav:"model_used"`
	Timestamp   string `dynamodbav:"timestamp"`

	WordCount       int      `dynamodbav:"word_count"`
	ATSScore        int      `dynamodbav:"ats_score"`
	Keywords        []string `dynamodbav:"keywords"`
	Readability     string   `dynamodbav:"readability"`
	MissingSections []string `dynamodbav:"missing_sections"`
}

// RecordStore writes run records to the two DynamoDB tables.
type RecordStore struct {
	client          *dynamodb.Client
	deploymentTable string
	analyticsTable  string
}

// NewRecordStore creates a RecordStore for the given tables and region.
func NewRecordStore(ctx context.Context, region, deploymentTable, analyticsTable string) (*RecordStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &RecordStore{
		client:          dynamodb.NewFromConfig(cfg),
		deploymentTable: deploymentTable,
		analyticsTable:  analyticsTable,
	}, nil
}

// PutDeployment inserts a deployment-tracking record.
func (r *RecordStore) PutDeployment(ctx context.Context, rec DeploymentRecord) error {
	return r.putItem(ctx, r.deploymentTable, rec)
}

// PutAnalytics inserts an analytics record.
func (r *RecordStore) PutAnalytics(ctx context.Context, item AnalyticsItem) error {
	return r.putItem(ctx, r.analyticsTable, item)
}

func (r *RecordStore) putItem(ctx context.Context, table string, item any) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item for %s: %w", table, err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to write item to %s: %w", table, err)
	}
	return nil
}
