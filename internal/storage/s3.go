// Package storage holds the persistence collaborators: the S3 site bucket
// that serves the rendered resume and the DynamoDB tables that track
// deployments and analytics.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const htmlContentType = "text/html; charset=utf-8"

// ObjectStore uploads rendered HTML to the site bucket.
type ObjectStore struct {
	client *s3.Client
	bucket string
	region string
}

// NewObjectStore creates an ObjectStore for the given bucket and region.
func NewObjectStore(ctx context.Context, region, bucket string) (*ObjectStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &ObjectStore{client: s3.NewFromConfig(cfg), bucket: bucket, region: region}, nil
}

// UploadHTML writes the page to <env>/index.html and returns the website
// URL it is served from. Cache-Control is no-cache so a redeploy is visible
// immediately.
func (o *ObjectStore) UploadHTML(ctx context.Context, env, html string) (string, error) {
	key := env + "/index.html"
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(o.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(html),
		ContentType:  aws.String(htmlContentType),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return WebsiteURL(o.bucket, o.region, key), nil
}

// WebsiteURL derives the S3 static-website URL for an uploaded object.
func WebsiteURL(bucket, region, key string) string {
	return fmt.Sprintf("http://%s.s3-website-%s.amazonaws.com/%s", bucket, region, key)
}
