// Package config loads the pipeline configuration from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds every setting the pipeline reads from the environment.
// The CI job sets the required values; a missing one aborts before any
// external call is made.
type Config struct {
	Region          string `mapstructure:"aws_region" validate:"required"`
	BedrockRegion   string `mapstructure:"bedrock_region"`
	Bucket          string `mapstructure:"bucket_name" validate:"required"`
	DeploymentTable string `mapstructure:"deployment_table" validate:"required"`
	AnalyticsTable  string `mapstructure:"analytics_table" validate:"required"`
	Environment     string `mapstructure:"env" validate:"required"`
	CommitSHA       string `mapstructure:"commit_sha" validate:"required"`
	ModelID         string `mapstructure:"model_id" validate:"required"`

	ResumePath string `mapstructure:"resume_path"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
}

// envNames maps struct fields to the environment variable each is bound to,
// for error messages.
var envNames = map[string]string{
	"Region":          "AWS_REGION",
	"BedrockRegion":   "BEDROCK_REGION",
	"Bucket":          "BUCKET_NAME",
	"DeploymentTable": "DEPLOYMENT_TABLE",
	"AnalyticsTable":  "ANALYTICS_TABLE",
	"Environment":     "ENV",
	"CommitSHA":       "COMMIT_SHA",
	"ModelID":         "MODEL_ID",
	"ResumePath":      "RESUME_PATH",
	"LogLevel":        "LOG_LEVEL",
	"LogFormat":       "LOG_FORMAT",
}

var boundKeys = []string{
	"aws_region", "bedrock_region", "bucket_name", "deployment_table",
	"analytics_table", "env", "commit_sha", "model_id",
	"resume_path", "log_level", "log_format",
}

// Load reads configuration from the environment, applies defaults, and
// enforces the required set.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for _, key := range boundKeys {
		// Explicit binding so Unmarshal sees env-only keys.
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment key %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode environment configuration: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BedrockRegion == "" {
		c.BedrockRegion = c.Region
	}
	if c.ResumePath == "" {
		c.ResumePath = "resume.md"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

// Validate enforces the required settings, reporting the environment
// variable name of the first missing one.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0].StructField()
			if name, known := envNames[field]; known {
				return fmt.Errorf("missing required environment variable: %s", name)
			}
			return fmt.Errorf("invalid configuration field: %s", field)
		}
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}
