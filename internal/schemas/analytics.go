// Package schemas defines the analytics record contract and its strict
// validator. Every record that reaches persistence goes through this package
// first, whether it came from the model or from the deterministic analyzer.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analytics.schema.json
var analyticsSchemaJSON string

const (
	// maxListEntries bounds keywords and missing_sections after validation.
	maxListEntries = 50
	// maxReadabilityChars bounds the readability label after validation.
	maxReadabilityChars = 40
)

// fieldOrder is the order in which missing or mistyped fields are reported.
var fieldOrder = []string{"word_count", "ats_score", "keywords", "readability", "missing_sections"}

var analyticsSchemaLoader = gojsonschema.NewStringLoader(analyticsSchemaJSON)

// AnalyticsRecord is the fixed-shape ATS analytics payload.
type AnalyticsRecord struct {
	WordCount       int      `json:"word_count"`
	ATSScore        int      `json:"ats_score"`
	Keywords        []string `json:"keywords"`
	Readability     string   `json:"readability"`
	MissingSections []string `json:"missing_sections"`
}

// SchemaError names the first missing or mistyped analytics field, checked
// in fieldOrder.
type SchemaError struct {
	Field   string
	Missing bool
}

func (e *SchemaError) Error() string {
	if e.Missing {
		return fmt.Sprintf("analytics missing required key: %s", e.Field)
	}
	return fmt.Sprintf("analytics key %q has wrong type", e.Field)
}

// ValidateCandidate checks a decoded JSON object against the analytics
// contract and returns the normalized record. The candidate typically comes
// from model output; the structural check runs against the embedded JSON
// Schema and failures are reported as a SchemaError for the first offending
// field in fieldOrder.
func ValidateCandidate(candidate map[string]any) (AnalyticsRecord, error) {
	result, err := gojsonschema.Validate(analyticsSchemaLoader, gojsonschema.NewGoLoader(candidate))
	if err != nil {
		return AnalyticsRecord{}, fmt.Errorf("analytics schema evaluation failed: %w", err)
	}
	if !result.Valid() {
		return AnalyticsRecord{}, firstSchemaError(result.Errors())
	}

	rec := AnalyticsRecord{
		WordCount:       toInt(candidate["word_count"]),
		ATSScore:        toInt(candidate["ats_score"]),
		Keywords:        toStrings(candidate["keywords"]),
		Readability:     fmt.Sprintf("%v", candidate["readability"]),
		MissingSections: toStrings(candidate["missing_sections"]),
	}
	return Normalize(rec), nil
}

// Normalize clamps and truncates a record into range. It is total: it never
// fails, and its output always satisfies the persisted-record invariants
// (score in [0,100], lists capped at 50, readability capped at 40 chars).
func Normalize(rec AnalyticsRecord) AnalyticsRecord {
	if rec.WordCount < 0 {
		rec.WordCount = 0
	}
	if rec.ATSScore < 0 {
		rec.ATSScore = 0
	}
	if rec.ATSScore > 100 {
		rec.ATSScore = 100
	}
	rec.Keywords = capList(rec.Keywords)
	rec.MissingSections = capList(rec.MissingSections)
	if runes := []rune(rec.Readability); len(runes) > maxReadabilityChars {
		rec.Readability = string(runes[:maxReadabilityChars])
	}
	return rec
}

// firstSchemaError maps a gojsonschema result onto the fixed-order
// first-field reporting contract.
func firstSchemaError(errs []gojsonschema.ResultError) error {
	missing := make(map[string]bool)
	mistyped := make(map[string]bool)
	for _, e := range errs {
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				missing[prop] = true
			}
			continue
		}
		mistyped[e.Field()] = true
	}

	for _, field := range fieldOrder {
		if missing[field] {
			return &SchemaError{Field: field, Missing: true}
		}
		if mistyped[field] {
			return &SchemaError{Field: field}
		}
	}
	// The schema only constrains the five known fields, so this is
	// unreachable for a well-formed schema file; fail loudly regardless.
	return &SchemaError{Field: errs[0].Field()}
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}

func toStrings(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []any:
		for _, item := range list {
			out = append(out, fmt.Sprintf("%v", item))
		}
	case []string:
		out = append(out, list...)
	}
	return out
}

func capList(list []string) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > maxListEntries {
		return list[:maxListEntries]
	}
	return list
}
