package schemas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() map[string]any {
	// JSON-decoded objects carry float64 numbers; mirror that here.
	return map[string]any{
		"word_count":       float64(420),
		"ats_score":        float64(88),
		"keywords":         []any{"kubernetes", "terraform"},
		"readability":      "Good",
		"missing_sections": []any{"Certifications"},
	}
}

func TestValidateCandidateAccepts(t *testing.T) {
	rec, err := ValidateCandidate(validCandidate())
	require.NoError(t, err)

	assert.Equal(t, 420, rec.WordCount)
	assert.Equal(t, 88, rec.ATSScore)
	assert.Equal(t, []string{"kubernetes", "terraform"}, rec.Keywords)
	assert.Equal(t, "Good", rec.Readability)
	assert.Equal(t, []string{"Certifications"}, rec.MissingSections)
}

func TestValidateCandidateReportsFirstMissingField(t *testing.T) {
	tests := []struct {
		name    string
		drop    []string
		first   string
		missing bool
	}{
		{"Missing word_count", []string{"word_count"}, "word_count", true},
		{"Missing ats_score", []string{"ats_score"}, "ats_score", true},
		{"Missing keywords", []string{"keywords"}, "keywords", true},
		{"Missing readability", []string{"readability"}, "readability", true},
		{"Missing missing_sections", []string{"missing_sections"}, "missing_sections", true},
		{"Multiple missing reports earliest", []string{"readability", "ats_score"}, "ats_score", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			for _, k := range tt.drop {
				delete(candidate, k)
			}

			_, err := ValidateCandidate(candidate)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.first, schemaErr.Field)
			assert.Equal(t, tt.missing, schemaErr.Missing)
		})
	}
}

func TestValidateCandidateReportsMistypedFields(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		first string
	}{
		{"Non-integer word_count", "word_count", "lots", "word_count"},
		{"Fractional ats_score", "ats_score", 71.5, "ats_score"},
		{"Keywords not a list", "keywords", "kubernetes", "keywords"},
		{"Readability not a string", "readability", float64(3), "readability"},
		{"Missing sections not a list", "missing_sections", map[string]any{}, "missing_sections"},
		{"Earliest of several mistyped", "word_count", true, "word_count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			candidate[tt.key] = tt.value

			_, err := ValidateCandidate(candidate)
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.first, schemaErr.Field)
			assert.False(t, schemaErr.Missing)
		})
	}
}

func TestValidateCandidateCoercesListEntries(t *testing.T) {
	candidate := validCandidate()
	candidate["keywords"] = []any{"aws", float64(2024), true}

	rec, err := ValidateCandidate(candidate)
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "2024", "true"}, rec.Keywords)
}

func TestNormalizeIsTotal(t *testing.T) {
	big := make([]string, 80)
	for i := range big {
		big[i] = "kw"
	}

	rec := Normalize(AnalyticsRecord{
		WordCount:       -3,
		ATSScore:        150,
		Keywords:        big,
		Readability:     strings.Repeat("x", 100),
		MissingSections: nil,
	})

	assert.Equal(t, 0, rec.WordCount)
	assert.Equal(t, 100, rec.ATSScore)
	assert.Len(t, rec.Keywords, 50)
	assert.Len(t, rec.Readability, 40)
	assert.NotNil(t, rec.MissingSections)
	assert.Empty(t, rec.MissingSections)
}

func TestNormalizeClampsLowScore(t *testing.T) {
	rec := Normalize(AnalyticsRecord{ATSScore: -20, Readability: "Fair"})
	assert.Equal(t, 0, rec.ATSScore)
	assert.Equal(t, "Fair", rec.Readability)
}
