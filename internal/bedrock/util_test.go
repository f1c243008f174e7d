package bedrock

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain HTML untouched", "<h1>Hi</h1>", "<h1>Hi</h1>"},
		{"Strips html fence", "```html\n<h1>Hi</h1>\n```", "<h1>Hi</h1>"},
		{"Strips bare fence", "```\n<p>x</p>\n```", "<p>x</p>"},
		{"Fence marker case-insensitive", "```HTML\n<p>x</p>\n```", "<p>x</p>"},
		{"Trims whitespace", "  <p>x</p>  ", "<p>x</p>"},
		{"Fence only at edges", "<p>```</p>", "<p>```</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeHTMLClampsLength(t *testing.T) {
	long := "<p>" + strings.Repeat("a", MaxHTMLChars*2)
	assert.Len(t, SanitizeHTML(long), MaxHTMLChars)
}

func TestExtractJSONObject(t *testing.T) {
	t.Run("Direct object", func(t *testing.T) {
		obj, err := ExtractJSONObject(`{"ats_score": 80}`)
		require.NoError(t, err)
		assert.Equal(t, float64(80), obj["ats_score"])
	})

	t.Run("Object wrapped in prose", func(t *testing.T) {
		obj, err := ExtractJSONObject("Here is the analysis:\n{\"ats_score\": 75}\nHope that helps!")
		require.NoError(t, err)
		assert.Equal(t, float64(75), obj["ats_score"])
	})

	t.Run("Nested object", func(t *testing.T) {
		obj, err := ExtractJSONObject(`prefix {"a": {"b": 1}, "c": 2} suffix`)
		require.NoError(t, err)
		assert.Equal(t, float64(2), obj["c"])
	})

	t.Run("Braces inside strings do not break balancing", func(t *testing.T) {
		obj, err := ExtractJSONObject(`note: {"text": "uses { and } freely", "n": 1}`)
		require.NoError(t, err)
		assert.Equal(t, "uses { and } freely", obj["text"])
	})

	t.Run("No object at all", func(t *testing.T) {
		_, err := ExtractJSONObject("sorry, I cannot help with that")
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})

	t.Run("Unbalanced braces", func(t *testing.T) {
		_, err := ExtractJSONObject(`{"a": 1`)
		assert.ErrorIs(t, err, ErrNoJSONObject)
	})
}
