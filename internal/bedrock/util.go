package bedrock

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxHTMLChars bounds sanitized generation output.
const MaxHTMLChars = 120000

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:html)?\\s*")
	trailingFence = regexp.MustCompile("\\s*```$")
)

// ErrNoJSONObject is returned when no JSON object can be extracted from
// model output.
var ErrNoJSONObject = errors.New("no JSON object found in model output")

// SanitizeHTML strips enclosing code-fence markers the model sometimes adds
// despite instructions, and clamps the result to MaxHTMLChars.
func SanitizeHTML(html string) string {
	html = strings.TrimSpace(html)
	html = leadingFence.ReplaceAllString(html, "")
	html = trailingFence.ReplaceAllString(html, "")
	if runes := []rune(html); len(runes) > MaxHTMLChars {
		html = string(runes[:MaxHTMLChars])
	}
	return html
}

// ExtractJSONObject decodes the first JSON object in text. Models sometimes
// wrap the object in prose, so if the text as a whole does not parse, the
// first balanced {...} span is extracted and parsed instead.
func ExtractJSONObject(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, nil
	}

	span, ok := firstBalancedObject(text)
	if !ok {
		return nil, ErrNoJSONObject
	}
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, fmt.Errorf("extracted span is not a JSON object: %w", err)
	}
	return obj, nil
}

// firstBalancedObject scans for the first brace-balanced span, ignoring
// braces inside string literals.
func firstBalancedObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
