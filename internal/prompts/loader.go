// Package prompts holds the fixed prompt templates for the two generation
// calls, embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

const generationFile = "generation.json"

var (
	loadOnce  sync.Once
	templates map[string]string
	loadErr   error
)

// HTMLPrompt builds the prompt instructing HTML-only output for a resume.
func HTMLPrompt(resumeMD string) string {
	return format(mustTemplate("html"), map[string]string{"Resume": resumeMD})
}

// AnalyticsPrompt builds the prompt instructing strict-JSON analytics output
// for a resume.
func AnalyticsPrompt(resumeMD string) string {
	return format(mustTemplate("analytics"), map[string]string{"Resume": resumeMD})
}

// mustTemplate returns an embedded template by key. The templates ship in
// the binary, so a missing key is a build defect and panics.
func mustTemplate(key string) string {
	loadOnce.Do(func() {
		data, err := promptFiles.ReadFile(generationFile)
		if err != nil {
			loadErr = fmt.Errorf("failed to read prompt file %s: %w", generationFile, err)
			return
		}
		loadErr = json.Unmarshal(data, &templates)
	})
	if loadErr != nil {
		panic(fmt.Sprintf("failed to load prompts: %v", loadErr))
	}

	tpl, ok := templates[key]
	if !ok {
		panic(fmt.Sprintf("prompt key %q not found in %s", key, generationFile))
	}
	return tpl
}

// format replaces {{.Key}} placeholders with values from data.
func format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{.%s}}", key), value)
	}
	return result
}
