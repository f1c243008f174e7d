// Package analysis computes deterministic ATS analytics from resume
// Markdown. It is the substitute for the model-generated analytics when the
// generation call is unavailable, so its rubric is a fixed contract: same
// weights, same ordering, same clamping on every run.
package analysis

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/wsoto/resume-pipeline/internal/markdown"
	"github.com/wsoto/resume-pipeline/internal/schemas"
)

const (
	// substantialWordCount is the threshold separating a full resume from a
	// thin one, used by both the score rubric and the readability label.
	substantialWordCount = 350
	// maxKeywords caps the ranked keyword list.
	maxKeywords = 15
	// minKeywordLength filters short filler words out of keyword ranking.
	minKeywordLength = 4
	// maxMissingPenalty caps the per-missing-section score deduction.
	maxMissingPenalty = 15
)

// wordPattern matches word characters across scripts. RE2's \w is
// ASCII-only, which would split accented words like "résumé" in two.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// standardSections enumerates the section checks in reporting order. The
// Summary check also accepts a "Professional" prefix and the Certifications
// check accepts the singular form.
var standardSections = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{"Summary", regexp.MustCompile(`(?im)^##\s+(professional\s+)?summary\b`)},
	{"Skills", regexp.MustCompile(`(?im)^##\s+skills\b`)},
	{"Projects", regexp.MustCompile(`(?im)^##\s+projects\b`)},
	{"Experience", regexp.MustCompile(`(?im)^##\s+experience\b`)},
	{"Education", regexp.MustCompile(`(?im)^##\s+education\b`)},
	{"Certifications", regexp.MustCompile(`(?im)^##\s+certifications?\b`)},
}

// Analyze produces the deterministic analytics record for a document.
// Callers still pass the result through schemas.Normalize before persisting.
func Analyze(doc markdown.Document) schemas.AnalyticsRecord {
	source := doc.Source()
	words := wordPattern.FindAllString(source, -1)

	present := make(map[string]bool, len(standardSections))
	missing := []string{}
	for _, section := range standardSections {
		if section.pattern.MatchString(source) {
			present[section.name] = true
		} else {
			missing = append(missing, section.name)
		}
	}

	readability := "Fair"
	if len(words) >= substantialWordCount {
		readability = "Good"
	}

	return schemas.AnalyticsRecord{
		WordCount:       len(words),
		ATSScore:        score(len(words), present, len(missing)),
		Keywords:        rankKeywords(words),
		Readability:     readability,
		MissingSections: missing,
	}
}

// score applies the fixed rubric: base 60, word-count bonus, section
// bonuses/penalties, then the capped missing-section deduction, clamped to
// [0, 100]. The weights and their order are a compatibility contract with
// the model-scored path.
func score(wordCount int, present map[string]bool, missingCount int) int {
	s := 60
	if wordCount >= substantialWordCount {
		s += 10
	} else {
		s -= 5
	}

	if present["Skills"] {
		s += 10
	} else {
		s -= 10
	}
	if present["Experience"] {
		s += 10
	} else {
		s -= 10
	}
	if present["Projects"] {
		s += 5
	} else {
		s -= 5
	}

	penalty := 3 * missingCount
	if penalty > maxMissingPenalty {
		penalty = maxMissingPenalty
	}
	s -= penalty

	if s < 0 {
		s = 0
	}
	if s > 100 {
		s = 100
	}
	return s
}

// rankKeywords lowercases words of at least minKeywordLength characters,
// counts frequency, and returns the top entries ordered by descending
// frequency with first-seen order breaking ties.
func rankKeywords(words []string) []string {
	freq := make(map[string]int)
	firstSeen := []string{}
	for _, w := range words {
		w = strings.ToLower(w)
		if utf8.RuneCountInString(w) < minKeywordLength {
			continue
		}
		if freq[w] == 0 {
			firstSeen = append(firstSeen, w)
		}
		freq[w]++
	}

	sort.SliceStable(firstSeen, func(i, j int) bool {
		return freq[firstSeen[i]] > freq[firstSeen[j]]
	})

	if len(firstSeen) > maxKeywords {
		firstSeen = firstSeen[:maxKeywords]
	}
	return firstSeen
}
