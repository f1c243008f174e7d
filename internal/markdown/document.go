// Package markdown converts the resume Markdown subset into ATS-friendly HTML.
//
// This is deliberately not a general Markdown engine: it supports exactly the
// constructs a resume uses (h1-h3 headings, flat bullet lists, horizontal
// rules, paragraphs, and inline emphasis/code). Anything else renders as a
// paragraph.
package markdown

import "strings"

// MaxDocumentChars is the ceiling applied to resume source before any
// processing. Longer input is truncated silently.
const MaxDocumentChars = 12000

// Document is an immutable snapshot of the resume Markdown source,
// trimmed and clamped to MaxDocumentChars.
type Document struct {
	source string
}

// NewDocument creates a Document from raw source.
func NewDocument(source string) Document {
	s := strings.TrimSpace(source)
	if runes := []rune(s); len(runes) > MaxDocumentChars {
		s = string(runes[:MaxDocumentChars])
	}
	return Document{source: s}
}

// Source returns the clamped Markdown source.
func (d Document) Source() string {
	return d.source
}

// Lines returns the source split into lines with trailing whitespace removed.
func (d Document) Lines() []string {
	lines := strings.Split(d.source, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " \t\r")
	}
	return lines
}
