package markdown

import (
	"regexp"
	"strings"
)

// Inline emphasis patterns, applied after escaping. All use non-greedy
// matching so the shortest enclosed span wins. Replacement order is a
// contract: escaping first, then triple markers before double before single,
// so nested emphasis resolves correctly.
var (
	boldItalicStars      = regexp.MustCompile(`\*\*\*(.*?)\*\*\*`)
	boldItalicUnderlines = regexp.MustCompile(`___(.*?)___`)
	boldStars            = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderlines       = regexp.MustCompile(`__(.*?)__`)
	italicStar           = regexp.MustCompile(`\*(.*?)\*`)
	italicUnderline      = regexp.MustCompile(`_(.*?)_`)
	inlineCode           = regexp.MustCompile("`([^`]+)`")
)

// RenderInline converts one line of raw text into HTML-safe text with inline
// emphasis applied. Raw text is escaped before any tag insertion; the tags
// themselves are synthesized and never re-escaped.
func RenderInline(text string) string {
	text = escapeHTML(text)
	text = boldItalicStars.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldItalicUnderlines.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldStars.ReplaceAllString(text, "<strong>$1</strong>")
	text = boldUnderlines.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicStar.ReplaceAllString(text, "<em>$1</em>")
	text = italicUnderline.ReplaceAllString(text, "<em>$1</em>")
	text = inlineCode.ReplaceAllString(text, "<code>$1</code>")
	return text
}

// escapeHTML escapes the five HTML-significant characters to entity form.
func escapeHTML(text string) string {
	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '&':
			result.WriteString("&amp;")
		case '<':
			result.WriteString("&lt;")
		case '>':
			result.WriteString("&gt;")
		case '"':
			result.WriteString("&quot;")
		case '\'':
			result.WriteString("&#39;")
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
