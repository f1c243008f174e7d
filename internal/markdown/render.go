package markdown

import (
	"regexp"
	"strings"
)

var horizontalRule = regexp.MustCompile(`^\s*[-*]{3,}\s*$`)

// renderState carries the per-pass rendering state: emitted fragments and
// whether a list block is currently open. One instance per document pass,
// never shared.
type renderState struct {
	parts  []string
	inList bool
}

func (s *renderState) emit(fragment string) {
	s.parts = append(s.parts, fragment)
}

func (s *renderState) closeList() {
	if s.inList {
		s.parts = append(s.parts, "</ul>")
		s.inList = false
	}
}

func (s *renderState) openList() {
	if !s.inList {
		s.parts = append(s.parts, "<ul>")
		s.inList = true
	}
}

// RenderHTML renders a Document into a complete, self-contained HTML page.
//
// Lines are processed top to bottom: horizontal rules, blank lines, headings
// (longest prefix first), list items (consecutive items share one list), and
// paragraphs for everything else. Any open list is closed at end of input.
func RenderHTML(doc Document) string {
	state := &renderState{}
	title := ""

	for _, ln := range doc.Lines() {
		switch {
		case horizontalRule.MatchString(ln):
			state.closeList()
			state.emit("<hr>")

		case strings.TrimSpace(ln) == "":
			state.closeList()

		case strings.HasPrefix(ln, "### "):
			state.closeList()
			state.emit("<h3>" + RenderInline(strings.TrimSpace(ln[4:])) + "</h3>")

		case strings.HasPrefix(ln, "## "):
			state.closeList()
			state.emit("<h2>" + RenderInline(strings.TrimSpace(ln[3:])) + "</h2>")

		case strings.HasPrefix(ln, "# "):
			state.closeList()
			heading := strings.TrimSpace(ln[2:])
			if title == "" {
				title = heading
			}
			state.emit("<h1>" + RenderInline(heading) + "</h1>")

		case strings.HasPrefix(ln, "- ") || strings.HasPrefix(ln, "* "):
			state.openList()
			state.emit("<li>" + RenderInline(strings.TrimSpace(ln[2:])) + "</li>")

		default:
			state.closeList()
			state.emit("<p>" + RenderInline(strings.TrimSpace(ln)) + "</p>")
		}
	}
	state.closeList()

	return assemblePage(title, strings.Join(state.parts, ""))
}

// pageCSS keeps the layout print-friendly and ATS-parseable: plain sans
// font, constrained width, small headings, monospace code background.
const pageCSS = `
    body { font-family: Arial, sans-serif; margin: 40px auto; color: #111; max-width: 860px; padding: 0 20px; }
    h1 { font-size: 26px; margin: 0 0 4px; }
    h2 { font-size: 16px; margin: 20px 0 4px; border-bottom: 1px solid #ccc; padding-bottom: 2px; text-transform: uppercase; letter-spacing: 0.05em; }
    h3 { font-size: 14px; margin: 12px 0 2px; }
    p { font-size: 13px; line-height: 1.5; margin: 3px 0; }
    ul { margin: 4px 0 10px 20px; padding: 0; }
    li { font-size: 13px; line-height: 1.5; margin: 2px 0; }
    hr { border: none; border-top: 1px solid #ddd; margin: 14px 0; }
    code { background: #f4f4f4; padding: 1px 4px; border-radius: 3px; font-size: 12px; }
    strong { font-weight: 600; }
`

// assemblePage wraps the rendered body in the page envelope. The title comes
// from the document's first top-level heading so the page is named after the
// candidate; "Resume" is the fallback for documents without one.
func assemblePage(title, body string) string {
	if strings.TrimSpace(title) == "" {
		title = "Resume"
	}
	var page strings.Builder
	page.WriteString("<!doctype html><html lang='en'><head><meta charset='utf-8'>")
	page.WriteString("<meta name='viewport' content='width=device-width, initial-scale=1'>")
	page.WriteString("<title>" + escapeHTML(title) + "</title><style>")
	page.WriteString(pageCSS)
	page.WriteString("</style></head><body>")
	page.WriteString(body)
	page.WriteString("</body></html>")
	return page.String()
}
