package services

import (
	"html"
	"regexp"
)

var (
	markdownBoldPattern    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	markdownHeadingPattern = regexp.MustCompile(`(?m)^## (.*)$`)
)

// RenderCoachHTML escapes model output and applies the two markdown forms the
// coach emits: **bold** and "## " headings.
func RenderCoachHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = markdownBoldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	return markdownHeadingPattern.ReplaceAllString(escaped, "<h3>$1</h3>")
}
