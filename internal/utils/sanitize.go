package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeTextField strips markup and folds all whitespace, including line
// breaks, into single spaces.
func SanitizeTextField(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// SanitizeTextareaField strips markup but keeps line breaks.
func SanitizeTextareaField(s string) string {
	lines := strings.Split(strings.ReplaceAll(StripHTML(s), "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// StripHTML removes all HTML and returns plain text.
func StripHTML(s string) string {
	return html.UnescapeString(strictPolicy.Sanitize(s))
}
