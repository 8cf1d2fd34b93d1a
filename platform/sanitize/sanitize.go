// Package sanitize cleans untrusted text before it reaches the dashboard.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	blankLinesRegex = regexp.MustCompile(`\n{3,}`)
)

// Text strips HTML tags, decodes entities and strips again so encoded tags
// cannot survive. Runs of blank lines collapse to one.
func Text(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = html.UnescapeString(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, "\r\n", "\n")
	result = blankLinesRegex.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
