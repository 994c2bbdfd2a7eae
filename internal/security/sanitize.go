package security

import (
	"regexp"
	"strings"
)

// injectionPatterns cover the payloads a spreadsheet or calendar import can
// smuggle into cell values. Matching is case-insensitive on the raw text
// before any unescaping.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[\s>]`),
	regexp.MustCompile(`(?i)</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)data:text/html`),
	regexp.MustCompile(`(?i)<iframe[\s>]`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)expression\s*\(`),
}

// ContainsInjection reports whether the text carries a script or URI
// injection payload.
func ContainsInjection(text string) bool {
	for _, pattern := range injectionPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

var (
	htmlTagPattern     = regexp.MustCompile(`<[^>]*>`)
	controlCharPattern = regexp.MustCompile("[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]")
)

// SanitizeText strips HTML tags and control characters from free-form input
// so stored values are plain text.
func SanitizeText(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = controlCharPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
