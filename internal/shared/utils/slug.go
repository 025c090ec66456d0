package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
	slugHyphenRuns   = regexp.MustCompile(`-+`)
	slugShape        = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// GenerateSlug converts a display name into a URL-safe slug:
// "Jane Q. Doe" -> "jane-q-doe".
func GenerateSlug(input string) string {
	lower := strings.ToLower(strings.TrimSpace(input))
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := slugInvalidChars.ReplaceAllString(hyphenated, "")
	normalized := slugHyphenRuns.ReplaceAllString(cleaned, "-")
	return strings.Trim(normalized, "-")
}

// IsValidSlug reports whether s is already in canonical slug form.
// Slugs are immutable lookup keys, so this is checked once at create time.
func IsValidSlug(s string) bool {
	if len(s) == 0 || len(s) > 120 {
		return false
	}
	return slugShape.MatchString(s)
}
