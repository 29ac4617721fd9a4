package practice

import "strings"

// IsCorrect reports whether a submitted answer matches the expected
// meaning. Both sides are trimmed and compared case-insensitively; there
// is no partial credit and no fuzzy matching. An empty submission is a
// valid (wrong) answer, not an error.
func IsCorrect(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}
