package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeInput strips control characters, collapses whitespace and caps the
// result at max runes. It is applied to user text before it is placed in a prompt.
func SanitizeInput(s string, max int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == utf8.RuneError {
			return -1
		}
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if max > 0 && utf8.RuneCountInString(cleaned) > max {
		runes := []rune(cleaned)
		cleaned = strings.TrimSpace(string(runes[:max]))
	}
	return cleaned
}
