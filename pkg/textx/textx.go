// Package textx provides small text utilities used across the project.
package textx

import (
	"strings"
	"unicode/utf8"
)

// SanitizeText removes control characters except tab/newline/CR and trims spaces.
func SanitizeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || (r >= 32 && r != 127) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// CharCount counts runes, matching the length the user sees in the preview
// rather than the UTF-8 byte length.
func CharCount(s string) int { return utf8.RuneCountInString(s) }

// WordCount counts whitespace-separated fields.
func WordCount(s string) int { return len(strings.Fields(s)) }
