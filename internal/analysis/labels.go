package analysis

import (
	"strings"
	"unicode"
)

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "context-level" becomes "Context-Level" and
// "n action" becomes "N Action".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// DisplayName turns a column key into a label: underscores become spaces and
// the result is title-cased.
func DisplayName(key string) string {
	return TitleCase(strings.ReplaceAll(key, "_", " "))
}
