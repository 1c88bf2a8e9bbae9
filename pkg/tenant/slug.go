package tenant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes characters and strips combining marks, turning
// "café" into "cafe".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Sanitize normalizes a raw tenant identifier into a lowercase slug:
// diacritics are folded to ASCII, everything outside [a-z0-9-] is dropped,
// and leading/trailing hyphens are trimmed. Returns "" when nothing
// slug-like remains.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}

	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteRune('-')
		}
	}

	return strings.Trim(b.String(), "-")
}
