package watch

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented characters and drops the combining marks,
// so "José" folds to "Jose" before comparison.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes free text for comparison: accents stripped,
// upper-cased, everything outside A-Z/0-9 folded to a single space, and the
// result trimmed. It is total (never fails) and idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	folded, _, err := transform.String(stripMarks, text)
	if err != nil {
		folded = text
	}
	// Full case mapping, so "ß" expands to "SS" instead of being dropped
	// by the filter below. A Caser is stateful, hence one per call.
	folded = cases.Upper(language.Und).String(folded)
	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// TokenContainsAll reports whether every whitespace-separated token of the
// normalized needle appears as a substring of the normalized haystack.
// Containment is per token and not word-bounded: a short token may match
// inside a longer word.
func TokenContainsAll(needle, haystack string) bool {
	hay := Normalize(haystack)
	for _, tok := range strings.Fields(Normalize(needle)) {
		if !strings.Contains(hay, tok) {
			return false
		}
	}
	return true
}
