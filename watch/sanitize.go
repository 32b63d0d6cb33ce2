package watch

import (
	"regexp"
	"strings"
)

// Government list feeds routinely ship stray control characters, bare
// ampersands and the two non-character code points; any of them makes a
// strict XML parser reject the whole document.
var (
	ctrlChars = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F-\x9F]`)
	entityRef = regexp.MustCompile(`^[a-zA-Z0-9#]{1,8};`)
)

// SanitizeXML strips control characters outside printable/whitespace
// range, escapes ampersands that do not open an entity reference, and
// drops U+FFFE/U+FFFF. It runs unconditionally before any parse attempt.
func SanitizeXML(raw string) string {
	out := ctrlChars.ReplaceAllString(raw, "")
	out = escapeBareAmps(out)
	out = strings.ReplaceAll(out, "\uFFFE", "")
	out = strings.ReplaceAll(out, "\uFFFF", "")
	return out
}

func escapeBareAmps(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '&' {
			b.WriteByte(c)
			continue
		}
		if entityRef.MatchString(s[i+1:]) {
			b.WriteByte(c)
			continue
		}
		b.WriteString("&amp;")
	}
	return b.String()
}
