package urlpattern

import (
	"strings"
	"unicode/utf8"
)

const (
	// https://urlpattern.spec.whatwg.org/#escape-a-regexp-string
	regexpSyntaxChars = `.+*?^${}()[]|/\`
	// https://urlpattern.spec.whatwg.org/#escape-a-pattern-string
	patternSyntaxChars = `+*?:{}()\`
)

func escapeRegexpString(s string) string {
	return escapeChars(s, regexpSyntaxChars)
}

func escapePatternString(s string) string {
	return escapeChars(s, patternSyntaxChars)
}

// escapeChars prefixes every occurrence of an ASCII code point listed in
// special with a backslash.
func escapeChars(s, special string) string {
	if !strings.ContainsAny(s, special) {
		return s
	}

	var b strings.Builder
	b.Grow(2 * len(s))
	for _, c := range s {
		if c < utf8.RuneSelf && strings.IndexByte(special, byte(c)) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}

	return b.String()
}
