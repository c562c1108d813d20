package urlpattern

// https://urlpattern.spec.whatwg.org/#tokens
type token struct {
	tType tokenType
	// code point offset in the tokenized string
	index int
	value string
}

type tokenType uint8

// Token kinds, in the order the tokenizer tests for them.
const (
	tokenOpen  tokenType = iota // "{"
	tokenClose                  // "}"
	// tokenRegexp holds the ASCII source between balanced "(" and ")".
	tokenRegexp
	// tokenName holds the identifier following ":".
	tokenName
	tokenChar
	// tokenEscapedChar holds the code point following "\".
	tokenEscapedChar
	tokenOtherModifier // "?" or "+"
	// tokenAsterisk is either a full wildcard or the zero-or-more modifier,
	// depending on what precedes it.
	tokenAsterisk
	tokenEnd
	// tokenInvalidChar is only produced by the lenient policy, for input the
	// strict policy rejects.
	tokenInvalidChar
)

var tokenTypeNames = [...]string{
	tokenOpen:          "open",
	tokenClose:         "close",
	tokenRegexp:        "regexp",
	tokenName:          "name",
	tokenChar:          "char",
	tokenEscapedChar:   "escaped-char",
	tokenOtherModifier: "other-modifier",
	tokenAsterisk:      "asterisk",
	tokenEnd:           "end",
	tokenInvalidChar:   "invalid-char",
}

func (t tokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}

	return "unknown"
}
