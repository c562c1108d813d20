package urlpattern

import (
	"fmt"
	"unicode"

	"golang.org/x/exp/utf8string"
)

// https://urlpattern.spec.whatwg.org/#tokenizing
type tokenizePolicy bool

const (
	// tokenizePolicyLenient turns tokenizing errors into invalid-char tokens.
	tokenizePolicyLenient tokenizePolicy = false
	// tokenizePolicyStrict aborts on the first tokenizing error.
	tokenizePolicyStrict tokenizePolicy = true
)

// tokenizer positions are code point offsets, not byte offsets.
type tokenizer struct {
	input     *utf8string.String
	length    int
	policy    tokenizePolicy
	tokens    []token
	index     int
	nextIndex int
	codePoint rune
}

// https://urlpattern.spec.whatwg.org/#tokenize
func tokenize(input string, policy tokenizePolicy) ([]token, error) {
	t := &tokenizer{
		input:  utf8string.NewString(input),
		policy: policy,
	}
	t.length = t.input.RuneCount()
	t.tokens = make([]token, 0, t.length+1)

	for t.index < t.length {
		t.seek(t.index)

		var err error
		switch t.codePoint {
		case '*':
			t.emitCurrent(tokenAsterisk)
		case '+', '?':
			t.emitCurrent(tokenOtherModifier)
		case '\\':
			err = t.consumeEscapedChar()
		case '{':
			t.emitCurrent(tokenOpen)
		case '}':
			t.emitCurrent(tokenClose)
		case ':':
			err = t.consumeName()
		case '(':
			err = t.consumeRegexp()
		default:
			t.emitCurrent(tokenChar)
		}

		if err != nil {
			return nil, err
		}
	}

	t.emit(tokenEnd, t.index, t.index)

	return t.tokens, nil
}

func (t *tokenizer) consumeEscapedChar() error {
	if t.index == t.length-1 {
		return t.fail(t.nextIndex, t.index, "trailing backslash")
	}

	escapedIndex := t.nextIndex
	t.next()
	t.emit(tokenEscapedChar, t.nextIndex, escapedIndex)

	return nil
}

func (t *tokenizer) consumeName() error {
	start := t.nextIndex
	position := start

	for position < t.length {
		t.seek(position)
		if !isValidNameCodePoint(t.codePoint, position == start) {
			break
		}

		position = t.nextIndex
	}

	if position <= start {
		return t.fail(start, t.index, "missing group name")
	}

	t.emit(tokenName, position, start)

	return nil
}

func (t *tokenizer) consumeRegexp() error {
	depth := 1
	start := t.nextIndex
	position := start

scan:
	for position < t.length {
		t.seek(position)

		if !isASCII(t.codePoint) {
			return t.fail(start, t.index, "non-ASCII code point in regexp group")
		}
		if position == start && t.codePoint == '?' {
			return t.fail(start, t.index, `regexp group starting with "?"`)
		}

		switch t.codePoint {
		case '\\':
			if position == t.length-1 {
				return t.fail(start, t.index, "unterminated escape in regexp group")
			}

			t.next()
			if !isASCII(t.codePoint) {
				return t.fail(start, t.index, "non-ASCII code point in regexp group")
			}

			position = t.nextIndex

			continue

		case ')':
			depth--
			if depth == 0 {
				position = t.nextIndex

				break scan
			}

		case '(':
			depth++
			if position == t.length-1 {
				return t.fail(start, t.index, "unterminated regexp group")
			}

			// only non-capturing and lookaround groups may be nested
			lookahead := t.nextIndex
			t.next()
			if t.codePoint != '?' {
				return t.fail(start, t.index, "capturing group inside regexp group")
			}
			t.nextIndex = lookahead
		}

		position = t.nextIndex
	}

	if depth != 0 {
		return t.fail(start, t.index, "unbalanced regexp group")
	}

	length := position - start - 1
	if length == 0 {
		return t.fail(start, t.index, "empty regexp group")
	}

	t.addToken(tokenRegexp, position, start, length)

	return nil
}

func (t *tokenizer) next() {
	t.codePoint = t.input.At(t.nextIndex)
	t.nextIndex++
}

func (t *tokenizer) seek(index int) {
	t.nextIndex = index
	t.next()
}

func (t *tokenizer) addToken(tType tokenType, nextPosition, valuePosition, valueLength int) {
	t.tokens = append(t.tokens, token{
		tType: tType,
		index: t.index,
		value: t.input.Slice(valuePosition, valuePosition+valueLength),
	})
	t.index = nextPosition
}

func (t *tokenizer) emit(tType tokenType, nextPosition, valuePosition int) {
	t.addToken(tType, nextPosition, valuePosition, nextPosition-valuePosition)
}

func (t *tokenizer) emitCurrent(tType tokenType) {
	t.emit(tType, t.nextIndex, t.index)
}

// https://urlpattern.spec.whatwg.org/#process-a-tokenizing-error
func (t *tokenizer) fail(nextPosition, valuePosition int, reason string) error {
	if t.policy == tokenizePolicyStrict {
		return newError(ErrTokenizing, fmt.Errorf("%s at index %d", reason, valuePosition))
	}

	t.emit(tokenInvalidChar, nextPosition, valuePosition)

	return nil
}

// https://urlpattern.spec.whatwg.org/#is-a-valid-name-code-point
func isValidNameCodePoint(codePoint rune, first bool) bool {
	if first {
		return codePoint == '$' || codePoint == '_' || isIdentifierStart(codePoint)
	}

	return codePoint == '$' || codePoint == '\u200C' || codePoint == '\u200D' || isIdentifierPart(codePoint)
}

func isIdentifierStart(codePoint rune) bool {
	return unicode.In(
		codePoint,
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
	) && !unicode.In(
		codePoint,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

func isIdentifierPart(codePoint rune) bool {
	return unicode.In(
		codePoint,
		unicode.L,
		unicode.Nl,
		unicode.Other_ID_Start,
		unicode.Mn,
		unicode.Mc,
		unicode.Nd,
		unicode.Pc,
		unicode.Other_ID_Continue,
	) && !unicode.In(
		codePoint,
		unicode.Pattern_Syntax,
		unicode.Pattern_White_Space,
	)
}

func isASCII(codePoint rune) bool {
	return codePoint >= 0 && codePoint <= unicode.MaxASCII
}

func isASCIIDigit(codePoint rune) bool {
	return codePoint >= '0' && codePoint <= '9'
}
