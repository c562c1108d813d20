package urlpattern

import (
	"fmt"
	"strconv"
	"strings"
)

// https://urlpattern.spec.whatwg.org/#full-wildcard-regexp-value
const fullWildcardRegexpValue = ".*"

// anyCodePointClass compiles ECMAScript's "[^]", which RE2 rejects.
const anyCodePointClass = `[\s\S]`

// https://urlpattern.spec.whatwg.org/#encoding-callback
type encodingCallback func(string) (string, error)

// tokenCursor walks a fully tokenized pattern. The token list always ends
// with a tokenEnd, which is never consumed implicitly.
type tokenCursor struct {
	tokens []token
	index  int
}

func (c *tokenCursor) done() bool {
	return c.index >= len(c.tokens)
}

// https://urlpattern.spec.whatwg.org/#try-to-consume-a-token
func (c *tokenCursor) tryConsume(tType tokenType) *token {
	if c.done() || c.tokens[c.index].tType != tType {
		return nil
	}

	t := &c.tokens[c.index]
	c.index++

	return t
}

// https://urlpattern.spec.whatwg.org/#consume-a-required-token
func (c *tokenCursor) consumeRequired(tType tokenType) (*token, error) {
	if t := c.tryConsume(tType); t != nil {
		return t, nil
	}

	next := c.tokens[len(c.tokens)-1]
	if !c.done() {
		next = c.tokens[c.index]
	}

	return nil, newError(ErrParse, fmt.Errorf("%w: want %s, got %s %q at index %d", ErrRequiredToken, tType, next.tType, next.value, next.index))
}

// https://urlpattern.spec.whatwg.org/#try-to-consume-a-regexp-or-wildcard-token
func (c *tokenCursor) tryConsumeRegexpOrWildcard(nameToken *token) *token {
	t := c.tryConsume(tokenRegexp)
	if nameToken == nil && t == nil {
		t = c.tryConsume(tokenAsterisk)
	}

	return t
}

// https://urlpattern.spec.whatwg.org/#try-to-consume-a-modifier-token
func (c *tokenCursor) tryConsumeModifier() *token {
	if t := c.tryConsume(tokenOtherModifier); t != nil {
		return t
	}

	return c.tryConsume(tokenAsterisk)
}

// https://urlpattern.spec.whatwg.org/#consume-text
func (c *tokenCursor) consumeText() string {
	var result strings.Builder
	for {
		t := c.tryConsume(tokenChar)
		if t == nil {
			t = c.tryConsume(tokenEscapedChar)
		}
		if t == nil {
			return result.String()
		}

		result.WriteString(t.value)
	}
}

type patternParser struct {
	tokenCursor
	encode                encodingCallback
	prefix                string
	segmentWildcardRegexp string
	parts                 partList
	pendingFixedValue     string
	nextNumericName       int
}

// https://urlpattern.spec.whatwg.org/#parse-a-pattern-string
func parsePatternString(input string, opts options, encode encodingCallback) (partList, error) {
	tokens, err := tokenize(input, tokenizePolicyStrict)
	if err != nil {
		return nil, err
	}

	p := &patternParser{
		tokenCursor:           tokenCursor{tokens: tokens},
		encode:                encode,
		prefix:                opts.prefix(),
		segmentWildcardRegexp: generateSegmentWildcardRegexp(opts),
	}

	for !p.done() {
		if err := p.step(); err != nil {
			return nil, err
		}
	}

	return p.parts, nil
}

func (p *patternParser) step() error {
	charToken := p.tryConsume(tokenChar)
	nameToken := p.tryConsume(tokenName)
	regexpOrWildcardToken := p.tryConsumeRegexpOrWildcard(nameToken)

	// ":name", "(regexp)" or "*", optionally preceded by the prefix code point
	if nameToken != nil || regexpOrWildcardToken != nil {
		prefix := ""
		if charToken != nil {
			prefix = charToken.value
		}

		if prefix != "" && prefix != p.prefix {
			p.pendingFixedValue += prefix
			prefix = ""
		}

		if err := p.flushPendingFixedValue(); err != nil {
			return err
		}

		return p.addPart(prefix, nameToken, regexpOrWildcardToken, "", p.tryConsumeModifier())
	}

	fixedToken := charToken
	if fixedToken == nil {
		fixedToken = p.tryConsume(tokenEscapedChar)
	}
	if fixedToken != nil {
		p.pendingFixedValue += fixedToken.value

		return nil
	}

	if p.tryConsume(tokenOpen) != nil {
		prefix := p.consumeText()
		nameToken := p.tryConsume(tokenName)
		regexpOrWildcardToken := p.tryConsumeRegexpOrWildcard(nameToken)
		suffix := p.consumeText()

		if _, err := p.consumeRequired(tokenClose); err != nil {
			return err
		}

		return p.addPart(prefix, nameToken, regexpOrWildcardToken, suffix, p.tryConsumeModifier())
	}

	if err := p.flushPendingFixedValue(); err != nil {
		return err
	}

	_, err := p.consumeRequired(tokenEnd)

	return err
}

// https://urlpattern.spec.whatwg.org/#maybe-add-a-part-from-the-pending-fixed-value
func (p *patternParser) flushPendingFixedValue() error {
	if p.pendingFixedValue == "" {
		return nil
	}

	encodedValue, err := p.encode(p.pendingFixedValue)
	if err != nil {
		return err
	}

	p.pendingFixedValue = ""
	p.parts = append(p.parts, part{pType: partFixedText, value: encodedValue})

	return nil
}

// https://urlpattern.spec.whatwg.org/#add-a-part
func (p *patternParser) addPart(prefix string, nameToken, regexpOrWildcardToken *token, suffix string, modifierToken *token) error {
	modifier := partModifierNone
	if modifierToken != nil {
		modifier = modifierFromString(modifierToken.value)
	}

	// a brace group without a capture or a modifier is plain text
	if nameToken == nil && regexpOrWildcardToken == nil && modifier == partModifierNone {
		p.pendingFixedValue += prefix

		return nil
	}

	if err := p.flushPendingFixedValue(); err != nil {
		return err
	}

	if nameToken == nil && regexpOrWildcardToken == nil {
		if prefix == "" {
			return nil
		}

		encodedValue, err := p.encode(prefix)
		if err != nil {
			return err
		}

		p.parts = append(p.parts, part{pType: partFixedText, value: encodedValue, modifier: modifier})

		return nil
	}

	var regexpValue string
	switch {
	case regexpOrWildcardToken == nil:
		regexpValue = p.segmentWildcardRegexp
	case regexpOrWildcardToken.tType == tokenAsterisk:
		regexpValue = fullWildcardRegexpValue
	default:
		regexpValue = regexpOrWildcardToken.value
	}

	pType := partRegexp
	switch regexpValue {
	case p.segmentWildcardRegexp:
		pType = partSegmentWildcard
		regexpValue = ""
	case fullWildcardRegexpValue:
		pType = partFullWildcard
		regexpValue = ""
	}

	var name string
	if nameToken != nil {
		name = nameToken.value
	} else {
		name = strconv.Itoa(p.nextNumericName)
		p.nextNumericName++
	}

	if p.parts.hasName(name) {
		return newError(ErrParse, fmt.Errorf("%w %q", ErrDuplicatePartName, name))
	}

	encodedPrefix, err := p.encode(prefix)
	if err != nil {
		return err
	}

	encodedSuffix, err := p.encode(suffix)
	if err != nil {
		return err
	}

	p.parts = append(p.parts, part{
		pType:    pType,
		value:    regexpValue,
		modifier: modifier,
		name:     name,
		prefix:   encodedPrefix,
		suffix:   encodedSuffix,
	})

	return nil
}

// https://urlpattern.spec.whatwg.org/#generate-a-segment-wildcard-regexp
func generateSegmentWildcardRegexp(opts options) string {
	if opts.delimiterCodePoint == 0 {
		return "[^]+?"
	}

	return "[^" + escapeRegexpString(string(opts.delimiterCodePoint)) + "]+?"
}

// compiledSegmentWildcardRegexp is the segment wildcard as compiled, so that
// it stays within the syntax RE2 accepts.
func compiledSegmentWildcardRegexp(opts options) string {
	if opts.delimiterCodePoint == 0 {
		return anyCodePointClass + "+?"
	}

	return generateSegmentWildcardRegexp(opts)
}
