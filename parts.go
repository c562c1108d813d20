package urlpattern

import (
	"strings"
	"unicode/utf8"
)

type partType uint8

const (
	partFixedText partType = iota
	// partRegexp is a group with a custom regular expression, as in `(\d+)`.
	partRegexp
	// partSegmentWildcard matches up to the next segment delimiter, as a
	// plain ":name" does.
	partSegmentWildcard
	// partFullWildcard matches everything, as "*" does.
	partFullWildcard
)

// partModifier is the "?", "*" or "+" following a part, if any.
type partModifier uint8

const (
	partModifierNone partModifier = iota
	partModifierOptional
	partModifierZeroOrMore
	partModifierOneOrMore
)

func modifierFromString(s string) partModifier {
	switch s {
	case "?":
		return partModifierOptional
	case "*":
		return partModifierZeroOrMore
	case "+":
		return partModifierOneOrMore
	default:
		return partModifierNone
	}
}

// https://urlpattern.spec.whatwg.org/#convert-a-modifier-to-a-string
func (m partModifier) String() string {
	switch m {
	case partModifierOptional:
		return "?"
	case partModifierZeroOrMore:
		return "*"
	case partModifierOneOrMore:
		return "+"
	default:
		return ""
	}
}

func (m partModifier) repeats() bool {
	return m == partModifierZeroOrMore || m == partModifierOneOrMore
}

// https://urlpattern.spec.whatwg.org/#part
type part struct {
	pType    partType
	value    string
	modifier partModifier
	name     string
	prefix   string
	suffix   string
}

// regexpValue returns the expression matched by a capturing part.
func (p part) regexpValue(opts options) string {
	switch p.pType {
	case partSegmentWildcard:
		return compiledSegmentWildcardRegexp(opts)
	case partFullWildcard:
		return fullWildcardRegexpValue
	default:
		return p.value
	}
}

type partList []part

func (pl partList) hasName(name string) bool {
	for _, p := range pl {
		if p.name == name {
			return true
		}
	}

	return false
}

func (pl partList) hasRegexpGroups() bool {
	for _, p := range pl {
		if p.pType == partRegexp {
			return true
		}
	}

	return false
}

// https://urlpattern.spec.whatwg.org/#generate-a-regular-expression-and-name-list
func (pl partList) generateRegularExpressionAndNameList(opts options) (string, []string) {
	var result strings.Builder
	nameList := make([]string, 0, len(pl))

	result.WriteByte('^')

	for _, p := range pl {
		if p.pType == partFixedText {
			if p.modifier == partModifierNone {
				result.WriteString(escapeRegexpString(p.value))
			} else {
				result.WriteString("(?:" + escapeRegexpString(p.value) + ")" + p.modifier.String())
			}

			continue
		}

		nameList = append(nameList, p.name)

		value := p.regexpValue(opts)
		modifier := p.modifier.String()

		if p.prefix == "" && p.suffix == "" {
			if p.modifier.repeats() {
				result.WriteString("((?:" + value + ")" + modifier + ")")
			} else {
				result.WriteString("(" + value + ")" + modifier)
			}

			continue
		}

		prefix := escapeRegexpString(p.prefix)
		suffix := escapeRegexpString(p.suffix)

		if !p.modifier.repeats() {
			result.WriteString("(?:" + prefix + "(" + value + ")" + suffix + ")" + modifier)

			continue
		}

		// every repetition after the first carries its own suffix and prefix
		result.WriteString("(?:" + prefix +
			"((?:" + value + ")(?:" + suffix + prefix + "(?:" + value + "))*)" +
			suffix + ")")
		if p.modifier == partModifierZeroOrMore {
			result.WriteByte('?')
		}
	}

	result.WriteByte('$')

	return result.String(), nameList
}

// https://urlpattern.spec.whatwg.org/#generate-a-pattern-string
func (pl partList) generatePatternString(opts options) string {
	var result strings.Builder

	for i, p := range pl {
		var previous, next *part
		if i > 0 {
			previous = &pl[i-1]
		}
		if i < len(pl)-1 {
			next = &pl[i+1]
		}

		if p.pType == partFixedText {
			if p.modifier == partModifierNone {
				result.WriteString(escapePatternString(p.value))
			} else {
				result.WriteString("{" + escapePatternString(p.value) + "}" + p.modifier.String())
			}

			continue
		}

		customName := !isASCIIDigit(firstCodePoint(p.name))
		needsGrouping := p.suffix != "" || (p.prefix != "" && p.prefix != opts.prefix())

		// ":foo" followed by "bar" would read back as ":foobar"
		if !needsGrouping &&
			customName &&
			p.pType == partSegmentWildcard &&
			p.modifier == partModifierNone &&
			next != nil &&
			next.prefix == "" &&
			next.suffix == "" {
			if next.pType == partFixedText {
				needsGrouping = isValidNameCodePoint(firstCodePoint(next.value), false)
			} else {
				needsGrouping = isASCIIDigit(firstCodePoint(next.name))
			}
		}

		// "/" followed by ":foo" would read back as a prefixed group
		if !needsGrouping &&
			p.prefix == "" &&
			previous != nil &&
			previous.pType == partFixedText &&
			opts.prefixCodePoint != 0 &&
			lastCodePoint(previous.value) == rune(opts.prefixCodePoint) {
			needsGrouping = true
		}

		if needsGrouping {
			result.WriteByte('{')
		}

		result.WriteString(escapePatternString(p.prefix))

		if customName {
			result.WriteString(":" + p.name)
		}

		switch p.pType {
		case partRegexp:
			result.WriteString("(" + p.value + ")")

		case partSegmentWildcard:
			if !customName {
				result.WriteString("(" + generateSegmentWildcardRegexp(opts) + ")")
			}

		case partFullWildcard:
			if !customName && (previous == nil ||
				previous.pType == partFixedText ||
				previous.modifier != partModifierNone ||
				needsGrouping ||
				p.prefix != "") {
				result.WriteByte('*')
			} else {
				result.WriteString("(" + fullWildcardRegexpValue + ")")
			}
		}

		if p.pType == partSegmentWildcard &&
			customName &&
			p.suffix != "" &&
			isValidNameCodePoint(firstCodePoint(p.suffix), false) {
			result.WriteByte('\\')
		}

		result.WriteString(escapePatternString(p.suffix))

		if needsGrouping {
			result.WriteByte('}')
		}

		result.WriteString(p.modifier.String())
	}

	return result.String()
}

func firstCodePoint(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)

	return r
}

func lastCodePoint(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)

	return r
}
