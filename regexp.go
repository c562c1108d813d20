package urlpattern

import (
	"fmt"
	"regexp"

	"github.com/auvred/regonaut"
)

// maxBacktrackingInput bounds the input handed to the backtracking engine.
// Longer inputs never match a component compiled with it.
const maxBacktrackingInput = 2048

// matcher runs a compiled component expression against a whole input and
// returns submatch byte offsets in the layout of
// regexp.FindStringSubmatchIndex, or nil when the input does not match.
type matcher interface {
	matchIndex(input string) []int
}

// re2Matcher runs in time linear in the input and needs no budget.
type re2Matcher struct {
	re *regexp.Regexp
}

func (m re2Matcher) matchIndex(input string) []int {
	return m.re.FindStringSubmatchIndex(input)
}

// ecmaMatcher handles the ECMAScript constructs RE2 lacks, such as
// lookaround and backreferences inside custom regexp groups.
type ecmaMatcher struct {
	re *regonaut.RegExp
}

func (m ecmaMatcher) matchIndex(input string) []int {
	if len(input) > maxBacktrackingInput {
		return nil
	}

	match := m.re.FindMatch([]byte(input))
	if match == nil {
		return nil
	}

	loc := make([]int, 0, 2*len(match.Groups))
	for _, g := range match.Groups {
		loc = append(loc, g.Start, g.End)
	}

	return loc
}

// compileRegexp compiles a generated "^...$" source with the semantics of an
// ECMAScript regular expression carrying the "v" flag, and the "i" flag when
// ignoreCase is set. Sources the ECMAScript grammar rejects are invalid even
// when RE2 would accept them. RE2 runs the sources it also accepts, unless
// they use class set notation; the two engines otherwise only part ways on
// line terminators and non-ASCII white space, which canonicalization never
// leaves in a matched input.
func compileRegexp(source string, ignoreCase bool) (matcher, error) {
	flags := regonaut.FlagUnicodeSets
	if ignoreCase {
		flags |= regonaut.FlagIgnoreCase
	}

	ecma, err := regonaut.Compile(source, flags)
	if err != nil {
		return nil, newError(ErrCompile, fmt.Errorf("%q: %w", source, err))
	}

	if !usesClassSetSyntax(source) {
		re2Source := source
		if ignoreCase {
			re2Source = "(?i)" + source
		}

		if re, err := regexp.Compile(re2Source); err == nil {
			return re2Matcher{re: re}, nil
		}
	}

	return ecmaMatcher{re: ecma}, nil
}

// usesClassSetSyntax reports whether a character class in source nests
// another class or uses the "--" and "&&" set operators, which RE2 reads as
// plain members.
func usesClassSetSyntax(source string) bool {
	inClass := false
	for i := 0; i < len(source); i++ {
		switch c := source[i]; {
		case c == '\\':
			i++
		case !inClass:
			inClass = c == '['
		case c == '[':
			return true
		case c == ']':
			inClass = false
		case (c == '-' || c == '&') && i+1 < len(source) && source[i+1] == c:
			return true
		}
	}

	return false
}
