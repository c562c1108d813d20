package urlpattern

// https://urlpattern.spec.whatwg.org/#component
type component struct {
	patternString   string
	regexpString    string
	matcher         matcher
	groupNameList   []string
	hasRegexpGroups bool
}

// https://urlpattern.spec.whatwg.org/#compile-a-component
func compileComponent(input string, encode encodingCallback, opts options) (*component, error) {
	parts, err := parsePatternString(input, opts, encode)
	if err != nil {
		return nil, err
	}

	regexpString, nameList := parts.generateRegularExpressionAndNameList(opts)

	m, err := compileRegexp(regexpString, opts.ignoreCase)
	if err != nil {
		return nil, err
	}

	return &component{
		patternString:   parts.generatePatternString(opts),
		regexpString:    regexpString,
		matcher:         m,
		groupNameList:   nameList,
		hasRegexpGroups: parts.hasRegexpGroups(),
	}, nil
}

func (c *component) test(input string) bool {
	return c.matcher.matchIndex(input) != nil
}

// https://urlpattern.spec.whatwg.org/#create-a-component-match-result
func (c *component) match(input string) (URLPatternComponentResult, bool) {
	loc := c.matcher.matchIndex(input)
	if loc == nil {
		return URLPatternComponentResult{}, false
	}

	groups := make(map[string]string, len(c.groupNameList))
	for i, name := range c.groupNameList {
		// group 0 is the whole match
		start, end := 2*(i+1), 2*(i+1)+1
		if end >= len(loc) || loc[start] < 0 {
			continue
		}

		groups[name] = input[loc[start]:loc[end]]
	}

	return URLPatternComponentResult{Input: input, Groups: groups}, true
}

// https://urlpattern.spec.whatwg.org/#protocol-component-matches-a-special-scheme
func (c *component) matchesSpecialScheme() bool {
	for _, scheme := range specialSchemes {
		if c.test(scheme) {
			return true
		}
	}

	return false
}
