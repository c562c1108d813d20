// Package urlpattern implements the URLPattern web API: compiling patterns
// such as "https://*.example.com/books/:id" and matching URLs against them.
//
// Patterns are compiled to regular expressions. RE2 is used whenever it
// accepts the generated expression; custom groups using ECMAScript-only
// syntax such as lookahead fall back to a backtracking engine that only
// considers inputs up to 2048 bytes long.
//
// See the URL Pattern Standard at https://urlpattern.spec.whatwg.org/.
package urlpattern

import (
	"fmt"
)

// URLPattern is a compiled pattern. It is immutable once built and safe for
// concurrent use.
//
// https://urlpattern.spec.whatwg.org/#urlpattern
type URLPattern struct {
	protocol *component
	username *component
	password *component
	hostname *component
	port     *component
	pathname *component
	search   *component
	hash     *component
}

// New compiles a pattern given as a constructor string such as
// "https://*.example.com/books/:id". A relative pattern needs baseURL.
//
// https://urlpattern.spec.whatwg.org/#dom-urlpattern-urlpattern
func New(input string, baseURL *string, options Options) (*URLPattern, error) {
	init, err := parseConstructorString(input)
	if err != nil {
		return nil, err
	}

	if baseURL == nil && init.Protocol == nil {
		return nil, newError(ErrConfig, fmt.Errorf("%w: %q", ErrMissingProtocol, input))
	}

	if baseURL != nil {
		init.BaseURL = baseURL
	}

	return init.New(options)
}

// MustNew is like New but panics if the pattern cannot be compiled.
func MustNew(input string, baseURL *string, options Options) *URLPattern {
	p, err := New(input, baseURL, options)
	if err != nil {
		panic(err)
	}

	return p
}

// New compiles the structured pattern. Unset components match anything,
// unless they are inherited from BaseURL.
//
// https://urlpattern.spec.whatwg.org/#urlpattern-create
func (init *URLPatternInit) New(options Options) (*URLPattern, error) {
	processedInit, err := processInit(init, processTypePattern)
	if err != nil {
		return nil, err
	}

	for _, c := range [...]**string{
		&processedInit.Protocol,
		&processedInit.Username,
		&processedInit.Password,
		&processedInit.Hostname,
		&processedInit.Port,
		&processedInit.Pathname,
		&processedInit.Search,
		&processedInit.Hash,
	} {
		if *c == nil {
			wildcard := "*"
			*c = &wildcard
		}
	}

	if dp, ok := defaultPorts[*processedInit.Protocol]; ok && dp == *processedInit.Port {
		processedInit.Port = new(string)
	}

	compileOptions := defaultOptions.withIgnoreCase(options.IgnoreCase)

	b := &componentBuilder{}
	p := &URLPattern{}

	p.protocol = b.compile("protocol", *processedInit.Protocol, canonicalizeProtocol, defaultOptions)
	p.username = b.compile("username", *processedInit.Username, canonicalizeUserInfo, defaultOptions)
	p.password = b.compile("password", *processedInit.Password, canonicalizeUserInfo, defaultOptions)

	if isIPv6HostnamePattern(*processedInit.Hostname) {
		p.hostname = b.compile("hostname", *processedInit.Hostname, canonicalizeIPv6Hostname, hostnameOptions)
	} else {
		p.hostname = b.compile("hostname", *processedInit.Hostname, canonicalizeDomainName, hostnameOptions)
	}

	p.port = b.compile("port", *processedInit.Port, func(v string) (string, error) { return canonicalizePort(v, "") }, defaultOptions)

	if b.err != nil {
		return nil, b.err
	}

	if p.protocol.matchesSpecialScheme() {
		p.pathname = b.compile("pathname", *processedInit.Pathname, canonicalizePathname, pathnameOptions.withIgnoreCase(options.IgnoreCase))
	} else {
		p.pathname = b.compile("pathname", *processedInit.Pathname, canonicalizeOpaquePathname, compileOptions)
	}

	p.search = b.compile("search", *processedInit.Search, canonicalizeSearch, compileOptions)
	p.hash = b.compile("hash", *processedInit.Hash, canonicalizeHash, compileOptions)

	if b.err != nil {
		return nil, b.err
	}

	return p, nil
}

// componentBuilder keeps the first compile error so that the component list
// reads top to bottom.
type componentBuilder struct {
	err error
}

func (b *componentBuilder) compile(name, input string, encode encodingCallback, opts options) *component {
	if b.err != nil {
		return nil
	}

	c, err := compileComponent(input, encode, opts)
	if err != nil {
		b.err = inComponent(err, name, input)

		return nil
	}

	return c
}

// Test reports whether the URL input, resolved against baseURL when it is
// not empty, matches the pattern. Unparsable input never matches.
//
// https://urlpattern.spec.whatwg.org/#dom-urlpattern-test
func (p *URLPattern) Test(input, baseURL string) bool {
	values, ok := urlComponents(input, baseURL)
	if !ok {
		return false
	}

	return p.test(values)
}

// TestInit reports whether the structured URL matches the pattern.
func (p *URLPattern) TestInit(input *URLPatternInit) bool {
	values, ok := initComponents(input)
	if !ok {
		return false
	}

	return p.test(values)
}

// Match returns the captured groups of every component, or nil when input
// does not match.
//
// https://urlpattern.spec.whatwg.org/#dom-urlpattern-exec
func (p *URLPattern) Match(input, baseURL string) *URLPatternResult {
	values, ok := urlComponents(input, baseURL)
	if !ok {
		return nil
	}

	result := p.match(values)
	if result == nil {
		return nil
	}

	result.Inputs = []string{input}
	if baseURL != "" {
		result.Inputs = append(result.Inputs, baseURL)
	}

	return result
}

// MatchInit is like Match for a structured URL.
func (p *URLPattern) MatchInit(input *URLPatternInit) *URLPatternResult {
	values, ok := initComponents(input)
	if !ok {
		return nil
	}

	result := p.match(values)
	if result == nil {
		return nil
	}

	result.InitInputs = []*URLPatternInit{input}

	return result
}

// componentValues holds the eight canonical component strings of a URL.
type componentValues [8]string

func (p *URLPattern) components() [8]*component {
	return [8]*component{p.protocol, p.username, p.password, p.hostname, p.port, p.pathname, p.search, p.hash}
}

func (p *URLPattern) test(values componentValues) bool {
	for i, c := range p.components() {
		if !c.test(values[i]) {
			return false
		}
	}

	return true
}

// https://urlpattern.spec.whatwg.org/#url-pattern-match
func (p *URLPattern) match(values componentValues) *URLPatternResult {
	result := &URLPatternResult{}
	targets := [8]*URLPatternComponentResult{
		&result.Protocol,
		&result.Username,
		&result.Password,
		&result.Hostname,
		&result.Port,
		&result.Pathname,
		&result.Search,
		&result.Hash,
	}

	for i, c := range p.components() {
		r, ok := c.match(values[i])
		if !ok {
			return nil
		}

		*targets[i] = r
	}

	return result
}

func urlComponents(input, baseURL string) (componentValues, bool) {
	u, err := urlParser.Parse(input)
	if baseURL != "" {
		u, err = urlParser.ParseRef(baseURL, input)
	}

	if err != nil {
		return componentValues{}, false
	}

	return componentValues{
		u.Scheme(),
		u.Username(),
		u.Password(),
		u.Hostname(),
		u.Port(),
		u.Pathname(),
		u.Query(),
		u.Fragment(),
	}, true
}

func initComponents(input *URLPatternInit) (componentValues, bool) {
	init, err := processInit(input, processTypeURL)
	if err != nil {
		return componentValues{}, false
	}

	return componentValues{
		valueOr(init.Protocol, ""),
		valueOr(init.Username, ""),
		valueOr(init.Password, ""),
		valueOr(init.Hostname, ""),
		valueOr(init.Port, ""),
		valueOr(init.Pathname, ""),
		valueOr(init.Search, ""),
		valueOr(init.Hash, ""),
	}, true
}

// https://urlpattern.spec.whatwg.org/#dom-urlpattern-protocol
func (p *URLPattern) Protocol() string {
	return p.protocol.patternString
}

func (p *URLPattern) Username() string {
	return p.username.patternString
}

func (p *URLPattern) Password() string {
	return p.password.patternString
}

func (p *URLPattern) Hostname() string {
	return p.hostname.patternString
}

func (p *URLPattern) Port() string {
	return p.port.patternString
}

func (p *URLPattern) Pathname() string {
	return p.pathname.patternString
}

func (p *URLPattern) Search() string {
	return p.search.patternString
}

func (p *URLPattern) Hash() string {
	return p.hash.patternString
}

// HasRegExpGroups reports whether any component uses a custom regexp group.
//
// https://urlpattern.spec.whatwg.org/#dom-urlpattern-hasregexpgroups
func (p *URLPattern) HasRegExpGroups() bool {
	for _, c := range p.components() {
		if c.hasRegexpGroups {
			return true
		}
	}

	return false
}

// String renders every canonical component on one line, for logs.
func (p *URLPattern) String() string {
	return fmt.Sprintf("%s://%s:%s@%s:%s%s?%s#%s",
		p.Protocol(), p.Username(), p.Password(), p.Hostname(), p.Port(), p.Pathname(), p.Search(), p.Hash())
}
