package urlpattern

// Collection is an ordered list of patterns matched first to last, the way
// a router picks a route.
//
// A Collection must not be modified with Add once it is shared between
// goroutines; matching is safe for concurrent use.
type Collection struct {
	names    []string
	patterns []*URLPattern
}

// NewCollection returns a collection of unnamed patterns.
func NewCollection(patterns ...*URLPattern) *Collection {
	c := &Collection{}
	for _, p := range patterns {
		c.Add("", p)
	}

	return c
}

// Add appends a pattern. Names are informational and need not be unique.
func (c *Collection) Add(name string, p *URLPattern) {
	c.names = append(c.names, name)
	c.patterns = append(c.patterns, p)
}

func (c *Collection) Len() int {
	return len(c.patterns)
}

// Names returns the pattern names in matching order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)

	return names
}

// Pattern returns the i-th pattern.
func (c *Collection) Pattern(i int) *URLPattern {
	return c.patterns[i]
}

// Test reports whether any pattern matches input.
func (c *Collection) Test(input, baseURL string) bool {
	_, i := c.FindPattern(input, baseURL)

	return i >= 0
}

// FindPattern returns the first pattern matching input and its index, or
// nil and -1.
func (c *Collection) FindPattern(input, baseURL string) (*URLPattern, int) {
	values, ok := urlComponents(input, baseURL)
	if !ok {
		return nil, -1
	}

	for i, p := range c.patterns {
		if p.test(values) {
			return p, i
		}
	}

	return nil, -1
}

// Match returns the result of the first matching pattern and its index, or
// nil and -1.
func (c *Collection) Match(input, baseURL string) (*URLPatternResult, int) {
	p, i := c.FindPattern(input, baseURL)
	if p == nil {
		return nil, -1
	}

	return p.Match(input, baseURL), i
}
