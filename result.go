package urlpattern

// https://urlpattern.spec.whatwg.org/#dictdef-urlpatternresult
type URLPatternResult struct {
	// Inputs holds the URL string and, when given, the base URL passed to Match.
	Inputs []string `yaml:"inputs,omitempty"`
	// InitInputs holds the structured input passed to MatchInit.
	InitInputs []*URLPatternInit `yaml:"init_inputs,omitempty"`

	Protocol URLPatternComponentResult `yaml:"protocol"`
	Username URLPatternComponentResult `yaml:"username"`
	Password URLPatternComponentResult `yaml:"password"`
	Hostname URLPatternComponentResult `yaml:"hostname"`
	Port     URLPatternComponentResult `yaml:"port"`
	Pathname URLPatternComponentResult `yaml:"pathname"`
	Search   URLPatternComponentResult `yaml:"search"`
	Hash     URLPatternComponentResult `yaml:"hash"`
}

// https://urlpattern.spec.whatwg.org/#dictdef-urlpatterncomponentresult
type URLPatternComponentResult struct {
	Input string `yaml:"input"`
	// Groups maps group names to captured text. Numbered groups use their
	// decimal index as name. Optional groups that did not participate in
	// the match are absent.
	Groups map[string]string `yaml:"groups,omitempty"`
}
