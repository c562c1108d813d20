package urlpattern

// Options configures how a URLPattern is compiled.
type Options struct {
	// IgnoreCase makes the pathname, search and hash components match
	// case-insensitively. Protocol and hostname are always lower-cased
	// during canonicalization instead.
	IgnoreCase bool
}

// https://urlpattern.spec.whatwg.org/#options-header
type options struct {
	// MUST be an ASCII code point, 0 when unset
	delimiterCodePoint byte
	prefixCodePoint    byte
	ignoreCase         bool
}

var (
	defaultOptions  = options{}
	hostnameOptions = options{delimiterCodePoint: '.'}
	pathnameOptions = options{delimiterCodePoint: '/', prefixCodePoint: '/'}
)

func (o options) withIgnoreCase(ignoreCase bool) options {
	o.ignoreCase = ignoreCase

	return o
}

func (o options) prefix() string {
	if o.prefixCodePoint == 0 {
		return ""
	}

	return string(o.prefixCodePoint)
}
