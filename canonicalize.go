package urlpattern

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dunglas/whatwg-url/canonicalizer"
	"github.com/dunglas/whatwg-url/url"
)

// Both parsers are configured once and only read afterwards.
var (
	urlParser      = url.NewParser()
	hostnameParser = canonicalizer.New(url.WithFailOnValidationError(), canonicalizer.WithDefaultScheme("http"))
)

// tabOrNewline removes what the basic URL parser drops from any input before
// a state override runs.
var tabOrNewline = strings.NewReplacer("\t", "", "\n", "", "\r", "")

// https://urlpattern.spec.whatwg.org/#canonicalize-a-protocol
func canonicalizeProtocol(value string) (string, error) {
	if value == "" {
		return value, nil
	}

	dummyURL, err := urlParser.Parse(value + "://dummy.test")
	if err != nil {
		return "", fmt.Errorf("invalid protocol %q: %w", value, err)
	}

	return dummyURL.Scheme(), nil
}

// https://urlpattern.spec.whatwg.org/#canonicalize-a-username
// https://urlpattern.spec.whatwg.org/#canonicalize-a-password
func canonicalizeUserInfo(value string) (string, error) {
	return urlParser.PercentEncodeString(value, url.UserInfoPercentEncodeSet), nil
}

// https://urlpattern.spec.whatwg.org/#canonicalize-a-hostname
// https://github.com/whatwg/urlpattern/issues/220#issuecomment-2074613501
func canonicalizeHostname(hostnameValue, protocolValue string) (string, error) {
	hostnameValue = tabOrNewline.Replace(hostnameValue)
	if hostnameValue == "" {
		return hostnameValue, nil
	}

	// the host parser stops at these instead of failing
	// https://github.com/whatwg/urlpattern/issues/206
	if hostnameValue[0] != '[' && strings.ContainsAny(hostnameValue, `/?#:\`) {
		return "", fmt.Errorf("%w %q", ErrInvalidHostname, hostnameValue)
	}

	u, err := dummyURLFor(protocolValue)
	if err != nil {
		return "", err
	}

	u, err = hostnameParser.BasicParser(hostnameValue, nil, u, url.StateHostname)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidHostname, hostnameValue, err)
	}

	return u.Hostname(), nil
}

// canonicalizeDomainName is the hostname encoding callback used while
// compiling, when the protocol is still a pattern. Fixed text next to a
// wildcard, as in "*.example.com", keeps its edge dots.
func canonicalizeDomainName(value string) (string, error) {
	labels := strings.Trim(value, ".")
	if labels == "" {
		return value, nil
	}

	leading := len(value) - len(strings.TrimLeft(value, "."))
	trailing := len(value) - len(strings.TrimRight(value, "."))

	canonical, err := canonicalizeHostname(labels, "https")
	if err != nil {
		return "", err
	}

	return value[:leading] + canonical + value[len(value)-trailing:], nil
}

// https://urlpattern.spec.whatwg.org/#canonicalize-an-ipv6-hostname
func canonicalizeIPv6Hostname(value string) (string, error) {
	var result strings.Builder
	result.Grow(len(value))

	for _, c := range value {
		if c != '[' && c != ']' && c != ':' && !unicode.Is(unicode.ASCII_Hex_Digit, c) {
			return "", fmt.Errorf("%w %q", ErrInvalidIPv6Hostname, value)
		}

		result.WriteRune(unicode.ToLower(c))
	}

	return result.String(), nil
}

// https://urlpattern.spec.whatwg.org/#canonicalize-a-port
func canonicalizePort(portValue, protocolValue string) (string, error) {
	portValue = tabOrNewline.Replace(portValue)
	if portValue == "" {
		return portValue, nil
	}

	// the port state stops at the first non-digit instead of failing
	for i := 0; i < len(portValue); i++ {
		if !isASCIIDigit(rune(portValue[i])) {
			return "", fmt.Errorf("%w %q", ErrInvalidPort, portValue)
		}
	}

	u, err := dummyURLFor(protocolValue)
	if err != nil {
		return "", err
	}

	u, err = hostnameParser.BasicParser(portValue, nil, u, url.StatePort)
	if err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidPort, portValue, err)
	}

	// leading zeros are dropped and a default port serializes as ""
	return u.Port(), nil
}

// https://urlpattern.spec.whatwg.org/#canonicalize-a-pathname
func canonicalizePathname(value string) (string, error) {
	if value == "" {
		return value, nil
	}

	// the path start state would otherwise insert a leading slash
	leadingSlash := value[0] == '/'
	modifiedValue := value
	if !leadingSlash {
		modifiedValue = "/-" + value
	}

	u, err := urlParser.BasicParser(modifiedValue, nil, urlParser.NewUrl(), url.StatePathStart)
	if err != nil {
		return "", fmt.Errorf("invalid pathname %q: %w", value, err)
	}

	result := u.Pathname()
	if !leadingSlash {
		result = result[2:]
	}

	return result, nil
}

// The remaining components are canonicalized by running the URL parser from
// the state that reads them.
var (
	// https://urlpattern.spec.whatwg.org/#canonicalize-an-opaque-pathname
	canonicalizeOpaquePathname = canonicalizeFromState("opaque pathname", func(v string) (*url.Url, error) {
		return urlParser.BasicParser(v, nil, urlParser.NewUrl(), url.StateOpaquePath)
	}, (*url.Url).Pathname)

	// https://urlpattern.spec.whatwg.org/#canonicalize-a-search
	canonicalizeSearch = canonicalizeFromState("search", func(v string) (*url.Url, error) {
		return urlParser.BasicParser(v, nil, urlParser.NewUrl(), url.StateQuery)
	}, (*url.Url).Query)

	// https://urlpattern.spec.whatwg.org/#canonicalize-a-hash
	canonicalizeHash = canonicalizeFromState("hash", func(v string) (*url.Url, error) {
		return urlParser.BasicParser(v, nil, urlParser.NewUrl(), url.StateFragment)
	}, (*url.Url).Fragment)
)

func canonicalizeFromState(component string, parse func(string) (*url.Url, error), read func(*url.Url) string) encodingCallback {
	return func(value string) (string, error) {
		if value == "" {
			return value, nil
		}

		u, err := parse(value)
		if err != nil {
			return "", fmt.Errorf("invalid %s %q: %w", component, value, err)
		}

		return read(u), nil
	}
}

func dummyURLFor(protocolValue string) (*url.Url, error) {
	if protocolValue == "" {
		return hostnameParser.NewUrl(), nil
	}

	u, err := hostnameParser.Parse(protocolValue + "://dummy.test")
	if err != nil {
		return nil, fmt.Errorf("invalid protocol %q: %w", protocolValue, err)
	}

	return u, nil
}

// https://urlpattern.spec.whatwg.org/#hostname-pattern-is-an-ipv6-address
func isIPv6HostnamePattern(input string) bool {
	if len(input) < 2 {
		return false
	}

	return input[0] == '[' ||
		(input[0] == '{' && input[1] == '[') ||
		(input[0] == '\\' && input[1] == '[')
}
