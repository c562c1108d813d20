package urlpattern

import (
	"fmt"
	"strings"
)

// URLPatternInit is the structured form of a pattern, or of a URL to match.
//
// A nil field is unset. Unset pattern components default to "*" (or are
// inherited from BaseURL), while a pointer to "" only matches the empty
// string.
//
// https://urlpattern.spec.whatwg.org/#dictdef-urlpatterninit
type URLPatternInit struct {
	Protocol *string `yaml:"protocol,omitempty"`
	Username *string `yaml:"username,omitempty"`
	Password *string `yaml:"password,omitempty"`
	Hostname *string `yaml:"hostname,omitempty"`
	Port     *string `yaml:"port,omitempty"`
	Pathname *string `yaml:"pathname,omitempty"`
	Search   *string `yaml:"search,omitempty"`
	Hash     *string `yaml:"hash,omitempty"`
	BaseURL  *string `yaml:"base_url,omitempty"`
}

type processType uint8

const (
	processTypePattern processType = iota
	processTypeURL
)

// https://urlpattern.spec.whatwg.org/#process-a-urlpatterninit
func processInit(init *URLPatternInit, pType processType) (*URLPatternInit, error) {
	result := &URLPatternInit{}
	if pType == processTypeURL {
		result = &URLPatternInit{
			Protocol: new(string),
			Username: new(string),
			Password: new(string),
			Hostname: new(string),
			Port:     new(string),
			Pathname: new(string),
			Search:   new(string),
			Hash:     new(string),
		}
	}

	var basePathname string
	hasBaseURL := init.BaseURL != nil
	if hasBaseURL {
		baseURL, err := urlParser.Parse(*init.BaseURL)
		if err != nil {
			return nil, newError(ErrConfig, fmt.Errorf("%w %q: %w", ErrInvalidBaseURL, *init.BaseURL, err))
		}

		basePathname = baseURL.Pathname()

		// each component is inherited only while every earlier one is unset
		inherit := func(dst **string, value string) {
			v := processBaseURLString(value, pType)
			*dst = &v
		}

		if init.Protocol == nil {
			inherit(&result.Protocol, baseURL.Scheme())
		}
		if pType != processTypePattern && init.Protocol == nil && init.Hostname == nil && init.Port == nil && init.Username == nil {
			inherit(&result.Username, baseURL.Username())
		}
		if pType != processTypePattern && init.Protocol == nil && init.Hostname == nil && init.Port == nil && init.Username == nil && init.Password == nil {
			inherit(&result.Password, baseURL.Password())
		}
		if init.Protocol == nil && init.Hostname == nil {
			inherit(&result.Hostname, baseURL.Hostname())
		}
		if init.Protocol == nil && init.Hostname == nil && init.Port == nil {
			inherit(&result.Port, baseURL.Port())
		}
		if init.Protocol == nil && init.Hostname == nil && init.Port == nil && init.Pathname == nil {
			inherit(&result.Pathname, basePathname)
		}
		if init.Protocol == nil && init.Hostname == nil && init.Port == nil && init.Pathname == nil && init.Search == nil {
			inherit(&result.Search, baseURL.Query())
		}
		if init.Protocol == nil && init.Hostname == nil && init.Port == nil && init.Pathname == nil && init.Search == nil && init.Hash == nil {
			inherit(&result.Hash, baseURL.Fragment())
		}
	}

	var err error
	set := func(dst **string, value string, process func(string) (string, error)) {
		if err != nil {
			return
		}

		var v string
		if v, err = process(value); err == nil {
			*dst = &v
		}
	}

	if init.Protocol != nil {
		set(&result.Protocol, *init.Protocol, func(v string) (string, error) { return processProtocolForInit(v, pType) })
	}
	if init.Username != nil {
		set(&result.Username, *init.Username, processFor(pType, canonicalizeUserInfo))
	}
	if init.Password != nil {
		set(&result.Password, *init.Password, processFor(pType, canonicalizeUserInfo))
	}

	var protocol string
	if result.Protocol != nil {
		protocol = *result.Protocol
	}

	if init.Hostname != nil {
		set(&result.Hostname, *init.Hostname, processFor(pType, func(v string) (string, error) { return canonicalizeHostname(v, protocol) }))
	}
	if init.Port != nil {
		set(&result.Port, *init.Port, processFor(pType, func(v string) (string, error) { return canonicalizePort(v, protocol) }))
	}
	if init.Pathname != nil {
		pathname := *init.Pathname

		// an opaque base path never starts with "/" and is never merged
		if hasBaseURL && strings.HasPrefix(basePathname, "/") && !isAbsolutePathname(pathname, pType) {
			basePath := processBaseURLString(basePathname, pType)
			if slash := strings.LastIndexByte(basePath, '/'); slash >= 0 {
				pathname = basePath[:slash+1] + pathname
			}
		}

		set(&result.Pathname, pathname, func(v string) (string, error) { return processPathnameForInit(v, protocol, pType) })
	}
	if init.Search != nil {
		set(&result.Search, strings.TrimPrefix(*init.Search, "?"), processFor(pType, canonicalizeSearch))
	}
	if init.Hash != nil {
		set(&result.Hash, strings.TrimPrefix(*init.Hash, "#"), processFor(pType, canonicalizeHash))
	}

	if err != nil {
		return nil, err
	}

	return result, nil
}

// processFor returns the identity for patterns and canonicalize for URLs.
func processFor(pType processType, canonicalize func(string) (string, error)) func(string) (string, error) {
	if pType == processTypePattern {
		return func(v string) (string, error) { return v, nil }
	}

	return canonicalize
}

// https://urlpattern.spec.whatwg.org/#process-a-base-url-string
func processBaseURLString(input string, pType processType) string {
	if pType != processTypePattern {
		return input
	}

	return escapePatternString(input)
}

// https://urlpattern.spec.whatwg.org/#process-protocol-for-init
func processProtocolForInit(value string, pType processType) (string, error) {
	stripped := strings.TrimSuffix(value, ":")
	if pType == processTypePattern {
		return stripped, nil
	}

	return canonicalizeProtocol(stripped)
}

// https://urlpattern.spec.whatwg.org/#process-pathname-for-init
func processPathnameForInit(value, protocol string, pType processType) (string, error) {
	if pType == processTypePattern {
		return value, nil
	}

	if protocol == "" || IsSpecialScheme(protocol) {
		return canonicalizePathname(value)
	}

	return canonicalizeOpaquePathname(value)
}

// https://urlpattern.spec.whatwg.org/#is-an-absolute-pathname
func isAbsolutePathname(input string, pType processType) bool {
	switch {
	case input == "":
		return false
	case input[0] == '/':
		return true
	case pType == processTypeURL, len(input) < 2:
		return false
	}

	return (input[0] == '\\' || input[0] == '{') && input[1] == '/'
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}

	return *s
}
