package urlpattern

import (
	"fmt"

	"cloudeng.io/errors"
)

// Error kinds. Every error returned by New and (*URLPatternInit).New wraps
// exactly one of them.
var (
	// ErrTokenizing reports malformed pattern syntax found by the tokenizer:
	// a trailing backslash, an empty name, or an invalid regexp group.
	ErrTokenizing = errors.New("tokenizing error")
	// ErrParse reports an unexpected token or a duplicate group name.
	ErrParse = errors.New("parse error")
	// ErrCompile reports a generated regular expression that no engine accepts.
	ErrCompile = errors.New("regexp compile error")
	// ErrConfig reports an unusable combination of constructor arguments.
	ErrConfig = errors.New("invalid configuration")
	// ErrCanonicalize reports fixed pattern text rejected by a component's
	// canonicalization rules.
	ErrCanonicalize = errors.New("canonicalization error")
)

var (
	ErrDuplicatePartName   = errors.New("duplicate name")
	ErrRequiredToken       = errors.New("missing required token")
	ErrMissingProtocol     = errors.New("relative pattern without a base URL")
	ErrInvalidBaseURL      = errors.New("invalid base URL")
	ErrBaseURLWithInit     = errors.New("a base URL argument cannot be combined with a URLPatternInit")
	ErrInvalidIPv6Hostname = errors.New("invalid IPv6 hostname")
	ErrInvalidHostname     = errors.New("invalid hostname")
	ErrInvalidPort         = errors.New("invalid port")
)

// Error is the single error type returned when a pattern cannot be built.
//
// Kind is one of ErrTokenizing, ErrParse, ErrCompile, ErrConfig or
// ErrCanonicalize; both Kind and Err are matched by errors.Is.
type Error struct {
	Kind      error
	Component string
	Input     string
	Err       error
}

func (e *Error) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("urlpattern: %v: %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("urlpattern: %s: %v in %q: %v", e.Component, e.Kind, e.Input, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(kind error, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// inComponent attaches the component name and pattern text to err, keeping
// any kind already assigned further down the pipeline.
func inComponent(err error, component, input string) error {
	var pe *Error
	if errors.As(err, &pe) {
		if pe.Component == "" {
			pe.Component = component
			pe.Input = input
		}

		return pe
	}

	return &Error{Kind: ErrCanonicalize, Component: component, Input: input, Err: err}
}
