package urlpattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []token
	}{
		{
			input: "/foo/:id?",
			want: []token{
				{tokenChar, 0, "/"},
				{tokenChar, 1, "f"},
				{tokenChar, 2, "o"},
				{tokenChar, 3, "o"},
				{tokenChar, 4, "/"},
				{tokenName, 5, "id"},
				{tokenOtherModifier, 8, "?"},
				{tokenEnd, 9, ""},
			},
		},
		{
			input: "(a|b)*",
			want: []token{
				{tokenRegexp, 0, "a|b"},
				{tokenAsterisk, 5, "*"},
				{tokenEnd, 6, ""},
			},
		},
		{
			input: "{x}+",
			want: []token{
				{tokenOpen, 0, "{"},
				{tokenChar, 1, "x"},
				{tokenClose, 2, "}"},
				{tokenOtherModifier, 3, "+"},
				{tokenEnd, 4, ""},
			},
		},
		{
			input: `\:a`,
			want: []token{
				{tokenEscapedChar, 0, ":"},
				{tokenChar, 2, "a"},
				{tokenEnd, 3, ""},
			},
		},
		{
			input: ":café/:$x_1",
			want: []token{
				{tokenName, 0, "café"},
				{tokenChar, 5, "/"},
				{tokenName, 6, "$x_1"},
				{tokenEnd, 11, ""},
			},
		},
		{
			input: `(a\)b)`,
			want: []token{
				{tokenRegexp, 0, `a\)b`},
				{tokenEnd, 6, ""},
			},
		},
		{
			input: "(a(?:b))",
			want: []token{
				{tokenRegexp, 0, "a(?:b)"},
				{tokenEnd, 8, ""},
			},
		},
		{
			input: "",
			want:  []token{{tokenEnd, 0, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := tokenize(tt.input, tokenizePolicyStrict)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(token{})); diff != "" {
				t.Errorf("tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizeStrictErrors(t *testing.T) {
	t.Parallel()

	for _, input := range []string{
		`foo\`,
		"/:",
		"/:/",
		"/(",
		"/()",
		"/(?x)",
		"/(é)",
		"/((a))",
		`/(a\`,
		"/(a(",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			_, err := tokenize(input, tokenizePolicyStrict)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTokenizing), "want ErrTokenizing, got %v", err)
		})
	}
}

func TestTokenizeLenient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  []token
	}{
		{
			input: "a://",
			want: []token{
				{tokenChar, 0, "a"},
				{tokenInvalidChar, 1, ":"},
				{tokenChar, 2, "/"},
				{tokenChar, 3, "/"},
				{tokenEnd, 4, ""},
			},
		},
		{
			input: "(",
			want: []token{
				{tokenInvalidChar, 0, "("},
				{tokenEnd, 1, ""},
			},
		},
		{
			input: `a\`,
			want: []token{
				{tokenChar, 0, "a"},
				{tokenInvalidChar, 1, `\`},
				{tokenEnd, 2, ""},
			},
		},
		{
			input: "(?a)",
			want: []token{
				{tokenInvalidChar, 0, "("},
				{tokenOtherModifier, 1, "?"},
				{tokenChar, 2, "a"},
				{tokenChar, 3, ")"},
				{tokenEnd, 4, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := tokenize(tt.input, tokenizePolicyLenient)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(token{})); diff != "" {
				t.Errorf("tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestIsValidNameCodePoint(t *testing.T) {
	t.Parallel()

	assert.True(t, isValidNameCodePoint('a', true))
	assert.True(t, isValidNameCodePoint('$', true))
	assert.True(t, isValidNameCodePoint('_', true))
	assert.False(t, isValidNameCodePoint('1', true))
	assert.True(t, isValidNameCodePoint('1', false))
	assert.True(t, isValidNameCodePoint('\u200D', false))
	assert.False(t, isValidNameCodePoint('\u200D', true))
	assert.False(t, isValidNameCodePoint('-', false))
	assert.False(t, isValidNameCodePoint('/', false))
}
