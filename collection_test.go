package urlpattern_test

import (
	"testing"

	"github.com/go-urlpattern/urlpattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection(t *testing.T) *urlpattern.Collection {
	t.Helper()

	c := urlpattern.NewCollection()
	c.Add("books", urlpattern.MustNew("https://example.com/books/:id", nil, urlpattern.Options{}))
	c.Add("catch-all", urlpattern.MustNew("https://example.com/*", nil, urlpattern.Options{}))

	return c
}

func TestCollectionFindPattern(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)

	tests := []struct {
		input string
		want  int
	}{
		{"https://example.com/books/7", 0},
		{"https://example.com/about", 1},
		{"https://example.com/books/7/reviews", 1},
		{"https://other.test/books/7", -1},
		{"not a url", -1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			p, i := c.FindPattern(tt.input, "")
			assert.Equal(t, tt.want, i)
			assert.Equal(t, tt.want >= 0, c.Test(tt.input, ""))

			if tt.want < 0 {
				assert.Nil(t, p)

				return
			}

			assert.Same(t, c.Pattern(tt.want), p)
		})
	}
}

func TestCollectionMatch(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)

	result, i := c.Match("https://example.com/books/7", "")
	require.NotNil(t, result)
	assert.Equal(t, 0, i)
	assert.Equal(t, map[string]string{"id": "7"}, result.Pathname.Groups)
	assert.Equal(t, []string{"https://example.com/books/7"}, result.Inputs)

	result, i = c.Match("/books/7", "https://example.com")
	require.NotNil(t, result)
	assert.Equal(t, 0, i)
	assert.Equal(t, []string{"/books/7", "https://example.com"}, result.Inputs)

	result, i = c.Match("https://other.test/", "")
	assert.Nil(t, result)
	assert.Equal(t, -1, i)
}

func TestCollectionNames(t *testing.T) {
	t.Parallel()

	c := newTestCollection(t)
	assert.Equal(t, 2, c.Len())

	names := c.Names()
	assert.Equal(t, []string{"books", "catch-all"}, names)

	names[0] = "changed"
	assert.Equal(t, []string{"books", "catch-all"}, c.Names())
}

func TestNewCollectionUnnamed(t *testing.T) {
	t.Parallel()

	c := urlpattern.NewCollection(
		urlpattern.MustNew("https://example.com/a", nil, urlpattern.Options{}),
		urlpattern.MustNew("https://example.com/b", nil, urlpattern.Options{}),
	)

	assert.Equal(t, []string{"", ""}, c.Names())

	_, i := c.FindPattern("https://example.com/b", "")
	assert.Equal(t, 1, i)
}
