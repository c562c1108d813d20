package urlpattern_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/go-urlpattern/urlpattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func TestBooksRoute(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com/books/:id", nil, urlpattern.Options{})
	require.NoError(t, err)

	assert.True(t, p.Test("https://example.com/books/123", ""))
	assert.False(t, p.Test("https://example.com/books/123/reviews", ""))
	assert.False(t, p.Test("http://example.com/books/123", ""))

	result := p.Match("https://example.com/books/123", "")
	require.NotNil(t, result)
	assert.Equal(t, "123", result.Pathname.Groups["id"])
	assert.Equal(t, "/books/123", result.Pathname.Input)
	assert.Equal(t, "example.com", result.Hostname.Input)
	assert.Empty(t, result.Hostname.Groups)
}

func TestFullWildcardCrossesSegments(t *testing.T) {
	t.Parallel()

	p, err := (&urlpattern.URLPatternInit{Pathname: ptr("/foo/*")}).New(urlpattern.Options{})
	require.NoError(t, err)

	input := &urlpattern.URLPatternInit{
		Protocol: ptr("https"),
		Hostname: ptr("example.com"),
		Pathname: ptr("/foo/bar/baz"),
	}
	assert.True(t, p.TestInit(input))

	result := p.MatchInit(input)
	require.NotNil(t, result)
	assert.Equal(t, "bar/baz", result.Pathname.Groups["0"])
	assert.Equal(t, []*urlpattern.URLPatternInit{input}, result.InitInputs)
	assert.Nil(t, result.Inputs)

	// a relative constructor string needs a base URL
	p, err = urlpattern.New("/foo/*", ptr("https://example.com"), urlpattern.Options{})
	require.NoError(t, err)
	assert.True(t, p.Test("https://example.com/foo/bar/baz", ""))
	assert.False(t, p.Test("https://other.test/foo/bar/baz", ""))
}

func TestSubdomainWildcard(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("*://*.example.com/*", nil, urlpattern.Options{})
	require.NoError(t, err)

	assert.Equal(t, "*.example.com", p.Hostname())
	assert.True(t, p.Test("http://api.example.com/v1", ""))
	assert.True(t, p.Test("https://a.b.example.com/", ""))
	assert.False(t, p.Test("http://example.org/v1", ""))
	assert.False(t, p.Test("http://example.com/v1", ""))

	result := p.Match("http://api.example.com/v1", "")
	require.NotNil(t, result)
	assert.Equal(t, "http", result.Protocol.Groups["0"])
	assert.Equal(t, "api", result.Hostname.Groups["0"])
	assert.Equal(t, "v1", result.Pathname.Groups["0"])
}

func TestConstructorStringComponents(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New(`http://u\:p@host:8080/path?q#h`, nil, urlpattern.Options{})
	require.NoError(t, err)

	assert.Equal(t, "http", p.Protocol())
	assert.Equal(t, "u", p.Username())
	assert.Equal(t, "p", p.Password())
	assert.Equal(t, "host", p.Hostname())
	assert.Equal(t, "8080", p.Port())
	assert.Equal(t, "/path", p.Pathname())
	assert.Equal(t, "q", p.Search())
	assert.Equal(t, "h", p.Hash())

	assert.True(t, p.Test("http://u:p@host:8080/path?q#h", ""))
	assert.False(t, p.Test("http://u:x@host:8080/path?q#h", ""))
}

func TestDefaultPortElision(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com:443/", nil, urlpattern.Options{})
	require.NoError(t, err)
	assert.Equal(t, "", p.Port())
	assert.True(t, p.Test("https://example.com/", ""))
	assert.True(t, p.Test("https://example.com:443/", ""))

	p, err = urlpattern.New("http://example.com:8080/", nil, urlpattern.Options{})
	require.NoError(t, err)
	assert.Equal(t, "8080", p.Port())
	assert.False(t, p.Test("http://example.com/", ""))
}

func TestIgnoreCase(t *testing.T) {
	t.Parallel()

	p, err := urlpattern.New("https://example.com/Books/:id", nil, urlpattern.Options{IgnoreCase: true})
	require.NoError(t, err)
	assert.True(t, p.Test("https://example.com/books/1", ""))
	assert.True(t, p.Test("https://EXAMPLE.com/BOOKS/1", ""))

	p, err = urlpattern.New("https://example.com/Books/:id", nil, urlpattern.Options{})
	require.NoError(t, err)
	assert.False(t, p.Test("https://example.com/books/1", ""))
}

func TestMatchInputs(t *testing.T) {
	t.Parallel()

	p := urlpattern.MustNew("https://example.com/books/:id", nil, urlpattern.Options{})

	result := p.Match("/books/1", "https://example.com/")
	require.NotNil(t, result)
	assert.Equal(t, []string{"/books/1", "https://example.com/"}, result.Inputs)

	assert.Nil(t, p.Match("/books/1", ""))
	assert.False(t, p.Test("not a url", ""))
}

func TestHasRegExpGroups(t *testing.T) {
	t.Parallel()

	assert.False(t, urlpattern.MustNew("https://example.com/books/:id", nil, urlpattern.Options{}).HasRegExpGroups())
	assert.True(t, urlpattern.MustNew(`https://example.com/books/(\d+)`, nil, urlpattern.Options{}).HasRegExpGroups())
}

func TestString(t *testing.T) {
	t.Parallel()

	p := urlpattern.MustNew("https://example.com/books/:id", nil, urlpattern.Options{})
	assert.Equal(t, "https://*:*@example.com:/books/:id?*#*", p.String())
}

func TestDuplicateGroupNameInEveryComponent(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"protocol", "username", "password", "hostname", "port", "pathname", "search", "hash"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			init := &urlpattern.URLPatternInit{}
			dup := ptr(":id:id")
			switch name {
			case "protocol":
				init.Protocol = dup
			case "username":
				init.Username = dup
			case "password":
				init.Password = dup
			case "hostname":
				init.Hostname = dup
			case "port":
				init.Port = dup
			case "pathname":
				init.Pathname = dup
			case "search":
				init.Search = dup
			case "hash":
				init.Hash = dup
			}

			_, err := init.New(urlpattern.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, urlpattern.ErrParse)
			assert.ErrorIs(t, err, urlpattern.ErrDuplicatePartName)

			var e *urlpattern.Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, name, e.Component)
			assert.Equal(t, ":id:id", e.Input)
		})
	}
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		baseURL *string
		kinds   []error
	}{
		{"relative without base", "/foo", nil, []error{urlpattern.ErrConfig, urlpattern.ErrMissingProtocol}},
		{"invalid base", "/foo", ptr("not a url"), []error{urlpattern.ErrConfig, urlpattern.ErrInvalidBaseURL}},
		{"unbalanced group", "https://example.com/{foo", nil, []error{urlpattern.ErrParse}},
		{"trailing backslash", `https://example.com/foo\`, nil, []error{urlpattern.ErrTokenizing}},
		{"invalid port", "https://example.com:8a/", nil, []error{urlpattern.ErrCanonicalize, urlpattern.ErrInvalidPort}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := urlpattern.New(tt.input, tt.baseURL, urlpattern.Options{})
			require.Error(t, err)

			for _, kind := range tt.kinds {
				assert.ErrorIs(t, err, kind)
			}
		})
	}
}

func TestMustNewPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		urlpattern.MustNew("/relative", nil, urlpattern.Options{})
	})
}

func TestConcurrentMatching(t *testing.T) {
	t.Parallel()

	p := urlpattern.MustNew(`https://example.com/books/:id(\d+)`, nil, urlpattern.Options{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				result := p.Match("https://example.com/books/42", "")
				if assert.NotNil(t, result) {
					assert.Equal(t, "42", result.Pathname.Groups["id"])
				}
			}
		}()
	}
	wg.Wait()
}

func TestSchemeTables(t *testing.T) {
	t.Parallel()

	port, ok := urlpattern.DefaultPort("wss")
	assert.True(t, ok)
	assert.Equal(t, "443", port)

	_, ok = urlpattern.DefaultPort("file")
	assert.False(t, ok)

	assert.True(t, urlpattern.IsSpecialScheme("file"))
	assert.False(t, urlpattern.IsSpecialScheme("data"))
}

func TestRegExpGroupsUseECMAScriptSyntax(t *testing.T) {
	t.Parallel()

	for _, pathname := range []string{
		`/([[:digit:]]+)`,
		`/(\pN+)`,
		`/(\z)`,
		`/(\Q.\E)`,
	} {
		_, err := (&urlpattern.URLPatternInit{Pathname: ptr(pathname)}).New(urlpattern.Options{})
		assert.ErrorIs(t, err, urlpattern.ErrCompile, pathname)
	}

	p, err := (&urlpattern.URLPatternInit{Hash: ptr(`((?=\p{L})\p{L}+)`)}).New(urlpattern.Options{})
	require.NoError(t, err)

	result := p.MatchInit(&urlpattern.URLPatternInit{Hash: ptr("hello")})
	require.NotNil(t, result)
	assert.Equal(t, "hello", result.Hash.Groups["0"])
	assert.Nil(t, p.MatchInit(&urlpattern.URLPatternInit{Hash: ptr("3llo")}))
}

func TestHostnameDropsTabAndNewline(t *testing.T) {
	t.Parallel()

	p, err := (&urlpattern.URLPatternInit{Hostname: ptr("bad\nhostname")}).New(urlpattern.Options{})
	require.NoError(t, err)
	assert.Equal(t, "badhostname", p.Hostname())

	assert.True(t, p.TestInit(&urlpattern.URLPatternInit{Hostname: ptr("bad\thostname")}))
	assert.True(t, p.TestInit(&urlpattern.URLPatternInit{Hostname: ptr("bad\r\nhostname")}))
	assert.True(t, p.Test("https://badhostname/", ""))
}

func TestPortLeadingZeros(t *testing.T) {
	t.Parallel()

	p, err := (&urlpattern.URLPatternInit{Port: ptr("0080")}).New(urlpattern.Options{})
	require.NoError(t, err)
	assert.Equal(t, "80", p.Port())

	p, err = urlpattern.New("http://example.com:8080/*", nil, urlpattern.Options{})
	require.NoError(t, err)

	assert.True(t, p.Test("http://example.com:08080/", ""))
	assert.True(t, p.TestInit(&urlpattern.URLPatternInit{
		Protocol: ptr("http"),
		Hostname: ptr("example.com"),
		Port:     ptr("08080"),
		Pathname: ptr("/"),
	}))

	// a default port written with leading zeros is still the default port
	p, err = urlpattern.New("http://example.com/*", nil, urlpattern.Options{})
	require.NoError(t, err)

	assert.True(t, p.Test("http://example.com:0080/", ""))
	assert.True(t, p.TestInit(&urlpattern.URLPatternInit{
		Protocol: ptr("http"),
		Hostname: ptr("example.com"),
		Port:     ptr("080"),
		Pathname: ptr("/"),
	}))

	_, err = (&urlpattern.URLPatternInit{Port: ptr("80 ")}).New(urlpattern.Options{})
	assert.ErrorIs(t, err, urlpattern.ErrInvalidPort)
}
