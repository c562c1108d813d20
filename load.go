package urlpattern

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
)

// CollectionConfig is the YAML representation of a Collection.
//
//	ignore_case: false
//	patterns:
//	  - name: books
//	    pattern: "https://example.com/books/:id"
//	  - name: api
//	    init: {protocol: https, hostname: "api.*", pathname: "/v1/*"}
//	    ignore_case: true
type CollectionConfig struct {
	IgnoreCase bool            `yaml:"ignore_case"`
	Patterns   []PatternConfig `yaml:"patterns"`
}

// PatternConfig describes one pattern, either as a constructor string in
// Pattern (with an optional BaseURL) or as a structured Init.
type PatternConfig struct {
	Name       string          `yaml:"name"`
	Pattern    string          `yaml:"pattern"`
	Init       *URLPatternInit `yaml:"init"`
	BaseURL    *string         `yaml:"base_url"`
	IgnoreCase *bool           `yaml:"ignore_case"`
}

// Compile builds the pattern, using ignoreCase unless the entry overrides it.
func (pc PatternConfig) Compile(ignoreCase bool) (*URLPattern, error) {
	options := Options{IgnoreCase: ignoreCase}
	if pc.IgnoreCase != nil {
		options.IgnoreCase = *pc.IgnoreCase
	}

	switch {
	case pc.Init != nil && pc.Pattern != "":
		return nil, newError(ErrConfig, errors.New("pattern and init are mutually exclusive"))
	case pc.Init != nil && pc.BaseURL != nil:
		return nil, newError(ErrConfig, ErrBaseURLWithInit)
	case pc.Init != nil:
		return pc.Init.New(options)
	}

	return New(pc.Pattern, pc.BaseURL, options)
}

// NewCollection compiles every entry in order. All failing entries are
// reported, each annotated with its position and name.
func (cfg CollectionConfig) NewCollection() (*Collection, error) {
	c := &Collection{}
	errs := &errors.M{}

	for i, pc := range cfg.Patterns {
		p, err := pc.Compile(cfg.IgnoreCase)
		if err != nil {
			errs.Append(errors.Annotate(fmt.Sprintf("patterns[%d] %q", i, pc.Name), err))

			continue
		}

		c.Add(pc.Name, p)
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadCollection reads a YAML pattern set. Unknown keys are rejected.
func LoadCollection(r io.Reader) (*Collection, error) {
	var spec bytes.Buffer
	if _, err := spec.ReadFrom(r); err != nil {
		return nil, err
	}

	var cfg CollectionConfig
	if err := cmdyaml.ParseConfigStrict(spec.Bytes(), &cfg); err != nil {
		return nil, newError(ErrConfig, err)
	}

	return cfg.NewCollection()
}

// LoadCollectionFile is like LoadCollection for a file. The file is read
// with the file.ReadFileFS stored in ctx, if any, or from the local filesystem.
func LoadCollectionFile(ctx context.Context, filename string) (*Collection, error) {
	var cfg CollectionConfig
	if err := cmdyaml.ParseConfigFileStrict(ctx, filename, &cfg); err != nil {
		return nil, newError(ErrConfig, err)
	}

	return cfg.NewCollection()
}
