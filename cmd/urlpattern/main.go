// Command urlpattern tests URLs against URL patterns.
//
//	urlpattern test  [-i] [-base URL] <pattern> <url>...
//	urlpattern match [-i] [-base URL] <pattern> <url>...
//	urlpattern find  -f FILE [-base URL] <url>...
//
// test exits with status 0 only if every URL matches. match prints the
// captured groups of each URL as YAML. find prints, for each URL, the name of
// the first pattern of a YAML pattern set that matches it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"cloudeng.io/cmdutil"
	"cloudeng.io/cmdutil/subcmd"
	"github.com/go-urlpattern/urlpattern"
	"gopkg.in/yaml.v3"
)

// errNoMatch reports that at least one URL did not match.
var errNoMatch = errors.New("no match")

type patternFlags struct {
	cmdutil.LoggingFlags
	IgnoreCase bool   `subcmd:"i,false,'match pathname, search and hash case-insensitively'"`
	BaseURL    string `subcmd:"base,,'base URL used to resolve the pattern and the URLs'"`
}

type findFlags struct {
	cmdutil.LoggingFlags
	File    string `subcmd:"f,,'YAML pattern set'"`
	BaseURL string `subcmd:"base,,'base URL used to resolve the URLs'"`
}

// command holds the output stream shared by every sub-command.
type command struct {
	stdout io.Writer
}

func newCommandSet(stdout io.Writer) *subcmd.CommandSet {
	c := &command{stdout: stdout}

	testCmd := subcmd.NewCommand("test",
		subcmd.MustRegisterFlagStruct(&patternFlags{}, nil, nil),
		c.test, subcmd.AtLeastNArguments(2))
	testCmd.Document("report whether each URL matches the pattern", "<pattern>", "<url>...")

	matchCmd := subcmd.NewCommand("match",
		subcmd.MustRegisterFlagStruct(&patternFlags{}, nil, nil),
		c.match, subcmd.AtLeastNArguments(2))
	matchCmd.Document("print the groups captured from each URL as YAML", "<pattern>", "<url>...")

	findCmd := subcmd.NewCommand("find",
		subcmd.MustRegisterFlagStruct(&findFlags{}, nil, nil),
		c.find, subcmd.AtLeastNArguments(1))
	findCmd.Document("print the first pattern of a pattern set matching each URL", "<url>...")

	cmdSet := subcmd.NewCommandSet(testCmd, matchCmd, findCmd)
	cmdSet.Document("test URLs against URL patterns")

	return cmdSet
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmdSet := newCommandSet(stdout)
	cmdSet.SetOutput(stderr)

	if len(args) == 0 {
		fmt.Fprint(stderr, cmdSet.Usage("urlpattern"))

		return 2
	}

	err := cmdSet.DispatchWithArgs(ctx, "urlpattern", args...)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNoMatch):
		return 1
	case errors.Is(err, flag.ErrHelp):
		return 2
	}

	fmt.Fprintln(stderr, err)

	return 2
}

// compile builds the logger and the pattern given as the first argument.
func (fv *patternFlags) compile(pattern string) (*cmdutil.Logger, *urlpattern.URLPattern, error) {
	logger, err := fv.LoggingConfig().NewLogger()
	if err != nil {
		return nil, nil, err
	}

	var baseURL *string
	if fv.BaseURL != "" {
		baseURL = &fv.BaseURL
	}

	p, err := urlpattern.New(pattern, baseURL, urlpattern.Options{IgnoreCase: fv.IgnoreCase})
	if err != nil {
		logger.Close()

		return nil, nil, err
	}

	logger.Debug("compiled pattern", "pattern", p.String(), "regexp_groups", p.HasRegExpGroups())

	return logger, p, nil
}

func (c *command) test(_ context.Context, values any, args []string) error {
	fv := values.(*patternFlags)
	logger, p, err := fv.compile(args[0])
	if err != nil {
		return err
	}
	defer logger.Close()

	for _, u := range args[1:] {
		ok := p.Test(u, fv.BaseURL)
		logger.Debug("test", "url", u, "match", ok)

		fmt.Fprintf(c.stdout, "%v\t%s\n", ok, u)
		if !ok {
			err = errNoMatch
		}
	}

	return err
}

// matchOutput is the YAML document printed for one URL.
type matchOutput struct {
	URL    string                       `yaml:"url"`
	Result *urlpattern.URLPatternResult `yaml:"result"`
}

func (c *command) match(_ context.Context, values any, args []string) error {
	fv := values.(*patternFlags)
	logger, p, err := fv.compile(args[0])
	if err != nil {
		return err
	}
	defer logger.Close()

	enc := yaml.NewEncoder(c.stdout)
	defer enc.Close()

	for _, u := range args[1:] {
		result := p.Match(u, fv.BaseURL)
		logger.Debug("match", "url", u, "match", result != nil)

		if result == nil {
			err = errNoMatch
		}

		if encErr := enc.Encode(matchOutput{URL: u, Result: result}); encErr != nil {
			return encErr
		}
	}

	return err
}

// findOutput is the YAML document printed for one URL; Index is -1 when
// no pattern matches.
type findOutput struct {
	URL   string `yaml:"url"`
	Name  string `yaml:"name,omitempty"`
	Index int    `yaml:"index"`
}

func (c *command) find(ctx context.Context, values any, args []string) error {
	fv := values.(*findFlags)
	if fv.File == "" {
		return errors.New("find: -f is required")
	}

	logger, err := fv.LoggingConfig().NewLogger()
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.LogBuildInfo()

	set, err := urlpattern.LoadCollectionFile(ctx, fv.File)
	if err != nil {
		logger.Error("failed to load pattern set", "file", fv.File, "error", err)

		return err
	}

	logger.Info("loaded pattern set", "file", fv.File, "patterns", set.Len())

	enc := yaml.NewEncoder(c.stdout)
	defer enc.Close()

	names := set.Names()
	for _, u := range args {
		_, i := set.FindPattern(u, fv.BaseURL)
		out := findOutput{URL: u, Index: i}
		if i >= 0 {
			out.Name = names[i]
		}

		logger.Debug("find", "url", u, "index", i)

		if err := enc.Encode(out); err != nil {
			return err
		}
	}

	return nil
}
