package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/livefolio/renderer"
	"github.com/google/subcommands"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	before bool
	html   bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolios and their holdings" }
func (*summaryCmd) Usage() string {
	return `lfo summary [-before] [-html]

  Displays the value of each portfolio and the detail of its holdings, once
  the scenario's steps are applied.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.before, "before", false, "Report before applying the steps")
	f.BoolVar(&c.html, "html", false, "Print the report as HTML")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	logger := newLogger()
	defer logger.Sync()

	s, err := DecodeScenario()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scenario: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := BuildBook(s, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building the portfolios: %v\n", err)
		return subcommands.ExitFailure
	}

	title := "Portfolios before any step"
	if !c.before {
		if err := book.Run(s.Steps); err != nil {
			fmt.Fprintf(os.Stderr, "Error running the scenario: %v\n", err)
			return subcommands.ExitFailure
		}
		title = fmt.Sprintf("Portfolios after %d steps", len(s.Steps))
	}

	summary := renderer.SummaryMarkdown(title, book.Portfolios())

	if c.html {
		var out bytes.Buffer
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := md.Convert([]byte(summary), &out); err != nil {
			fmt.Fprintf(os.Stderr, "Error converting to HTML: %v\n", err)
			return subcommands.ExitFailure
		}
		stdout.Write(out.Bytes())
		return subcommands.ExitSuccess
	}

	printMarkdown(summary)
	return subcommands.ExitSuccess
}
