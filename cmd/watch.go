package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/livefolio"
	"github.com/etnz/livefolio/observe"
	"github.com/etnz/livefolio/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

type watchCmd struct {
	json     bool
	holdings bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the scenario and print every change" }
func (*watchCmd) Usage() string {
	return `lfo watch [-json] [-holdings]

  Builds the scenario's portfolios, applies its steps one by one, and prints
  the records delivered by the portfolios (and their holdings with -holdings)
  after each step.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print records as JSON lines")
	f.BoolVar(&c.holdings, "holdings", false, "Also print the records of the holdings")
}

func (c *watchCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var printErr error
	report := func(batch []observe.Record) {
		if c.json {
			if err := livefolio.EncodeRecords(stdout, batch); err != nil && printErr == nil {
				printErr = err
			}
			return
		}
		for _, r := range batch {
			fmt.Fprintln(stdout, renderer.RecordLine(r))
		}
	}
	for _, o := range c.targets(book) {
		if _, err := observe.Subscribe(o, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error watching %v: %v\n", o, err)
			return subcommands.ExitFailure
		}
	}

	for i, st := range s.Steps {
		if !c.json {
			fmt.Fprintf(stdout, "# step %d\n", i+1)
		}
		if err := book.Apply(st); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying step %d: %v\n", i+1, err)
			return subcommands.ExitFailure
		}
		logger.Debug("step applied", zap.Int("step", i+1))
	}
	if printErr != nil {
		fmt.Fprintf(os.Stderr, "Error encoding records: %v\n", printErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// targets returns the portfolios then, with -holdings, each distinct holding.
func (c *watchCmd) targets(book *livefolio.Book) []observe.Observable {
	var res []observe.Observable
	for _, p := range book.Portfolios() {
		res = append(res, p)
	}
	if !c.holdings {
		return res
	}
	seen := make(map[*livefolio.Holding]bool)
	for _, p := range book.Portfolios() {
		for _, h := range p.Holdings().All() {
			if !seen[h] {
				seen[h] = true
				res = append(res, h)
			}
		}
	}
	return res
}
