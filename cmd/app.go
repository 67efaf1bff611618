// Package cmd implements the lfo command line application: it builds a
// valuation graph from a scenario, mutates it and reports what changed.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/livefolio"
	"github.com/etnz/livefolio/observe"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

const (
	EnvScenario = "LFO_SCENARIO"
	EnvVerbose  = "LFO_VERBOSE"
)

// Commands returns the lfo subcommands.
func Commands() []subcommands.Command {
	return []subcommands.Command{
		&sampleCmd{},
		&watchCmd{},
		&summaryCmd{},
		&topicCmd{},
	}
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands() {
		c.Register(cmd, "valuation")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var verbose = flag.Bool("v", envBool(EnvVerbose), "Log every delivered batch on stderr")
var scenarioFile = flag.String("scenario", os.Getenv(EnvScenario), "Path to the YAML scenario. Defaults to $"+EnvScenario+", or the built-in sample if empty.")

// stdout is where commands write their reports.
var stdout io.Writer = os.Stdout

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

// newLogger returns a debug development logger with -v, an info production
// logger otherwise.
func newLogger() *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// DecodeScenario loads the scenario of the -scenario flag, or the sample one.
func DecodeScenario() (*livefolio.Scenario, error) {
	if *scenarioFile == "" {
		return livefolio.SampleScenario(), nil
	}
	f, err := os.Open(*scenarioFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return livefolio.LoadScenario(f)
}

// BuildBook builds the scenario's graph on a scheduler that logs through
// logger.
func BuildBook(s *livefolio.Scenario, logger *zap.Logger) (*livefolio.Book, error) {
	sched := observe.NewScheduler(observe.WithLogger(logger))
	return s.Build(livefolio.WithScheduler(sched))
}

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
