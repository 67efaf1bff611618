package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/livefolio"
	"github.com/google/subcommands"
)

type sampleCmd struct{}

func (*sampleCmd) Name() string     { return "sample" }
func (*sampleCmd) Synopsis() string { return "print the built-in scenario" }
func (*sampleCmd) Usage() string {
	return `lfo sample

  Prints the YAML of the built-in scenario, a starting point for -scenario
  files.
`
}

func (*sampleCmd) SetFlags(*flag.FlagSet) {}

func (*sampleCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprint(stdout, livefolio.SampleYAML())
	return subcommands.ExitSuccess
}
