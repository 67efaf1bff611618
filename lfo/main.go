// Command lfo builds live valued portfolios from a scenario and reports how
// their values change.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/livefolio/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// exits when invoked by the shell for completion.
	cmd.Completion(cmd.Commands()).Complete("lfo")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
