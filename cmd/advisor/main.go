// Command advisor analyses Indian stocks with a language model and keeps a
// portfolio log of its recommendations.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

var configPath = flag.String("config", "config.yaml", "path to the YAML configuration file")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&analyzeCmd{}, "")
	commander.Register(&portfolioCmd{}, "ledger")
	commander.Register(&importCmd{}, "ledger")
	commander.Register(&watchCmd{}, "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
