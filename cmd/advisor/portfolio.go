package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"llm-stock-advisor/internal/ledger"
	"llm-stock-advisor/internal/report"
)

type portfolioCmd struct {
	format     string
	exportPath string
}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "list recorded recommendations, newest first" }
func (*portfolioCmd) Usage() string {
	return `advisor portfolio [-format term|md|html] [-export csv]

  Shows the portfolio ledger sorted by time, newest first. With -export the
  ledger is also written as CSV in recording order.
`
}

func (c *portfolioCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", formatTerminal, "output format: term, md or html")
	f.StringVar(&c.exportPath, "export", "", "write the ledger as CSV to this file")
}

func (c *portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !validFormat(c.format) {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(ctx)

	entries, err := a.ledger.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := emit("", c.format, "Portfolio", report.Portfolio(ledger.SortedByTimeDesc(entries))); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.exportPath != "" {
		if err := exportFile(ctx, a, c.exportPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "append rows from a ledger CSV export" }
func (*importCmd) Usage() string {
	return `advisor import FILE

  Appends every row of FILE (DateTime,Stock,Price,Decision) to the ledger.
  Existing rows are never changed.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	a, err := newApp(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(ctx)

	if err := importFile(ctx, a, f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
