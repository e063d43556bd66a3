package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"llm-stock-advisor/internal/ledger"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/report"
)

type analyzeCmd struct {
	format     string
	output     string
	importPath string
	exportPath string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyse one or more tickers and record the recommendation" }
func (*analyzeCmd) Usage() string {
	return `advisor analyze [-format term|md|html] [-o file] [-import csv] [-export csv] TICKER...

  Fetches market data and news for each ticker, asks the language model for
  an analysis and a Buy/Hold/Sell recommendation, and appends it to the
  portfolio ledger. Tickers may be separated by spaces or commas.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", formatTerminal, "output format: term, md or html")
	f.StringVar(&c.output, "o", "", "write the report to this file instead of stdout")
	f.StringVar(&c.importPath, "import", "", "append rows from this ledger CSV before analysing")
	f.StringVar(&c.exportPath, "export", "", "write the ledger as CSV to this file afterwards")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tickers := splitTickers(f.Args())
	if len(tickers) == 0 || !validFormat(c.format) {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := newApp(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(ctx)

	if c.importPath != "" {
		if err := importFile(ctx, a, c.importPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", c.importPath, err)
			return subcommands.ExitFailure
		}
	}

	var pages []string
	for _, t := range tickers {
		r, err := a.engine.Analyze(ctx, t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error analysing %q: %v\n", t, err)
			continue
		}
		pages = append(pages, report.Markdown(r))
	}
	if len(pages) == 0 {
		return subcommands.ExitFailure
	}

	title := "Stock analysis: " + strings.ToUpper(strings.Join(tickers, ", "))
	if err := emit(c.output, c.format, title, strings.Join(pages, "\n\n---\n\n")); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
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

func importFile(ctx context.Context, a *app, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := ledger.Import(ctx, a.ledger, f)
	if err != nil {
		return err
	}
	logger.Info(ctx, "Imported ledger rows", "file", path, "rows", n)
	return nil
}

func exportFile(ctx context.Context, a *app, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.ledger.Export(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
