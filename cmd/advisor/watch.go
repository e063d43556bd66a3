package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"

	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/report"
)

type watchCmd struct {
	spec  string
	now   bool
	quiet bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "re-run analysis on a cron schedule" }
func (*watchCmd) Usage() string {
	return `advisor watch [-spec "30 16 * * 1-5"] [-now] [-q] [TICKER...]

  Analyses the tickers (or watch.symbols from the config) every time the
  five-field cron spec fires. A run that is still going when the next one
  is due is skipped. Stops on SIGINT or SIGTERM.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.spec, "spec", "", "cron schedule, defaults to watch.schedule from the config")
	f.BoolVar(&c.now, "now", false, "run once immediately before waiting for the schedule")
	f.BoolVar(&c.quiet, "q", false, "only log results, do not print reports")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := newApp(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close(ctx)

	tickers := splitTickers(f.Args())
	if len(tickers) == 0 {
		tickers = a.cfg.Watch.Symbols
	}
	if len(tickers) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no tickers given and watch.symbols is empty")
		return subcommands.ExitUsageError
	}
	spec := c.spec
	if spec == "" {
		spec = a.cfg.Watch.Schedule
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	job := func() { c.runOnce(ctx, a, tickers) }
	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := sched.AddFunc(spec, job); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid schedule %q: %v\n", spec, err)
		return subcommands.ExitUsageError
	}

	if c.now {
		job()
	}
	sched.Start()
	logger.Info(ctx, "Watching", "schedule", spec, "tickers", tickers)

	<-ctx.Done()
	logger.Info(ctx, "Shutting down, waiting for running analysis")
	<-sched.Stop().Done()
	return subcommands.ExitSuccess
}

func (c *watchCmd) runOnce(ctx context.Context, a *app, tickers []string) {
	for _, t := range tickers {
		if ctx.Err() != nil {
			return
		}
		r, err := a.engine.Analyze(ctx, t)
		if err != nil {
			logger.ErrorWithErr(ctx, "Scheduled analysis failed", err, "ticker", t)
			continue
		}
		if c.quiet {
			continue
		}
		if err := emit("", formatTerminal, "", report.Markdown(r)); err != nil {
			logger.Warn(ctx, "Failed to print report", "ticker", t, "error", err)
		}
	}
}
