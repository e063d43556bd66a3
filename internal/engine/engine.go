// Package engine runs one analysis: resolve, fetch, analyse, decide, record.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/types"
)

// ErrBlankTicker is the only error Analyze returns.
var ErrBlankTicker = errors.New("ticker is blank")

// Deps are the collaborators of one pipeline. All are required.
type Deps struct {
	Resolver interfaces.Resolver
	Market   interfaces.MarketData
	News     interfaces.NewsFetcher
	Analyzer interfaces.Analyzer
	Decider  interfaces.Decider
	Ledger   interfaces.Ledger
}

type Engine struct {
	resolver interfaces.Resolver
	market   interfaces.MarketData
	news     interfaces.NewsFetcher
	analyzer interfaces.Analyzer
	decider  interfaces.Decider
	ledger   interfaces.Ledger

	now   func() time.Time
	newID func() string
}

var _ interfaces.Engine = (*Engine)(nil)

func newEngine(d Deps) *Engine {
	return &Engine{
		resolver: d.Resolver,
		market:   d.Market,
		news:     d.News,
		analyzer: d.Analyzer,
		decider:  d.Decider,
		ledger:   d.Ledger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Analyze runs the steps in order. Provider failures degrade the report and
// are listed in its warnings; they never abort the run.
func (e *Engine) Analyze(ctx context.Context, ticker string) (*types.Report, error) {
	if strings.TrimSpace(ticker) == "" {
		return nil, ErrBlankTicker
	}
	r := &types.Report{RunID: e.newID()}

	r.Resolution = e.resolver.Resolve(ctx, ticker)
	if !r.Resolution.Confirmed {
		r.Warn(fmt.Sprintf("%s could not be confirmed on the exchange, using %s", r.Resolution.Base, r.Resolution.Qualified))
	}
	symbol := r.Resolution.Qualified
	logger.Debug(ctx, "Symbol resolved", "run_id", r.RunID, "input", ticker, "symbol", symbol)

	snap, err := e.market.Fetch(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Market data unavailable", err, "run_id", r.RunID, "symbol", symbol)
		r.Warn("market data unavailable: " + err.Error())
	}
	r.Snapshot = snap

	r.Articles = e.news.Fetch(ctx, symbol)
	if len(r.Articles) == 0 {
		r.Warn("no news articles found")
	}
	logger.Debug(ctx, "Inputs collected", "run_id", r.RunID, "symbol", symbol,
		"price", snap.CurrentPrice.String(), "articles", len(r.Articles))

	r.Analysis = e.analyzer.Analyze(ctx, r.Articles, snap)
	r.Decision = e.decider.Decide(ctx, snap.CurrentPrice, r.Analysis.Summary)
	r.Label = types.Classify(r.Decision)

	r.Entry = types.Entry{
		Time:     e.now(),
		Stock:    r.Resolution.Base,
		Price:    snap.CurrentPrice,
		Decision: types.LedgerToken(r.Decision),
	}
	if err := e.ledger.Append(ctx, r.Entry); err != nil {
		logger.ErrorWithErr(ctx, "Failed to record decision", err, "run_id", r.RunID, "symbol", symbol)
		r.Warn("decision not recorded: " + err.Error())
	} else {
		r.Logged = true
	}

	logger.Decision(ctx, r.Resolution.Base, string(r.Label), snap.CurrentPrice.String(), r.Decision,
		"run_id", r.RunID, "logged", r.Logged)
	return r, nil
}
