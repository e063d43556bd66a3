package engine

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"llm-stock-advisor/internal/analysis"
	"llm-stock-advisor/internal/decision"
	"llm-stock-advisor/internal/ledger"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/news"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/symbol"
	"llm-stock-advisor/internal/types"
)

const analysisText = `Technical Reasoning:
P/E of 28.4 is in line with IT peers and the price sits mid-range of its 52-week band.
News-Based Reasoning:
Large deal wins and steady guidance point to positive sentiment.
Summary:
Fundamentals are solid and sentiment is positive.`

// scriptedGenerator answers by caller title.
type scriptedGenerator struct {
	answers map[string]string
	err     error
}

func (g scriptedGenerator) Generate(_ context.Context, _ string, opts llm.Options) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.answers[opts.Title], nil
}

type fakeMarket struct {
	snap types.Snapshot
	err  error
}

func (f fakeMarket) Fetch(_ context.Context, qualified string) (types.Snapshot, error) {
	if f.err != nil {
		return types.EmptySnapshot(qualified), f.err
	}
	s := f.snap
	s.Symbol = qualified
	return s, nil
}

func (f fakeMarket) CompanyName(context.Context, string) string { return "Tata Consultancy Services" }

type fakeNews []types.Article

func (f fakeNews) Fetch(context.Context, string) []types.Article { return f }

type failingLedger struct{}

func (failingLedger) Append(context.Context, types.Entry) error   { return errors.New("disk full") }
func (failingLedger) List(context.Context) ([]types.Entry, error) { return nil, nil }
func (failingLedger) Export(context.Context, io.Writer) error     { return nil }

func tcsSnapshot(t *testing.T) types.Snapshot {
	t.Helper()
	price, err := types.ParseNumber("3500")
	if err != nil {
		t.Fatal(err)
	}
	return types.Snapshot{
		Info:         map[string]any{types.InfoLongName: "Tata Consultancy Services"},
		CurrentPrice: price,
		PERatio:      types.NumberFrom(28),
	}
}

func newTestEngine(t *testing.T, d Deps) *Engine {
	t.Helper()
	cfg := store.Default()
	if d.Resolver == nil {
		d.Resolver = symbol.NewResolver(symbol.NewTableValidator([]string{"TCS"}), cfg.Suffix())
	}
	if d.Analyzer == nil || d.Decider == nil {
		gen := scriptedGenerator{answers: map[string]string{
			analysis.Title: analysisText,
			decision.Title: "BUY - strong growth and positive news flow.",
		}}
		d.Analyzer = analysis.New(gen, cfg)
		d.Decider = decision.New(gen, cfg)
	}
	if d.Ledger == nil {
		d.Ledger = ledger.NewMemory()
	}
	e := newEngine(d)
	e.now = func() time.Time { return time.Date(2024, 5, 1, 16, 30, 0, 0, time.Local) }
	e.newID = func() string { return "run-1" }
	return e
}

func TestAnalyzeRecordsDecision(t *testing.T) {
	ctx := context.Background()
	l := ledger.NewMemory()
	e := newTestEngine(t, Deps{
		Market: fakeMarket{snap: tcsSnapshot(t)},
		News: fakeNews{
			{Title: "TCS wins deal", Description: "Large contract"},
			{Title: "TCS guidance steady", Description: "Management reiterates outlook"},
			{Title: "IT sector rallies", Description: "Peers gain on demand"},
		},
		Ledger: l,
	})

	r, err := e.Analyze(ctx, "tcs")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r.Resolution.Qualified != "TCS.NS" {
		t.Errorf("Expected TCS.NS, got %s", r.Resolution.Qualified)
	}
	if r.Label != types.Buy {
		t.Errorf("Expected Buy, got %s", r.Label)
	}
	want := types.Analysis{
		TechnicalReason: "P/E of 28.4 is in line with IT peers and the price sits mid-range of its 52-week band.",
		NewsReason:      "Large deal wins and steady guidance point to positive sentiment.",
		Summary:         "Fundamentals are solid and sentiment is positive.",
	}
	if r.Analysis != want {
		t.Errorf("Unexpected analysis %+v", r.Analysis)
	}
	if len(r.Articles) != 3 {
		t.Errorf("Expected 3 articles, got %d", len(r.Articles))
	}
	if !r.Logged || len(r.Warnings) != 0 {
		t.Errorf("Expected a clean logged run, got logged=%v warnings=%v", r.Logged, r.Warnings)
	}
	if r.RunID != "run-1" {
		t.Errorf("Unexpected run id %s", r.RunID)
	}

	entries, _ := l.List(ctx)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 ledger row, got %d", len(entries))
	}
	got := entries[0]
	if got.Stock != "TCS" || got.Price.String() != "3500" || got.Decision != "BUY" {
		t.Errorf("Unexpected ledger row %+v", got)
	}
	if got.Time.Format(types.TimeLayout) != "2024-05-01 16:30:00" {
		t.Errorf("Unexpected timestamp %s", got.Time)
	}
}

func TestAnalyzeWithoutNewsCredential(t *testing.T) {
	cfg := store.Default()
	e := newTestEngine(t, Deps{
		Market: fakeMarket{snap: tcsSnapshot(t)},
		News:   news.New(cfg, "", nil),
	})

	r, err := e.Analyze(context.Background(), "TCS")
	if err != nil {
		t.Fatalf("Missing news must not fail the run: %v", err)
	}
	if r.Articles == nil || len(r.Articles) != 0 {
		t.Errorf("Expected an empty article list, got %v", r.Articles)
	}
	if !hasWarning(r, "no news") {
		t.Errorf("Expected a news warning, got %v", r.Warnings)
	}
	if r.Analysis.Summary == "" || !r.Logged {
		t.Errorf("Expected a completed report, got %+v", r)
	}
}

func TestAnalyzeMarketFailureDegrades(t *testing.T) {
	l := ledger.NewMemory()
	e := newTestEngine(t, Deps{
		Market: fakeMarket{err: errors.New("timeout")},
		News:   fakeNews{},
		Ledger: l,
	})

	r, err := e.Analyze(context.Background(), "TCS")
	if err != nil {
		t.Fatal(err)
	}
	if r.Snapshot.CurrentPrice.String() != types.NA {
		t.Errorf("Expected N/A price, got %s", r.Snapshot.CurrentPrice)
	}
	if !hasWarning(r, "market data unavailable") {
		t.Errorf("Expected market warning, got %v", r.Warnings)
	}
	entries, _ := l.List(context.Background())
	if len(entries) != 1 || entries[0].Price.String() != types.NA {
		t.Errorf("Expected a row with N/A price, got %+v", entries)
	}
}

func TestAnalyzeProviderErrorStillRecords(t *testing.T) {
	cfg := store.Default()
	gen := scriptedGenerator{err: &llm.APIError{Provider: "OpenRouter", StatusCode: 401, Message: "bad key"}}
	l := ledger.NewMemory()
	e := newTestEngine(t, Deps{
		Market:   fakeMarket{snap: tcsSnapshot(t)},
		News:     fakeNews{},
		Analyzer: analysis.New(gen, cfg),
		Decider:  decision.New(gen, cfg),
		Ledger:   l,
	})

	r, err := e.Analyze(context.Background(), "TCS")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(r.Decision, "API Error:") || r.Label != types.Hold {
		t.Errorf("Expected API error text classified as Hold, got %q %s", r.Decision, r.Label)
	}
	entries, _ := l.List(context.Background())
	if len(entries) != 1 || entries[0].Decision != "API" {
		t.Errorf("Expected the first word of the error text, got %+v", entries)
	}
}

func TestAnalyzeLedgerFailureIsWarning(t *testing.T) {
	e := newTestEngine(t, Deps{
		Market: fakeMarket{snap: tcsSnapshot(t)},
		News:   fakeNews{{Title: "t"}},
		Ledger: failingLedger{},
	})

	r, err := e.Analyze(context.Background(), "TCS")
	if err != nil {
		t.Fatal(err)
	}
	if r.Logged || !hasWarning(r, "disk full") {
		t.Errorf("Expected unlogged report with warning, got logged=%v %v", r.Logged, r.Warnings)
	}
}

func TestAnalyzeUnconfirmedSymbol(t *testing.T) {
	e := newTestEngine(t, Deps{
		Market: fakeMarket{snap: tcsSnapshot(t)},
		News:   fakeNews{{Title: "t"}},
	})
	r, err := e.Analyze(context.Background(), "XYZ")
	if err != nil {
		t.Fatal(err)
	}
	if r.Resolution.Qualified != "XYZ.NS" || !hasWarning(r, "could not be confirmed") {
		t.Errorf("Expected best-guess symbol with warning, got %+v %v", r.Resolution, r.Warnings)
	}
}

func TestAnalyzeBlank(t *testing.T) {
	e := newTestEngine(t, Deps{Market: fakeMarket{}, News: fakeNews{}})
	if _, err := e.Analyze(context.Background(), "   "); !errors.Is(err, ErrBlankTicker) {
		t.Errorf("Expected ErrBlankTicker, got %v", err)
	}
}

func hasWarning(r *types.Report, sub string) bool {
	for _, w := range r.Warnings {
		if strings.Contains(w, sub) {
			return true
		}
	}
	return false
}
