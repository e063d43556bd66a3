// Package analysis asks a language model for technical and news-based
// reasoning about a stock.
package analysis

import (
	"context"
	"errors"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/types"
)

// Title is sent to the provider as the calling feature's name.
const Title = "Stock Analyzer"

type Analyzer struct {
	gen  interfaces.Generator
	opts llm.Options
}

var _ interfaces.Analyzer = (*Analyzer)(nil)

func New(gen interfaces.Generator, cfg *store.Config) *Analyzer {
	return &Analyzer{
		gen:  gen,
		opts: llm.Options{Title: Title, Timeout: cfg.LLM.AnalysisTimeout},
	}
}

// Analyze never fails. Provider problems are reported in Summary with the
// reasoning fields left at "N/A".
func (a *Analyzer) Analyze(ctx context.Context, articles []types.Article, snap types.Snapshot) types.Analysis {
	prompt := BuildPrompt(articles, snap)

	out, err := a.gen.Generate(ctx, prompt, a.opts)
	if err != nil {
		logger.Warn(ctx, "Analysis generation failed", "symbol", snap.Symbol, "error", err)
		return failed(err)
	}
	return Parse(out)
}

func failed(err error) types.Analysis {
	res := types.EmptyAnalysis()
	switch {
	case errors.Is(err, llm.ErrUnexpectedFormat):
		res.Summary = "Error: Unexpected API response format"
	case llm.IsAPIError(err):
		res.Summary = "API Error: " + err.Error()
	default:
		res.Summary = "Processing Error: " + err.Error()
	}
	return res
}
