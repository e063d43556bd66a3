package interfaces

import (
	"context"

	"llm-stock-advisor/internal/types"
)

// Analyzer turns news and fundamentals into the three reasoning sections.
type Analyzer interface {
	Analyze(ctx context.Context, articles []types.Article, snap types.Snapshot) types.Analysis
}

// Decider turns a price and an analysis summary into recommendation text.
type Decider interface {
	Decide(ctx context.Context, price types.Number, summary string) string
}
