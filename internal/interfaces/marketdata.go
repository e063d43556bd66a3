package interfaces

import (
	"context"

	"llm-stock-advisor/internal/types"
)

// MarketData returns a snapshot for a qualified symbol. The snapshot is usable
// even when err is non-nil.
type MarketData interface {
	Fetch(ctx context.Context, qualified string) (types.Snapshot, error)
}

type CompanyNamer interface {
	CompanyName(ctx context.Context, qualified string) string
}

// QuoteSource supplies a last traded price for a base ticker.
type QuoteSource interface {
	LastPrice(ctx context.Context, symbol string) (types.Number, error)
}
