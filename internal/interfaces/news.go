package interfaces

import (
	"context"

	"llm-stock-advisor/internal/types"
)

// NewsFetcher never fails; provider problems yield an empty slice.
type NewsFetcher interface {
	Fetch(ctx context.Context, symbol string) []types.Article
}
