package interfaces

import (
	"context"

	"llm-stock-advisor/internal/types"
)

type Engine interface {
	Analyze(ctx context.Context, ticker string) (*types.Report, error)
}
