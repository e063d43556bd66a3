package interfaces

import (
	"context"

	"llm-stock-advisor/internal/types"
)

// Validator checks whether a base ticker is listed on the exchange.
// An error means the answer is unknown, not that the symbol is invalid.
type Validator interface {
	Validate(ctx context.Context, symbol string) (bool, error)
}

type Resolver interface {
	Resolve(ctx context.Context, raw string) types.Resolution
}
