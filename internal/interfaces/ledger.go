package interfaces

import (
	"context"
	"io"

	"llm-stock-advisor/internal/types"
)

// Ledger is an append-only record of decisions. List returns insertion order.
type Ledger interface {
	Append(ctx context.Context, e types.Entry) error
	List(ctx context.Context) ([]types.Entry, error)
	Export(ctx context.Context, w io.Writer) error
}
