package interfaces

import (
	"context"

	"llm-stock-advisor/internal/llm"
)

type Generator interface {
	Generate(ctx context.Context, prompt string, opts llm.Options) (string, error)
}
