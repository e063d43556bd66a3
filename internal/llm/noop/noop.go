package noop

import (
	"context"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/logger"
)

// Response is returned for every prompt. It parses as a complete analysis and
// classifies as Hold.
const Response = `Technical Reasoning:
No language model is configured, so no technical assessment was made.
News-Based Reasoning:
No language model is configured, so the news was not assessed.
Summary:
Hold - no model is configured to produce a recommendation.`

// Generator is the fallback used when no provider credential is configured.
type Generator struct{}

var _ interfaces.Generator = Generator{}

func New() Generator {
	return Generator{}
}

func (Generator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	logger.Debug(ctx, "Noop generator called - returning fixed Hold text", "title", opts.Title)
	return Response, nil
}
