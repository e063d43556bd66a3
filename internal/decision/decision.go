// Package decision turns an analysis summary into a Buy, Hold or Sell
// recommendation.
package decision

import (
	"context"
	"errors"
	"fmt"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/types"
)

// Title is sent to the provider as the calling feature's name.
const Title = "Stock Advisor"

const promptTemplate = `You are a stock advisor. A stock is currently priced at ₹%s.
Here is a detailed analysis of its news and financials:

%s

Based on the above, recommend if the investor should Buy, Hold, or Sell. Choose exactly one of the three and give your reasoning in 2-3 sentences.
`

type Decider struct {
	gen  interfaces.Generator
	opts llm.Options
}

var _ interfaces.Decider = (*Decider)(nil)

func New(gen interfaces.Generator, cfg *store.Config) *Decider {
	return &Decider{
		gen:  gen,
		opts: llm.Options{Title: Title, Timeout: cfg.LLM.DecisionTimeout},
	}
}

func BuildPrompt(price types.Number, summary string) string {
	return fmt.Sprintf(promptTemplate, price, summary)
}

// Decide always returns text. Failures come back as "API Error: ..." or
// "Unexpected response format: ..." so the caller still has something to classify.
func (d *Decider) Decide(ctx context.Context, price types.Number, summary string) string {
	out, err := d.gen.Generate(ctx, BuildPrompt(price, summary), d.opts)
	if err == nil {
		return out
	}

	logger.Warn(ctx, "Decision generation failed", "error", err)
	if errors.Is(err, llm.ErrUnexpectedFormat) {
		return "Unexpected response format: " + llm.RawResponse(err)
	}
	return "API Error: " + err.Error()
}
