package llmobs

import (
	"context"
	"time"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/trace"
)

// observableGenerator wraps a Generator with observability (logging & tracing)
type observableGenerator struct {
	gen  interfaces.Generator
	name string
}

// Compile-time interface check
var _ interfaces.Generator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware. name labels the provider.
func Wrap(gen interfaces.Generator, name string) interfaces.Generator {
	return &observableGenerator{gen: gen, name: name}
}

func (og *observableGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()
	span.SetAttributes(trace.Attrs("provider", og.name, "title", opts.Title, "prompt_chars", len(prompt))...)

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting completion",
		"provider", og.name,
		"title", opts.Title,
		"prompt_chars", len(prompt),
	)

	start := time.Now()
	out, err := og.gen.Generate(ctx, prompt, opts)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Completion failed", err,
			"provider", og.name,
			"title", opts.Title,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Completion received",
		"provider", og.name,
		"title", opts.Title,
		"response_chars", len(out),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
