package engineobs

import (
	"context"
	"time"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/trace"
	"llm-stock-advisor/internal/types"
)

type observableEngine struct {
	engine interfaces.Engine
}

var _ interfaces.Engine = (*observableEngine)(nil)

func Wrap(eng interfaces.Engine) interfaces.Engine {
	return &observableEngine{
		engine: eng,
	}
}

func (oe *observableEngine) Analyze(ctx context.Context, ticker string) (*types.Report, error) {
	ctx, span := trace.StartSpan(ctx, "engine.Analyze")
	defer span.End()

	start := time.Now()

	logger.InfoSkip(ctx, 1, "Starting analysis",
		"ticker", ticker,
	)

	report, err := oe.engine.Analyze(ctx, ticker)
	if err != nil {
		span.RecordError(err)
		logger.ErrorWithErrSkip(ctx, 1, "Analysis failed", err,
			"ticker", ticker,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	span.SetAttributes(trace.Attrs(
		"run_id", report.RunID,
		"symbol", report.Resolution.Qualified,
		"label", string(report.Label),
		"warnings", len(report.Warnings),
	)...)

	logger.InfoSkip(ctx, 1, "Analysis completed",
		"run_id", report.RunID,
		"symbol", report.Resolution.Qualified,
		"label", report.Label,
		"logged", report.Logged,
		"warnings", len(report.Warnings),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return report, nil
}
