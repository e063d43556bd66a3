package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"llm-stock-advisor/internal/analysis"
	"llm-stock-advisor/internal/decision"
	"llm-stock-advisor/internal/engine"
	"llm-stock-advisor/internal/engine/engineobs"
	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/ledger"
	"llm-stock-advisor/internal/llm/gemini"
	"llm-stock-advisor/internal/llm/llmobs"
	"llm-stock-advisor/internal/llm/noop"
	"llm-stock-advisor/internal/llm/openrouter"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/marketdata"
	"llm-stock-advisor/internal/news"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/symbol"
	"llm-stock-advisor/internal/trace"
)

// app holds everything a command needs. Close releases the ledger and flushes spans.
type app struct {
	cfg    *store.Config
	engine interfaces.Engine
	ledger ledger.Store
}

func (a *app) Close(ctx context.Context) {
	if err := a.ledger.Close(); err != nil {
		logger.Warn(ctx, "Failed to close ledger", "error", err)
	}
	if err := trace.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to flush traces: %v\n", err)
	}
}

// initializeSystem loads .env and starts logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context, path string) (*store.Config, error) {
	cfg, err := store.LoadConfig(path)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err, "path", path)
		return nil, err
	}
	return cfg, nil
}

// newApp wires the pipeline. Only configuration and ledger errors are fatal;
// missing credentials degrade to no-op providers.
func newApp(ctx context.Context, configPath string) (*app, error) {
	if err := initializeSystem(); err != nil {
		return nil, err
	}
	cfg, err := loadConfig(ctx, configPath)
	if err != nil {
		return nil, err
	}
	secrets := store.LoadSecretsFromEnv()

	l, err := ledger.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	gen := initializeGenerator(ctx, cfg, secrets)
	market := initializeMarketData(ctx, cfg, secrets)

	eng := engine.New(engine.Deps{
		Resolver: initializeResolver(ctx, cfg),
		Market:   market,
		News:     news.New(cfg, secrets.GNewsKey, market),
		Analyzer: analysis.New(gen, cfg),
		Decider:  decision.New(gen, cfg),
		Ledger:   l,
	})

	return &app{cfg: cfg, engine: engineobs.Wrap(eng), ledger: l}, nil
}

// initializeGenerator picks the text-generation provider and wraps it with observability.
func initializeGenerator(ctx context.Context, cfg *store.Config, s store.Secrets) interfaces.Generator {
	switch cfg.LLM.Provider {
	case store.ProviderOpenRouter:
		c, err := openrouter.New(cfg, s.OpenRouterKey)
		if err == nil {
			return llmobs.Wrap(c, "openrouter")
		}
		logger.Warn(ctx, "OpenRouter unavailable, using noop generator", "error", err)
	case store.ProviderGemini:
		// The default base URL points at OpenRouter and must not leak into the Gemini client.
		baseURL := cfg.LLM.BaseURL
		if baseURL == store.Default().LLM.BaseURL {
			baseURL = ""
		}
		c, err := gemini.New(ctx, cfg, s.GeminiKey, baseURL)
		if err == nil {
			return llmobs.Wrap(c, "gemini")
		}
		logger.Warn(ctx, "Gemini unavailable, using noop generator", "error", err)
	default:
		logger.Warn(ctx, "No LLM provider configured - using noop generator (always HOLD)")
	}
	return llmobs.Wrap(noop.New(), "noop")
}

func initializeResolver(ctx context.Context, cfg *store.Config) interfaces.Resolver {
	var v interfaces.Validator
	switch {
	case len(cfg.Symbols.Known) > 0:
		v = symbol.NewTableValidator(cfg.Symbols.Known)
	case cfg.Symbols.Validate && cfg.Exchange == "NSE":
		v = symbol.NewNSEValidator(cfg.Symbols.NSEURL, cfg.MarketData.Timeout)
	default:
		logger.Info(ctx, "Symbol validation disabled", "exchange", cfg.Exchange)
	}
	return symbol.NewResolver(v, cfg.Suffix())
}

func initializeMarketData(ctx context.Context, cfg *store.Config, s store.Secrets) *marketdata.Client {
	var quotes interfaces.QuoteSource
	if s.HasKite() {
		quotes = marketdata.NewKiteQuotes(s.KiteAPIKey, s.KiteAccessToken, cfg.Exchange, cfg.MarketData.Timeout)
		logger.Info(ctx, "Using Kite last traded price", "exchange", cfg.Exchange, "prefer_live", cfg.MarketData.PreferLivePrice)
	}
	return marketdata.New(cfg, quotes)
}

func splitTickers(args []string) []string {
	var out []string
	for _, a := range args {
		for _, t := range strings.Split(a, ",") {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}
