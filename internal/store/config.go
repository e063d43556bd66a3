package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Exchange string `yaml:"exchange"`
	Symbols  struct {
		Validate bool     `yaml:"validate"`
		Known    []string `yaml:"known"`
		NSEURL   string   `yaml:"nse_url"`
	} `yaml:"symbols"`
	MarketData struct {
		BaseURL         string        `yaml:"base_url"`
		CookieURL       string        `yaml:"cookie_url"`
		Timeout         time.Duration `yaml:"timeout"`
		Retries         int           `yaml:"retries"`
		PreferLivePrice bool          `yaml:"prefer_live_price"`
	} `yaml:"market_data"`
	News struct {
		BaseURL        string        `yaml:"base_url"`
		Keyword        string        `yaml:"keyword"`
		Language       string        `yaml:"language"`
		Country        string        `yaml:"country"`
		MaxArticles    int           `yaml:"max_articles"`
		Timeout        time.Duration `yaml:"timeout"`
		ScrapeFallback bool          `yaml:"scrape_fallback"`
	} `yaml:"news"`
	LLM struct {
		Provider        string        `yaml:"provider"`
		BaseURL         string        `yaml:"base_url"`
		Model           string        `yaml:"model"`
		Temperature     float32       `yaml:"temperature"`
		Referer         string        `yaml:"referer"`
		AnalysisTimeout time.Duration `yaml:"analysis_timeout"`
		DecisionTimeout time.Duration `yaml:"decision_timeout"`
	} `yaml:"llm"`
	Ledger struct {
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"ledger"`
	Watch struct {
		Schedule string   `yaml:"schedule"`
		Symbols  []string `yaml:"symbols"`
	} `yaml:"watch"`
}

// Provider and backend names accepted in configuration.
const (
	ProviderOpenRouter = "OPENROUTER"
	ProviderGemini     = "GEMINI"
	ProviderNoop       = "NOOP"

	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Suffixes maps an exchange to the market-data provider's symbol suffix.
var Suffixes = map[string]string{
	"NSE": ".NS",
	"BSE": ".BO",
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Exchange = "NSE"
	c.Symbols.Validate = true
	c.Symbols.NSEURL = "https://www.nseindia.com"

	c.MarketData.BaseURL = "https://query2.finance.yahoo.com"
	c.MarketData.CookieURL = "https://fc.yahoo.com"
	c.MarketData.Timeout = 15 * time.Second
	c.MarketData.Retries = 2

	c.News.BaseURL = "https://gnews.io/api/v4"
	c.News.Keyword = "stock"
	c.News.Language = "en"
	c.News.Country = "in"
	c.News.MaxArticles = 10
	c.News.Timeout = 10 * time.Second

	c.LLM.Provider = ProviderOpenRouter
	c.LLM.BaseURL = "https://openrouter.ai/api/v1"
	c.LLM.Model = "mistralai/mistral-7b-instruct"
	c.LLM.Temperature = 0.7
	c.LLM.Referer = "http://localhost:8080"
	c.LLM.AnalysisTimeout = 15 * time.Second
	c.LLM.DecisionTimeout = 20 * time.Second

	c.Ledger.Backend = BackendCSV
	c.Ledger.Path = "portfolio.csv"

	c.Watch.Schedule = "30 16 * * 1-5"
	return &c
}

// Suffix returns the exchange suffix for the configured exchange.
func (c *Config) Suffix() string {
	return Suffixes[strings.ToUpper(c.Exchange)]
}

func (c *Config) Validate() error {
	if _, ok := Suffixes[strings.ToUpper(c.Exchange)]; !ok {
		return fmt.Errorf("invalid exchange '%s': must be 'NSE' or 'BSE'", c.Exchange)
	}
	switch strings.ToUpper(c.LLM.Provider) {
	case ProviderOpenRouter, ProviderGemini, ProviderNoop:
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENROUTER', 'GEMINI' or 'NOOP'", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0-2, got %.2f", c.LLM.Temperature)
	}
	switch c.Ledger.Backend {
	case BackendCSV, BackendSQLite:
		if c.Ledger.Path == "" {
			return fmt.Errorf("ledger.path is required for the %s backend", c.Ledger.Backend)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("ledger.backend must be 'csv', 'sqlite' or 'memory', got '%s'", c.Ledger.Backend)
	}
	if c.News.MaxArticles <= 0 || c.News.MaxArticles > 100 {
		return fmt.Errorf("news.max_articles must be between 1-100, got %d", c.News.MaxArticles)
	}
	if c.MarketData.Retries < 0 {
		return fmt.Errorf("market_data.retries cannot be negative, got %d", c.MarketData.Retries)
	}
	for name, d := range map[string]time.Duration{
		"market_data.timeout":  c.MarketData.Timeout,
		"news.timeout":         c.News.Timeout,
		"llm.analysis_timeout": c.LLM.AnalysisTimeout,
		"llm.decision_timeout": c.LLM.DecisionTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	c.Exchange = strings.ToUpper(c.Exchange)
	c.LLM.Provider = strings.ToUpper(c.LLM.Provider)
	c.Ledger.Backend = strings.ToLower(c.Ledger.Backend)
	for i, s := range c.Symbols.Known {
		c.Symbols.Known[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Secrets are provider credentials. They only ever come from the environment.
type Secrets struct {
	OpenRouterKey   string
	GeminiKey       string
	GNewsKey        string
	KiteAPIKey      string
	KiteAccessToken string
}

func LoadSecretsFromEnv() Secrets {
	return Secrets{
		OpenRouterKey:   os.Getenv("OPENROUTER_API_KEY"),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		GNewsKey:        os.Getenv("GNEWS_API_KEY"),
		KiteAPIKey:      os.Getenv("KITE_API_KEY"),
		KiteAccessToken: os.Getenv("KITE_ACCESS_TOKEN"),
	}
}

// HasKite reports whether live quotes can be requested.
func (s Secrets) HasKite() bool {
	return s.KiteAPIKey != "" && s.KiteAccessToken != ""
}
