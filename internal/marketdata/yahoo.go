// Package marketdata fetches company fundamentals from Yahoo Finance and,
// optionally, live prices from Kite Connect.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"llm-stock-advisor/internal/api"
	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/types"
)

const modules = "price,summaryDetail,financialData,defaultKeyStatistics,assetProfile,incomeStatementHistory"

type Client struct {
	client    *api.Client
	baseURL   string
	cookieURL string
	timeout   time.Duration
	retry     *api.RetryConfig

	quotes     interfaces.QuoteSource
	preferLive bool

	crumbMu sync.Mutex
	crumb   string

	mu sync.Mutex
	// names caches longName per symbol; "" records that the last fetch found none.
	names map[string]string
}

var (
	_ interfaces.MarketData   = (*Client)(nil)
	_ interfaces.CompanyNamer = (*Client)(nil)
)

// New builds a Yahoo Finance client. quotes may be nil.
func New(cfg *store.Config, quotes interfaces.QuoteSource) *Client {
	md := cfg.MarketData
	return &Client{
		client: api.NewClient(
			api.WithHeaders(api.YahooFinanceHeaders()),
			api.WithCookieJar(),
			api.WithTimeout(md.Timeout),
			api.WithLogging(true),
		),
		baseURL:   strings.TrimRight(md.BaseURL, "/"),
		cookieURL: md.CookieURL,
		timeout:   md.Timeout,
		retry: &api.RetryConfig{
			MaxAttempts: md.Retries + 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     2 * time.Second,
		},
		quotes:     quotes,
		preferLive: md.PreferLivePrice,
		names:      make(map[string]string),
	}
}

// Fetch returns the snapshot for a qualified symbol. On failure the snapshot
// has every figure unavailable and err is a *FetchError.
func (c *Client) Fetch(ctx context.Context, qualified string) (types.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	snap := types.EmptySnapshot(qualified)
	result, err := c.quoteSummary(ctx, qualified)
	if err == nil {
		snap = buildSnapshot(qualified, result)
	}
	c.rememberName(qualified, snap, err)

	c.overlay(ctx, &snap)
	if err != nil {
		return snap, classify(qualified, err)
	}
	return snap, nil
}

func (c *Client) rememberName(qualified string, snap types.Snapshot, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if name := snap.InfoString(types.InfoLongName); name != types.NA {
		c.names[qualified] = name
		return
	}
	// A failed fetch must not erase a name learned earlier.
	if _, known := c.names[qualified]; err == nil || !known {
		c.names[qualified] = ""
	}
}

// CompanyName returns the long company name, or qualified when unknown. It only
// calls the provider for symbols Fetch has not seen.
func (c *Client) CompanyName(ctx context.Context, qualified string) string {
	c.mu.Lock()
	name, ok := c.names[qualified]
	c.mu.Unlock()
	if ok {
		if name == "" {
			return qualified
		}
		return name
	}

	snap, err := c.Fetch(ctx, qualified)
	if err != nil {
		logger.Debug(ctx, "Company name unavailable, using symbol", "symbol", qualified, "error", err)
	}
	return snap.CompanyName()
}

// overlay applies the live price when Yahoo has none or live prices are preferred.
func (c *Client) overlay(ctx context.Context, snap *types.Snapshot) {
	if c.quotes == nil || (snap.CurrentPrice.Valid() && !c.preferLive) {
		return
	}
	price, err := c.quotes.LastPrice(ctx, stripSuffix(snap.Symbol))
	if err != nil {
		logger.Warn(ctx, "Live price unavailable", "symbol", snap.Symbol, "error", err)
		return
	}
	if !price.Valid() {
		return
	}
	snap.CurrentPrice = price
	if f, ok := price.Float64(); ok {
		snap.Info[types.InfoCurrentPrice] = f
	}
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

func (c *Client) summaryRequest(ctx context.Context, symbol string) (*api.Response, error) {
	q := url.Values{"modules": {modules}}
	if crumb := c.ensureCrumb(ctx); crumb != "" {
		q.Set("crumb", crumb)
	}
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())
	return c.client.DoWithRetry(api.NewRequest(http.MethodGet, u).WithContext(ctx), c.retry)
}

func (c *Client) quoteSummary(ctx context.Context, symbol string) (any, error) {
	resp, err := c.summaryRequest(ctx, symbol)
	if api.StatusCode(err) == http.StatusUnauthorized {
		// Yahoo answers 401 "Invalid Crumb" once the session behind the crumb expires.
		logger.Debug(ctx, "Yahoo rejected crumb, renewing", "symbol", symbol)
		c.resetCrumb()
		resp, err = c.summaryRequest(ctx, symbol)
	}
	if err != nil {
		return nil, err
	}

	var body quoteSummaryResponse
	if err := resp.ParseJSON(&body); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Symbol: symbol, Err: err}
	}
	if e := body.QuoteSummary.Error; e != nil {
		kind := KindHTTP
		if strings.EqualFold(e.Code, "Not Found") {
			kind = KindNotFound
		}
		return nil, &FetchError{Kind: kind, Symbol: symbol, Err: errors.New(e.Description)}
	}
	if len(body.QuoteSummary.Result) == 0 {
		return nil, &FetchError{Kind: KindNotFound, Symbol: symbol, Err: errors.New("empty result")}
	}

	var result any
	if err := json.Unmarshal(body.QuoteSummary.Result[0], &result); err != nil {
		return nil, &FetchError{Kind: KindMalformed, Symbol: symbol, Err: err}
	}
	if _, ok := result.(map[string]any); !ok {
		return nil, &FetchError{Kind: KindMalformed, Symbol: symbol, Err: errors.New("result is not an object")}
	}
	return result, nil
}

// ensureCrumb performs Yahoo's cookie and crumb handshake until it succeeds.
// While it fails the crumb stays empty and requests go out without it.
func (c *Client) ensureCrumb(ctx context.Context) string {
	c.crumbMu.Lock()
	defer c.crumbMu.Unlock()
	if c.crumb != "" {
		return c.crumb
	}

	if c.cookieURL != "" {
		_, _ = c.client.GET(ctx, c.cookieURL)
	}
	resp, err := c.client.GET(ctx, c.baseURL+"/v1/test/getcrumb", map[string]string{"Accept": "text/plain"})
	if err != nil {
		logger.Debug(ctx, "Yahoo crumb unavailable", "error", err)
		return ""
	}
	crumb := strings.TrimSpace(resp.String())
	if crumb != "" && !strings.ContainsAny(crumb, "{<") {
		c.crumb = crumb
	}
	return c.crumb
}

func (c *Client) resetCrumb() {
	c.crumbMu.Lock()
	c.crumb = ""
	c.crumbMu.Unlock()
}
