// Package news fetches recent articles about a company.
package news

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"llm-stock-advisor/internal/api"
	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/types"
)

// Fetcher queries the GNews search API.
type Fetcher struct {
	client  *api.Client
	names   interfaces.CompanyNamer
	apiKey  string
	baseURL string
	keyword string
	lang    string
	country string
	max     int
	timeout time.Duration

	fallback *Scraper
}

var _ interfaces.NewsFetcher = (*Fetcher)(nil)

// New builds a fetcher. An empty apiKey is allowed; Fetch then returns no articles.
func New(cfg *store.Config, apiKey string, names interfaces.CompanyNamer) *Fetcher {
	n := cfg.News
	f := &Fetcher{
		client: api.NewClient(
			api.WithHeaders(api.BrowserHeaders()),
			api.WithTimeout(n.Timeout),
			// GNews allows one request per second on its free plan.
			api.WithRateLimit(1, time.Second),
			api.WithLogging(true),
		),
		names:   names,
		apiKey:  apiKey,
		baseURL: strings.TrimRight(n.BaseURL, "/"),
		keyword: n.Keyword,
		lang:    n.Language,
		country: n.Country,
		max:     n.MaxArticles,
		timeout: n.Timeout,
	}
	if n.ScrapeFallback {
		f.fallback = NewScraper(GoogleNewsURL, n.Timeout)
	}
	return f
}

// WithFallback replaces the scrape fallback. nil disables it.
func (f *Fetcher) WithFallback(s *Scraper) *Fetcher {
	f.fallback = s
	return f
}

type searchResponse struct {
	TotalArticles int `json:"totalArticles"`
	Articles      []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch returns articles in provider order. It never fails: a missing
// credential or provider error yields an empty slice.
func (f *Fetcher) Fetch(ctx context.Context, symbol string) []types.Article {
	articles := []types.Article{}
	if f.apiKey == "" {
		logger.Warn(ctx, "GNEWS_API_KEY not set, skipping news", "symbol", symbol)
		return articles
	}

	company := symbol
	if f.names != nil {
		company = f.names.CompanyName(ctx, symbol)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	q := url.Values{
		"q":       {`"` + company + `" ` + f.keyword},
		"lang":    {f.lang},
		"country": {f.country},
		"max":     {strconv.Itoa(f.max)},
		"token":   {f.apiKey},
	}
	resp, err := f.client.GET(ctx, f.baseURL+"/search?"+q.Encode())
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			logger.Warn(ctx, "News provider returned an error", "symbol", symbol, "status", se.StatusCode, "body", se.Body)
		} else {
			logger.Warn(ctx, "News fetch failed", "symbol", symbol, "error", err)
		}
		return articles
	}

	var body searchResponse
	if err := resp.ParseJSON(&body); err != nil {
		logger.Warn(ctx, "News response unreadable", "symbol", symbol, "error", err)
		return articles
	}

	for _, a := range body.Articles {
		if len(articles) == f.max {
			break
		}
		articles = append(articles, types.Article{
			Title:       strings.TrimSpace(a.Title),
			Description: cleanHTML(a.Description),
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}

	if len(articles) == 0 && f.fallback != nil {
		scraped, err := f.fallback.ScrapeGoogleNews(ctx, company, f.max)
		if err != nil {
			logger.Warn(ctx, "News scrape fallback failed", "symbol", symbol, "error", err)
			return articles
		}
		articles = append(articles, scraped...)
		if len(articles) > f.max {
			articles = articles[:f.max]
		}
	}

	logger.Debug(ctx, "News fetched", "symbol", symbol, "company", company, "articles", len(articles))
	return articles
}

// cleanHTML strips markup from a description and collapses whitespace.
func cleanHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
