package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/types"
)

// GoogleNewsURL is the default host searched by the scrape fallback.
const GoogleNewsURL = "https://news.google.com"

// Scraper reads article headlines from a Google News search page.
type Scraper struct {
	baseURL string
	timeout time.Duration
}

func NewScraper(baseURL string, timeout time.Duration) *Scraper {
	return &Scraper{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

// ScrapeGoogleNews searches for company news and returns at most maxArticles.
func (s *Scraper) ScrapeGoogleNews(ctx context.Context, companyName string, maxArticles int) ([]types.Article, error) {
	articles := []types.Article{}

	c := colly.NewCollector(
		colly.AllowedDomains(getDomain(s.baseURL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(articles) >= maxArticles {
			return
		}

		title := strings.TrimSpace(e.ChildText("h3, h4"))
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}
		// Google News links are relative to the site root
		if strings.HasPrefix(link, "./") {
			link = s.baseURL + link[1:]
		}

		articles = append(articles, types.Article{
			Title:       title,
			URL:         link,
			Source:      "GoogleNews",
			PublishedAt: e.ChildAttr("time", "datetime"),
		})
	})

	searchQuery := url.QueryEscape(companyName + " stock news India")
	searchURL := fmt.Sprintf("%s/search?q=%s&hl=en-IN&gl=IN&ceid=IN:en", s.baseURL, searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Info(ctx, "Google News scraping completed", "company", companyName, "articles", len(articles))
	return articles, nil
}

func getDomain(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
