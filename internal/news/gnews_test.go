package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"llm-stock-advisor/internal/store"
)

type staticNamer string

func (n staticNamer) CompanyName(context.Context, string) string { return string(n) }

func newTestFetcher(t *testing.T, apiKey string, h http.HandlerFunc) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := store.Default()
	cfg.News.BaseURL = srv.URL
	cfg.News.Timeout = time.Second
	return New(cfg, apiKey, staticNamer("Tata Consultancy Services Limited"))
}

func TestFetch(t *testing.T) {
	f := newTestFetcher(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != `"Tata Consultancy Services Limited" stock` {
			t.Errorf("Unexpected query %q", q.Get("q"))
		}
		if q.Get("lang") != "en" || q.Get("country") != "in" || q.Get("max") != "10" || q.Get("token") != "secret" {
			t.Errorf("Unexpected parameters %v", q)
		}
		w.Write([]byte(`{"totalArticles":2,"articles":[
			{"title":"TCS wins large deal","description":"<p>TCS signed a <b>multi-year</b> contract.</p>","url":"https://example.com/a","publishedAt":"2024-05-01T10:00:00Z","source":{"name":"Example"}},
			{"title":"TCS Q4 results","description":"","url":"https://example.com/b","source":{"name":"Other"}}
		]}`))
	})

	got := f.Fetch(context.Background(), "TCS.NS")
	if len(got) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(got))
	}
	if got[0].Title != "TCS wins large deal" || got[1].Title != "TCS Q4 results" {
		t.Errorf("Expected provider order, got %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].Description != "TCS signed a multi-year contract." {
		t.Errorf("Expected HTML stripped, got %q", got[0].Description)
	}
	if got[0].Source != "Example" || got[0].PublishedAt != "2024-05-01T10:00:00Z" {
		t.Errorf("Unexpected metadata %+v", got[0])
	}
	if got[1].Description != "" {
		t.Errorf("Expected empty description, got %q", got[1].Description)
	}
}

func TestFetchCapsArticles(t *testing.T) {
	f := newTestFetcher(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("max") != "2" {
			t.Errorf("Expected max=2, got %q", r.URL.Query().Get("max"))
		}
		w.Write([]byte(`{"totalArticles":3,"articles":[
			{"title":"one","url":"https://example.com/1","source":{"name":"A"}},
			{"title":"two","url":"https://example.com/2","source":{"name":"A"}},
			{"title":"three","url":"https://example.com/3","source":{"name":"A"}}
		]}`))
	})
	f.max = 2

	got := f.Fetch(context.Background(), "TCS.NS")
	if len(got) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(got))
	}
	if got[1].Title != "two" {
		t.Errorf("Expected the first articles to be kept, got %q", got[1].Title)
	}
}

func TestFetchMissingCredential(t *testing.T) {
	called := false
	f := newTestFetcher(t, "", func(w http.ResponseWriter, r *http.Request) { called = true })

	got := f.Fetch(context.Background(), "TCS.NS")
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
	if called {
		t.Error("Provider must not be called without a credential")
	}
}

func TestFetchProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"forbidden", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"errors":["You did not provide an API key."]}`, http.StatusForbidden)
		}},
		{"garbage", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not json")) }},
		{"no articles", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"totalArticles":0,"articles":[]}`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newTestFetcher(t, "secret", tt.handler).Fetch(context.Background(), "TCS.NS")
			if got == nil || len(got) != 0 {
				t.Errorf("Expected empty slice, got %#v", got)
			}
		})
	}
}

func TestFetchScrapeFallback(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body>
			<article><h3>TCS shares rise</h3><a href="./articles/abc">open</a><time datetime="2024-05-02T08:00:00Z"></time></article>
			<article><h3></h3><a href="./articles/skip">no title</a></article>
		</body></html>`))
	}))
	defer page.Close()

	f := newTestFetcher(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalArticles":0,"articles":[]}`))
	}).WithFallback(NewScraper(page.URL, time.Second))

	got := f.Fetch(context.Background(), "TCS.NS")
	if len(got) != 1 {
		t.Fatalf("Expected 1 scraped article, got %d", len(got))
	}
	if got[0].Title != "TCS shares rise" || got[0].URL != page.URL+"/articles/abc" || got[0].Source != "GoogleNews" {
		t.Errorf("Unexpected scraped article %+v", got[0])
	}
}

func TestCleanHTML(t *testing.T) {
	cases := map[string]string{
		"plain text":                       "plain text",
		"  padded  ":                       "padded",
		"<div>a<br/>b</div>":               "ab",
		"Profit &amp; loss":                "Profit & loss",
		"<p>line one</p>\n<p>line two</p>": "line one line two",
	}
	for in, want := range cases {
		if got := cleanHTML(in); got != want {
			t.Errorf("cleanHTML(%q) = %q, want %q", in, got, want)
		}
	}
}
