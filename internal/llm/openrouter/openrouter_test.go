package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/store"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := store.Default()
	cfg.LLM.BaseURL = srv.URL
	c, err := New(cfg, "test-key")
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestGenerateSendsAttributionAndModel(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Missing bearer token")
		}
		if r.Header.Get("X-Title") != "Stock Analyzer" || r.Header.Get("HTTP-Referer") != "http://localhost:8080" {
			t.Errorf("Missing attribution headers: %v", r.Header)
		}
		var body struct {
			Model       string  `json:"model"`
			Temperature float32 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body.Model != "mistralai/mistral-7b-instruct" || body.Temperature != 0.7 {
			t.Errorf("Unexpected model/temperature %s/%v", body.Model, body.Temperature)
		}
		if len(body.Messages) != 1 || body.Messages[0].Role != "user" || body.Messages[0].Content != "hello" {
			t.Errorf("Unexpected messages %+v", body.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","choices":[{"index":0,"message":{"role":"assistant","content":"  Summary: fine  "}}]}`))
	})

	out, err := c.Generate(context.Background(), "hello", llm.Options{Title: "Stock Analyzer", Timeout: time.Second})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "Summary: fine" {
		t.Errorf("Expected trimmed content, got %q", out)
	}
}

func TestGenerateHTTPErrorIsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"No auth credentials found","code":401}}`))
	})

	_, err := c.Generate(context.Background(), "hello", llm.Options{})
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", apiErr.StatusCode)
	}
}

func TestGenerateNoChoicesIsFormatError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","choices":[]}`))
	})

	_, err := c.Generate(context.Background(), "hello", llm.Options{})
	if !errors.Is(err, llm.ErrUnexpectedFormat) {
		t.Fatalf("Expected format error, got %v", err)
	}
	if llm.RawResponse(err) == "" {
		t.Error("Expected raw payload to be attached")
	}
}

func TestGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	_, err := c.Generate(context.Background(), "hello", llm.Options{Timeout: 20 * time.Millisecond})
	var apiErr *llm.APIError
	if !errors.As(err, &apiErr) || !apiErr.Timeout() {
		t.Errorf("Expected timeout APIError, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(store.Default(), ""); err == nil {
		t.Error("Expected error for missing key")
	}
}
