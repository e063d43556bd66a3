// Package gemini generates text with Google's Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/trace"
)

const (
	provider     = "gemini"
	DefaultModel = "gemini-2.0-flash"
)

type Client struct {
	api         *genai.Client
	model       string
	temperature float32
}

var _ interfaces.Generator = (*Client)(nil)

// New creates a Gemini client. OpenRouter-style model ids ("vendor/model")
// are replaced by DefaultModel. baseURL overrides the API host when set.
func New(ctx context.Context, cfg *store.Config, apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY missing")
	}
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	api, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}

	model := cfg.LLM.Model
	if model == "" || strings.Contains(model, "/") {
		model = DefaultModel
	}
	return &Client{api: api, model: model, temperature: cfg.LLM.Temperature}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	ctx, cancel := opts.Bound(ctx)
	defer cancel()

	ctx, span := trace.StartSpan(ctx, "gemini-api-call")
	defer span.End()

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.APIError{Provider: provider, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return "", &llm.APIError{Provider: provider, Err: err}
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		raw, _ := json.Marshal(resp)
		return "", &llm.FormatError{Raw: string(raw)}
	}
	return text, nil
}
