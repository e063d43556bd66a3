// Package openrouter generates text through OpenRouter's OpenAI-compatible
// chat completions endpoint.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/trace"
)

const provider = "openrouter"

type Client struct {
	api         *openai.Client
	model       string
	temperature float32
}

var _ interfaces.Generator = (*Client)(nil)

// New builds a client for the configured model. apiKey must be non-empty.
func New(cfg *store.Config, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OPENROUTER_API_KEY missing")
	}
	oc := openai.DefaultConfig(apiKey)
	oc.BaseURL = strings.TrimRight(cfg.LLM.BaseURL, "/")
	oc.HTTPClient = &http.Client{
		Transport: &attribution{base: http.DefaultTransport, referer: cfg.LLM.Referer},
	}
	return &Client{
		api:         openai.NewClientWithConfig(oc),
		model:       cfg.LLM.Model,
		temperature: cfg.LLM.Temperature,
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	ctx, cancel := opts.Bound(ctx)
	defer cancel()

	ctx, span := trace.StartSpan(ctx, "openrouter-api-call")
	defer span.End()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Choices) == 0 {
		raw, _ := json.Marshal(resp)
		return "", &llm.FormatError{Raw: string(raw)}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &llm.APIError{Provider: provider, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &llm.APIError{Provider: provider, StatusCode: reqErr.HTTPStatusCode, Err: reqErr.Err}
	}
	// A body go-openai cannot decode is still a 2xx without usable content.
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &llm.FormatError{Raw: err.Error()}
	}
	return &llm.APIError{Provider: provider, Err: err}
}

// attribution adds OpenRouter's app attribution headers to every request.
type attribution struct {
	base    http.RoundTripper
	referer string
}

func (a *attribution) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	if a.referer != "" {
		r.Header.Set("HTTP-Referer", a.referer)
	}
	if title := llm.TitleFrom(req.Context()); title != "" {
		r.Header.Set("X-Title", title)
	}
	return a.base.RoundTrip(r)
}
