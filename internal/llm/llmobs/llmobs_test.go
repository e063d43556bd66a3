package llmobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/logger"
)

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) Generate(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	return s.out, s.err
}

func TestWrapPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	if err := logger.InitWithConfig(logger.LogConfig{Level: "INFO", Format: "json", Output: &buf}); err != nil {
		t.Fatal(err)
	}

	out, err := Wrap(stubGenerator{out: "Summary: ok"}, "stub").Generate(context.Background(), "p", llm.Options{Title: "Stock Analyzer"})
	if err != nil || out != "Summary: ok" {
		t.Fatalf("Unexpected result %q %v", out, err)
	}
	if !strings.Contains(buf.String(), "Completion received") || !strings.Contains(buf.String(), "Stock Analyzer") {
		t.Errorf("Expected completion log, got %s", buf.String())
	}
}

func TestWrapPreservesErrorType(t *testing.T) {
	var buf bytes.Buffer
	if err := logger.InitWithConfig(logger.LogConfig{Level: "INFO", Format: "json", Output: &buf}); err != nil {
		t.Fatal(err)
	}

	want := &llm.FormatError{Raw: "{}"}
	_, err := Wrap(stubGenerator{err: want}, "stub").Generate(context.Background(), "p", llm.Options{})
	if !errors.Is(err, llm.ErrUnexpectedFormat) {
		t.Errorf("Expected format error to pass through, got %v", err)
	}
	if !strings.Contains(buf.String(), "Completion failed") {
		t.Errorf("Expected failure log, got %s", buf.String())
	}
}
