package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"llm-stock-advisor/internal/llm"
	"llm-stock-advisor/internal/store"
)

func TestSplitTickers(t *testing.T) {
	got := splitTickers([]string{"tcs,INFY", " ", "reliance.ns", ",,"})
	if strings.Join(got, "|") != "tcs|INFY|reliance.ns" {
		t.Errorf("Unexpected tickers %v", got)
	}
}

func TestEmitToFile(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		format string
		want   string
	}{
		{formatMarkdown, "# Title"},
		{formatTerminal, "# Title"},
		{formatHTML, "<h1>Title</h1>"},
	}
	for _, tt := range tests {
		p := filepath.Join(dir, "out."+tt.format)
		if err := emit(p, tt.format, "t", "# Title\n"); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		b, err := os.ReadFile(p)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(b), tt.want) {
			t.Errorf("%s: expected %q in %q", tt.format, tt.want, b)
		}
	}
}

func TestInitializeGeneratorFallsBackToNoop(t *testing.T) {
	cfg := store.Default()
	gen := initializeGenerator(t.Context(), cfg, store.Secrets{})
	if gen == nil {
		t.Fatal("Expected a generator")
	}
	out, err := gen.Generate(t.Context(), "prompt", llm.Options{})
	if err != nil || !strings.Contains(out, "Summary") {
		t.Errorf("Expected noop response, got %q %v", out, err)
	}
}

func TestInitializeResolverUsesKnownTable(t *testing.T) {
	cfg := store.Default()
	cfg.Symbols.Known = []string{"TCS"}
	res := initializeResolver(t.Context(), cfg).Resolve(t.Context(), "tcs")
	if !res.Confirmed || res.Qualified != "TCS.NS" {
		t.Errorf("Unexpected resolution %+v", res)
	}
}
