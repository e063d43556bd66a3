package marketdata

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"llm-stock-advisor/internal/api"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
	}{
		{fmt.Errorf("get: %w", context.DeadlineExceeded), KindTimeout},
		{&api.StatusError{StatusCode: 404}, KindNotFound},
		{fmt.Errorf("all 3 retry attempts failed: %w", &api.StatusError{StatusCode: 503}), KindHTTP},
		{errors.New("connection refused"), KindNetwork},
		{&FetchError{Kind: KindMalformed, Err: errors.New("bad")}, KindMalformed},
	}
	for _, tt := range tests {
		if got := classify("TCS.NS", tt.err); got.Kind != tt.kind {
			t.Errorf("classify(%v) = %s, want %s", tt.err, got.Kind, tt.kind)
		}
	}
}

func TestFetchErrorSentinels(t *testing.T) {
	err := fmt.Errorf("pipeline: %w", &FetchError{Kind: KindTimeout, Symbol: "TCS.NS", Err: context.DeadlineExceeded})
	if !errors.Is(err, ErrTimeout) || errors.Is(err, ErrNotFound) {
		t.Error("Expected only ErrTimeout to match")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("Expected wrapped cause to remain reachable")
	}
}
