// Package symbol turns user input into an exchange-qualified ticker.
package symbol

import (
	"context"
	"strings"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/logger"
	"llm-stock-advisor/internal/store"
	"llm-stock-advisor/internal/types"
)

type Resolver struct {
	validator interfaces.Validator
	suffix    string
}

var _ interfaces.Resolver = (*Resolver)(nil)

// NewResolver returns a resolver that appends suffix to every symbol.
// validator may be nil, in which case no symbol is ever confirmed.
func NewResolver(validator interfaces.Validator, suffix string) *Resolver {
	return &Resolver{validator: validator, suffix: suffix}
}

// Resolve never fails. The suffix is applied whether or not the exchange
// confirmed the symbol.
func (r *Resolver) Resolve(ctx context.Context, raw string) types.Resolution {
	base := Base(raw)
	res := types.Resolution{Input: raw, Base: base}
	if base == "" {
		return res
	}
	res.Qualified = base + r.suffix

	if r.validator != nil {
		ok, err := r.validator.Validate(ctx, base)
		if err != nil {
			logger.Debug(ctx, "Symbol validation unavailable", "symbol", base, "error", err)
		}
		res.Confirmed = ok && err == nil
	}
	if !res.Confirmed {
		logger.Warn(ctx, "Symbol not confirmed by exchange, assuming listed", "symbol", base, "qualified", res.Qualified)
	}
	return res
}

// Base uppercases and trims raw and removes a known exchange suffix.
func Base(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	for _, suffix := range store.Suffixes {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
