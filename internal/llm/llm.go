// Package llm holds what every text-generation provider shares: call options
// and the error taxonomy that callers map to degraded output.
package llm

import (
	"context"
	"time"
)

// Options tune one Generate call.
type Options struct {
	// Title identifies the calling feature to the provider (OpenRouter's X-Title).
	Title   string
	Timeout time.Duration
}

type titleKey struct{}

// WithTitle stores the attribution title on ctx so transports can read it.
func WithTitle(ctx context.Context, title string) context.Context {
	return context.WithValue(ctx, titleKey{}, title)
}

// TitleFrom returns the title stored by WithTitle, or "".
func TitleFrom(ctx context.Context) string {
	t, _ := ctx.Value(titleKey{}).(string)
	return t
}

// Bound applies the call timeout, if any, to ctx.
func (o Options) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.Title != "" {
		ctx = WithTitle(ctx, o.Title)
	}
	if o.Timeout > 0 {
		return context.WithTimeout(ctx, o.Timeout)
	}
	return context.WithCancel(ctx)
}
