package symbol

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"llm-stock-advisor/internal/api"
	"llm-stock-advisor/internal/interfaces"
)

// NSE starts refusing clients that hit it more than a few times a second.
const (
	nseBurst    = 3
	nseInterval = 400 * time.Millisecond
)

// NSEValidator asks NSE India's quote API whether a symbol is listed.
type NSEValidator struct {
	client *api.Client
}

var _ interfaces.Validator = (*NSEValidator)(nil)

func NewNSEValidator(baseURL string, timeout time.Duration) *NSEValidator {
	return &NSEValidator{
		client: api.NewClient(
			api.WithBaseURL(strings.TrimRight(baseURL, "/")),
			api.WithHeaders(api.NSEHeaders()),
			api.WithCookieJar(),
			api.WithTimeout(timeout),
			api.WithRateLimit(nseBurst, nseInterval),
			api.WithLogging(true),
		),
	}
}

// Validate reports true when the quote response carries an "info" object.
// NSE rejects API calls without the session cookies set on its home page, so
// that page is requested first; its failure is ignored.
func (v *NSEValidator) Validate(ctx context.Context, symbol string) (bool, error) {
	_, _ = v.client.GET(ctx, "/")

	resp, err := v.client.GET(ctx, "/api/quote-equity?symbol="+url.QueryEscape(symbol))
	if err != nil {
		if api.StatusCode(err) == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("nse quote %s: %w", symbol, err)
	}

	var body map[string]any
	if err := resp.ParseJSON(&body); err != nil {
		return false, err
	}
	info, ok := body["info"].(map[string]any)
	return ok && info != nil, nil
}

// TableValidator confirms symbols from a fixed list, for offline runs.
type TableValidator struct {
	known map[string]struct{}
}

var _ interfaces.Validator = (*TableValidator)(nil)

var errEmptyTable = errors.New("symbol table is empty")

func NewTableValidator(symbols []string) *TableValidator {
	known := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		if b := Base(s); b != "" {
			known[b] = struct{}{}
		}
	}
	return &TableValidator{known: known}
}

// Validate returns an error for an empty table so that the answer is "unknown".
func (v *TableValidator) Validate(_ context.Context, symbol string) (bool, error) {
	if len(v.known) == 0 {
		return false, errEmptyTable
	}
	_, ok := v.known[Base(symbol)]
	return ok, nil
}
