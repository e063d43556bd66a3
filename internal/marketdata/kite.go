package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"time"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/types"
)

// KiteQuotes reads last traded prices from Zerodha Kite Connect.
type KiteQuotes struct {
	kc       *kiteconnect.Client
	exchange string
}

var _ interfaces.QuoteSource = (*KiteQuotes)(nil)

func NewKiteQuotes(apiKey, accessToken, exchange string, timeout time.Duration) *KiteQuotes {
	kc := kiteconnect.New(apiKey)
	kc.SetAccessToken(accessToken)
	kc.SetHTTPClient(&http.Client{Timeout: timeout})
	return &KiteQuotes{kc: kc, exchange: exchange}
}

// SetBaseURI points the client at another Kite host.
func (k *KiteQuotes) SetBaseURI(uri string) {
	k.kc.SetBaseURI(uri)
}

// LastPrice returns the LTP for symbol on the configured exchange. The Kite
// client takes no context, so ctx only short-circuits an already expired call.
func (k *KiteQuotes) LastPrice(ctx context.Context, symbol string) (types.Number, error) {
	if err := ctx.Err(); err != nil {
		return types.Number{}, err
	}
	instrument := k.exchange + ":" + symbol
	ltp, err := k.kc.GetLTP(instrument)
	if err != nil {
		return types.Number{}, fmt.Errorf("kite ltp %s: %w", instrument, err)
	}
	q, ok := ltp[instrument]
	if !ok {
		return types.Number{}, fmt.Errorf("kite ltp %s: instrument missing from response", instrument)
	}
	return types.NumberFrom(q.LastPrice), nil
}
