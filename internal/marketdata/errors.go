package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"llm-stock-advisor/internal/api"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindHTTP
	KindMalformed
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	case KindNotFound:
		return "not found"
	default:
		return "network"
	}
}

var (
	ErrTimeout   = errors.New("market data request timed out")
	ErrMalformed = errors.New("market data response malformed")
	ErrNotFound  = errors.New("symbol not found by market data provider")
)

type FetchError struct {
	Kind   Kind
	Symbol string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("market data %s for %s: %v", e.Kind, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrMalformed:
		return e.Kind == KindMalformed
	case ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// classify maps a transport error onto a FetchError.
func classify(symbol string, err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}
	kind := KindNetwork
	var netErr net.Error
	switch code := api.StatusCode(err); {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
	case code == http.StatusNotFound:
		kind = KindNotFound
	case code != 0:
		kind = KindHTTP
	}
	return &FetchError{Kind: kind, Symbol: symbol, Err: err}
}
