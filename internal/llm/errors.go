package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnexpectedFormat matches responses that carry no generated text.
var ErrUnexpectedFormat = errors.New("unexpected response format")

// APIError covers transport failures: network errors, timeouts and non-2xx statuses.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s returned HTTP %d: %s", e.Provider, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s returned HTTP %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return e.Provider + " request failed"
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// Timeout reports whether the call ran out of time.
func (e *APIError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// FormatError carries the raw payload of a response without usable content.
type FormatError struct {
	Raw string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnexpectedFormat, e.Raw)
}

func (e *FormatError) Is(target error) bool { return target == ErrUnexpectedFormat }

// RawResponse returns the payload attached to a format error, or "".
func RawResponse(err error) string {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Raw
	}
	return ""
}

// IsAPIError reports whether err is a transport-level failure.
func IsAPIError(err error) bool {
	var ae *APIError
	return errors.As(err, &ae)
}
