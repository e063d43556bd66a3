package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NA is the sentinel rendered wherever a value is unavailable.
const NA = "N/A"

// Number is a decimal figure that may be unavailable.
type Number struct {
	value decimal.Decimal
	valid bool
	text  string
}

// NumberFrom wraps a float. NaN and infinities are unavailable.
func NumberFrom(f float64) Number {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}
	}
	return Number{value: decimal.NewFromFloat(f), valid: true}
}

// NumberFromDecimal wraps an exact decimal.
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{value: d, valid: true}
}

// ParseNumber reads a figure from text. Blank text and "N/A" are unavailable.
// The original text is kept so String reproduces it exactly.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, NA) {
		return Number{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, fmt.Errorf("parse number %q: %w", s, err)
	}
	return Number{value: d, valid: true, text: s}, nil
}

func (n Number) Valid() bool { return n.valid }

func (n Number) Decimal() decimal.Decimal { return n.value }

func (n Number) Float64() (float64, bool) {
	if !n.valid {
		return 0, false
	}
	f, _ := n.value.Float64()
	return f, true
}

func (n Number) String() string {
	if !n.valid {
		return NA
	}
	if n.text != "" {
		return n.text
	}
	return n.value.String()
}

// Equal compares values; two unavailable numbers are equal.
func (n Number) Equal(o Number) bool {
	if n.valid != o.valid {
		return false
	}
	return !n.valid || n.value.Equal(o.value)
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return json.Marshal(NA)
	}
	return []byte(n.value.String()), nil
}

func (n *Number) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}
	parsed, err := ParseNumber(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
