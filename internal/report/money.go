package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"llm-stock-advisor/internal/types"
)

const currency = "INR"

// plain groups thousands with two decimals and no currency sign.
var plain = money.NewFormatter(2, ".", ",", "", "1")

var hundred = decimal.NewFromInt(100)

func minorUnits(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// Rupees formats n as an INR amount, e.g. ₹3,500.50.
func Rupees(n types.Number) string {
	if !n.Valid() {
		return types.NA
	}
	return money.New(minorUnits(n.Decimal()), currency).Display()
}

// Figure formats n with thousands separators and two decimals.
func Figure(n types.Number) string {
	if !n.Valid() {
		return types.NA
	}
	return plain.Format(minorUnits(n.Decimal()))
}

// Billions renders a market capitalisation as "12,650.00 B".
func Billions(n types.Number) string {
	if !n.Valid() {
		return types.NA
	}
	return Figure(types.NumberFromDecimal(n.Decimal().Div(decimal.NewFromInt(1_000_000_000)))) + " B"
}
