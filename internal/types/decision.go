package types

import "strings"

// Label is the coarse classification of a recommendation.
type Label string

const (
	Buy  Label = "Buy"
	Sell Label = "Sell"
	Hold Label = "Hold"
)

// Classify maps free text to a label with a case-insensitive substring match.
// SELL wins over BUY; Hold is the default.
func Classify(text string) Label {
	up := strings.ToUpper(text)
	switch {
	case strings.Contains(up, "SELL"):
		return Sell
	case strings.Contains(up, "BUY"):
		return Buy
	default:
		return Hold
	}
}

// LedgerToken is the decision value written to the ledger: the first word of
// the recommendation without trailing punctuation.
func LedgerToken(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return string(Classify(text))
	}
	tok := strings.TrimRight(fields[0], ".,:;!-*")
	tok = strings.TrimLeft(tok, "*#")
	if tok == "" {
		return string(Classify(text))
	}
	return tok
}
