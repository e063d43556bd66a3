package types

// Info keys consumed from the market-data provider.
const (
	InfoCurrentPrice     = "currentPrice"
	InfoTrailingPE       = "trailingPE"
	InfoFiftyTwoWeekHigh = "fiftyTwoWeekHigh"
	InfoFiftyTwoWeekLow  = "fiftyTwoWeekLow"
	InfoMarketCap        = "marketCap"
	InfoLongName         = "longName"
	InfoSymbol           = "symbol"
	InfoSector           = "sector"
	InfoIndustry         = "industry"
	InfoDividendYield    = "dividendYield"
	InfoBeta             = "beta"
)

// Resolution is the outcome of mapping a user ticker to a provider symbol.
type Resolution struct {
	Input     string `json:"input"`
	Base      string `json:"base"`
	Qualified string `json:"qualified"`
	// Confirmed is false when the exchange could not vouch for the symbol.
	Confirmed bool `json:"confirmed"`
}

// Snapshot is a point-in-time bundle of company info and statement data.
type Snapshot struct {
	Symbol           string         `json:"symbol"`
	Info             map[string]any `json:"info"`
	Financials       Statement      `json:"financials"`
	CurrentPrice     Number         `json:"current_price"`
	PERatio          Number         `json:"pe_ratio"`
	FiftyTwoWeekHigh Number         `json:"52_week_high"`
	FiftyTwoWeekLow  Number         `json:"52_week_low"`
	MarketCap        Number         `json:"market_cap"`
}

// EmptySnapshot is the all-unavailable snapshot used when the provider fails.
func EmptySnapshot(symbol string) Snapshot {
	return Snapshot{Symbol: symbol, Info: map[string]any{}}
}

// InfoString renders an info value, or "N/A" when absent.
func (s Snapshot) InfoString(key string) string {
	v, ok := s.Info[key]
	if !ok || v == nil {
		return NA
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return NA
		}
		return t
	case float64:
		return NumberFrom(t).String()
	default:
		return NA
	}
}

// CompanyName returns longName, falling back to the symbol.
func (s Snapshot) CompanyName() string {
	if name := s.InfoString(InfoLongName); name != NA {
		return name
	}
	return s.Symbol
}
