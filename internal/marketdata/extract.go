package marketdata

import (
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"llm-stock-advisor/internal/types"
)

// infoPaths lists, per consumed info key, the JSONPath candidates tried in
// order against one quoteSummary result.
var infoPaths = []struct {
	key   string
	paths []string
}{
	{types.InfoCurrentPrice, []string{"$.financialData.currentPrice.raw", "$.price.regularMarketPrice.raw"}},
	{types.InfoTrailingPE, []string{"$.summaryDetail.trailingPE.raw", "$.defaultKeyStatistics.trailingPE.raw"}},
	{types.InfoFiftyTwoWeekHigh, []string{"$.summaryDetail.fiftyTwoWeekHigh.raw"}},
	{types.InfoFiftyTwoWeekLow, []string{"$.summaryDetail.fiftyTwoWeekLow.raw"}},
	{types.InfoMarketCap, []string{"$.price.marketCap.raw", "$.summaryDetail.marketCap.raw"}},
	{types.InfoLongName, []string{"$.price.longName", "$.price.shortName"}},
	{types.InfoSymbol, []string{"$.price.symbol"}},
	{types.InfoSector, []string{"$.assetProfile.sector"}},
	{types.InfoIndustry, []string{"$.assetProfile.industry"}},
	{types.InfoDividendYield, []string{"$.summaryDetail.dividendYield.raw"}},
	{types.InfoBeta, []string{"$.summaryDetail.beta.raw", "$.defaultKeyStatistics.beta.raw"}},
}

// flattenModules are copied into Info as extra context for the prompt.
var flattenModules = []string{"price", "summaryDetail", "financialData", "defaultKeyStatistics"}

// statementItems are the income statement rows, in display order.
var statementItems = []struct {
	field string
	label string
}{
	{"totalRevenue", "Total Revenue"},
	{"costOfRevenue", "Cost Of Revenue"},
	{"grossProfit", "Gross Profit"},
	{"totalOperatingExpenses", "Total Operating Expenses"},
	{"operatingIncome", "Operating Income"},
	{"ebit", "EBIT"},
	{"interestExpense", "Interest Expense"},
	{"incomeBeforeTax", "Income Before Tax"},
	{"incomeTaxExpense", "Income Tax Expense"},
	{"netIncome", "Net Income"},
}

// lookup returns the first path that resolves to a non-nil scalar.
func lookup(obj any, paths ...string) (any, bool) {
	for _, p := range paths {
		v, err := jsonpath.Get(p, obj)
		if err != nil {
			continue
		}
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				continue
			}
			v = list[0]
		}
		switch t := v.(type) {
		case float64, bool:
			return t, true
		case string:
			if t != "" {
				return t, true
			}
		}
	}
	return nil, false
}

func number(v any, ok bool) types.Number {
	if f, isFloat := v.(float64); ok && isFloat {
		return types.NumberFrom(f)
	}
	return types.Number{}
}

// buildSnapshot maps one quoteSummary result onto a Snapshot.
func buildSnapshot(symbol string, result any) types.Snapshot {
	snap := types.EmptySnapshot(symbol)

	if root, ok := result.(map[string]any); ok {
		for _, module := range flattenModules {
			fields, _ := root[module].(map[string]any)
			for k, v := range fields {
				if val, ok := flatValue(v); ok {
					snap.Info[k] = val
				}
			}
		}
	}
	for _, ip := range infoPaths {
		if v, ok := lookup(result, ip.paths...); ok {
			snap.Info[ip.key] = v
		} else {
			delete(snap.Info, ip.key)
		}
	}

	snap.CurrentPrice = infoNumber(snap.Info, types.InfoCurrentPrice)
	snap.PERatio = infoNumber(snap.Info, types.InfoTrailingPE)
	snap.FiftyTwoWeekHigh = infoNumber(snap.Info, types.InfoFiftyTwoWeekHigh)
	snap.FiftyTwoWeekLow = infoNumber(snap.Info, types.InfoFiftyTwoWeekLow)
	snap.MarketCap = infoNumber(snap.Info, types.InfoMarketCap)
	snap.Financials = buildStatement(result)
	return snap
}

func infoNumber(info map[string]any, key string) types.Number {
	v, ok := info[key]
	return number(v, ok)
}

// flatValue unwraps Yahoo's {"raw": x, "fmt": "..."} cells and keeps scalars.
func flatValue(v any) (any, bool) {
	switch t := v.(type) {
	case float64, bool:
		return t, true
	case string:
		return t, t != ""
	case map[string]any:
		if raw, ok := t["raw"]; ok {
			return flatValue(raw)
		}
	}
	return nil, false
}

func buildStatement(result any) types.Statement {
	v, err := jsonpath.Get("$.incomeStatementHistory.incomeStatementHistory", result)
	if err != nil {
		return types.Statement{}
	}
	periods, _ := v.([]any)
	if len(periods) == 0 {
		return types.Statement{}
	}

	var st types.Statement
	for _, p := range periods {
		st.Columns = append(st.Columns, periodLabel(p))
	}
	for _, item := range statementItems {
		row := types.StatementRow{Item: item.label, Values: make([]types.Number, len(periods))}
		seen := false
		for i, p := range periods {
			row.Values[i] = number(lookup(p, "$."+item.field+".raw"))
			seen = seen || row.Values[i].Valid()
		}
		if seen {
			st.Rows = append(st.Rows, row)
		}
	}
	return st
}

func periodLabel(period any) string {
	if s, ok := lookup(period, "$.endDate.fmt"); ok {
		if str, isStr := s.(string); isStr {
			return str
		}
	}
	if raw, ok := lookup(period, "$.endDate.raw"); ok {
		if secs, isFloat := raw.(float64); isFloat {
			return time.Unix(int64(secs), 0).UTC().Format("2006-01-02")
		}
	}
	return types.NA
}

// stripSuffix returns the ticker without its exchange suffix.
func stripSuffix(qualified string) string {
	base, _, _ := strings.Cut(qualified, ".")
	return base
}
