package analysis

import (
	"fmt"
	"sort"
	"strings"

	"llm-stock-advisor/internal/types"
)

const promptTemplate = `You are a financial analyst AI. You are given the latest news and financial data of a company.

News Headlines:
%s

Financial Summary:
Company Info: %s
Key Financials: %s

Based on this information, provide the following:

1. Technical Analysis-Based Reasoning (consider P/E ratio, price trends, 52-week high/low, etc.)
2. News-Based Reasoning (based on recent events, investor sentiment, and news tone)
3. Final Summary/Recommendation (summarize your judgment in 2-3 lines)

Format the output as:

Technical Reasoning:
...

News-Based Reasoning:
...

Summary:
...
`

// BuildPrompt embeds every titled article, the info mapping and the statement.
func BuildPrompt(articles []types.Article, snap types.Snapshot) string {
	var news []string
	for _, a := range articles {
		if a.Title == "" {
			continue
		}
		news = append(news, fmt.Sprintf("- %s: %s", a.Title, a.Description))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(news, "\n"), FormatInfo(snap.Info), snap.Financials.String())
}

// FormatInfo renders the info mapping with keys sorted.
func FormatInfo(info map[string]any) string {
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := info[k]
		if f, ok := v.(float64); ok {
			v = types.NumberFrom(f)
		}
		parts = append(parts, fmt.Sprintf("%s: %v", k, v))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
