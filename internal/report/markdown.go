// Package report renders analysis results as Markdown, terminal output or HTML.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"llm-stock-advisor/internal/types"
)

// MaxArticles is how many news items the dashboard lists.
const MaxArticles = 5

var banners = map[types.Label]string{
	types.Buy:  "👍 Buy Recommendation",
	types.Sell: "👎 Sell Recommendation",
	types.Hold: "🤝 Hold Recommendation",
}

// Markdown builds the full dashboard for one report.
func Markdown(r *types.Report) string {
	var b strings.Builder
	snap := r.Snapshot

	fmt.Fprintf(&b, "# 📈 %s (%s)\n\n", snap.CompanyName(), r.Resolution.Qualified)
	fmt.Fprintf(&b, "## %s\n\n", banners[r.Label])
	fmt.Fprintf(&b, "%s\n\n", paragraph(r.Decision))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "> ⚠️ %s\n\n", w)
	}

	b.WriteString("### 🧾 Reason for Recommendation\n\n")
	fmt.Fprintf(&b, "**📈 Technical Analysis-Based Reason**\n\n%s\n\n", paragraph(r.Analysis.TechnicalReason))
	fmt.Fprintf(&b, "**📰 News-Based Reason**\n\n%s\n\n", paragraph(r.Analysis.NewsReason))

	b.WriteString("### 📌 Key Financial Statistics\n\n")
	b.WriteString("| Current Price | P/E Ratio | 52W High | 52W Low | Market Cap |\n")
	b.WriteString("|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n\n",
		Rupees(snap.CurrentPrice), Figure(snap.PERatio),
		Rupees(snap.FiftyTwoWeekHigh), Rupees(snap.FiftyTwoWeekLow), Billions(snap.MarketCap))

	writeOverview(&b, snap)
	writeStatement(&b, snap.Financials)
	writeRawInfo(&b, snap.Info)

	fmt.Fprintf(&b, "### 🧠 AI Powered Analysis\n\n%s\n\n", paragraph(r.Analysis.Summary))

	writeNews(&b, r.Articles)
	return b.String()
}

func writeOverview(b *strings.Builder, snap types.Snapshot) {
	rows := [][2]string{
		{"Symbol", snap.InfoString(types.InfoSymbol)},
		{"Company Name", snap.InfoString(types.InfoLongName)},
		{"Sector", snap.InfoString(types.InfoSector)},
		{"Industry", snap.InfoString(types.InfoIndustry)},
		{"Current Price (₹)", Rupees(snap.CurrentPrice)},
		{"P/E Ratio", Figure(snap.PERatio)},
		{"52-Week Low (₹)", Rupees(snap.FiftyTwoWeekLow)},
		{"52-Week High (₹)", Rupees(snap.FiftyTwoWeekHigh)},
		{"Market Cap", Billions(snap.MarketCap)},
		{"Dividend Yield", snap.InfoString(types.InfoDividendYield)},
		{"Beta", snap.InfoString(types.InfoBeta)},
	}
	b.WriteString("### 📊 Financial Overview\n\n| Metric | Value |\n|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", r[0], cell(r[1]))
	}
	b.WriteString("\n")
}

func writeStatement(b *strings.Builder, s types.Statement) {
	b.WriteString("### 🧾 Company Financial Statements\n\n")
	if s.Empty() {
		b.WriteString("_No statement data available._\n\n")
		return
	}
	b.WriteString("| Item | " + strings.Join(s.Columns, " | ") + " |\n")
	b.WriteString("|---" + strings.Repeat("|---", len(s.Columns)) + "|\n")
	for _, row := range s.Rows {
		cells := make([]string, len(s.Columns))
		for i := range cells {
			cells[i] = types.NA
			if i < len(row.Values) {
				cells[i] = Figure(row.Values[i])
			}
		}
		fmt.Fprintf(b, "| %s | %s |\n", cell(row.Item), strings.Join(cells, " | "))
	}
	b.WriteString("\n")
}

// writeRawInfo dumps the provider fields as JSON with keys sorted.
func writeRawInfo(b *strings.Builder, info map[string]any) {
	b.WriteString("### 📦 Raw Company Data\n\n")
	if len(info) == 0 {
		b.WriteString("_No company data available._\n\n")
		return
	}
	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		fmt.Fprintf(b, "_Company data could not be encoded: %v_\n\n", err)
		return
	}
	fmt.Fprintf(b, "```json\n%s\n```\n\n", raw)
}

func writeNews(b *strings.Builder, articles []types.Article) {
	b.WriteString("### 📰 Latest News\n\n")
	if len(articles) == 0 {
		b.WriteString("> No recent news articles found for this stock.\n")
		return
	}
	for i, a := range articles {
		if i == MaxArticles {
			break
		}
		desc := a.Description
		if desc == "" {
			desc = "No summary available."
		}
		link := a.URL
		if link == "" {
			link = "#"
		}
		fmt.Fprintf(b, "**%d. %s**\n\n%s\n\n[🔗 Read more](%s)\n\n---\n\n", i+1, a.Title, paragraph(desc), link)
	}
}

// Portfolio renders ledger rows as a table in the order given.
func Portfolio(entries []types.Entry) string {
	var b strings.Builder
	b.WriteString("## 📋 Portfolio Tracker\n\n")
	if len(entries) == 0 {
		b.WriteString("_No decisions recorded yet._\n")
		return b.String()
	}
	b.WriteString("| DateTime | Stock | Price | Decision |\n|---|---|---|---|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			e.Time.Local().Format(types.TimeLayout), cell(e.Stock), Rupees(e.Price), cell(e.Decision))
	}
	return b.String()
}

// paragraph keeps model text from turning into headings or an empty block.
func paragraph(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.NA
	}
	return s
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
