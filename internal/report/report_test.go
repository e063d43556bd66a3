package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/glamour"

	"llm-stock-advisor/internal/types"
)

func num(t *testing.T, s string) types.Number {
	t.Helper()
	n, err := types.ParseNumber(s)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"rupees", Rupees(num(t, "3500.5")), "₹3,500.50"},
		{"rupees rounds", Rupees(num(t, "0.005")), "₹0.01"},
		{"rupees n/a", Rupees(types.Number{}), "N/A"},
		{"figure", Figure(num(t, "28.437")), "28.44"},
		{"figure negative", Figure(num(t, "-1200")), "-1,200.00"},
		{"billions", Billions(num(t, "12650000000000")), "12,650.00 B"},
		{"billions n/a", Billions(types.Number{}), "N/A"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func sampleReport(t *testing.T) *types.Report {
	return &types.Report{
		Resolution: types.Resolution{Base: "TCS", Qualified: "TCS.NS", Confirmed: true},
		Snapshot: types.Snapshot{
			Symbol: "TCS.NS",
			Info: map[string]any{
				types.InfoLongName: "Tata Consultancy Services",
				types.InfoSymbol:   "TCS.NS",
				types.InfoSector:   "Technology",
			},
			CurrentPrice: num(t, "3500"),
			PERatio:      num(t, "28.4"),
			MarketCap:    num(t, "12650000000000"),
			Financials: types.Statement{
				Columns: []string{"2024-03-31"},
				Rows:    []types.StatementRow{{Item: "Total Revenue", Values: []types.Number{num(t, "2408930000000")}}},
			},
		},
		Articles: []types.Article{
			{Title: "TCS wins deal", Description: "Large contract", URL: "https://example.com/a"},
			{Title: "No description"},
		},
		Analysis: types.Analysis{
			TechnicalReason: "P/E is reasonable.",
			NewsReason:      "Deal wins.",
			Summary:         "Solid outlook.",
		},
		Decision: "BUY - strong growth",
		Label:    types.Buy,
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleReport(t))
	for _, want := range []string{
		"# 📈 Tata Consultancy Services (TCS.NS)",
		"## 👍 Buy Recommendation",
		"BUY - strong growth",
		"| ₹3,500.00 | 28.40 | N/A | N/A | 12,650.00 B |",
		"| Sector | Technology |",
		"| Industry | N/A |",
		"| Total Revenue | 2,408,930,000,000.00 |",
		"**1. TCS wins deal**",
		"[🔗 Read more](https://example.com/a)",
		"No summary available.",
		"[🔗 Read more](#)",
		"Solid outlook.",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestMarkdownRawCompanyData(t *testing.T) {
	md := Markdown(sampleReport(t))
	i := strings.Index(md, "### 📦 Raw Company Data")
	if i < 0 {
		t.Fatalf("Expected raw company data section\n%s", md)
	}
	raw := md[i:]
	want := "```json\n{\n  \"longName\": \"Tata Consultancy Services\",\n  \"sector\": \"Technology\",\n  \"symbol\": \"TCS.NS\"\n}\n```"
	if !strings.HasPrefix(strings.TrimPrefix(raw, "### 📦 Raw Company Data\n\n"), want) {
		t.Errorf("Expected sorted JSON dump, got\n%s", raw)
	}

	md = Markdown(&types.Report{Snapshot: types.EmptySnapshot("XYZ.NS"), Label: types.Hold})
	if !strings.Contains(md, "_No company data available._") {
		t.Errorf("Expected placeholder for empty company data\n%s", md)
	}
}

func TestMarkdownDegraded(t *testing.T) {
	r := &types.Report{
		Resolution: types.Resolution{Base: "XYZ", Qualified: "XYZ.NS"},
		Snapshot:   types.EmptySnapshot("XYZ.NS"),
		Analysis:   types.EmptyAnalysis(),
		Decision:   "API Error: timeout",
		Label:      types.Hold,
		Warnings:   []string{"no news articles found"},
	}
	md := Markdown(r)
	for _, want := range []string{
		"## 🤝 Hold Recommendation",
		"> ⚠️ no news articles found",
		"_No statement data available._",
		"No recent news articles found for this stock.",
		"| N/A | N/A | N/A | N/A | N/A |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, md)
		}
	}
}

func TestMarkdownLimitsNews(t *testing.T) {
	r := sampleReport(t)
	r.Articles = nil
	for i := 0; i < 8; i++ {
		r.Articles = append(r.Articles, types.Article{Title: "story"})
	}
	md := Markdown(r)
	if !strings.Contains(md, "**5. story**") || strings.Contains(md, "**6. story**") {
		t.Errorf("Expected exactly five articles\n%s", md)
	}
}

func TestPortfolio(t *testing.T) {
	entries := []types.Entry{
		{Time: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local), Stock: "TCS", Price: num(t, "3500"), Decision: "BUY"},
		{Time: time.Date(2024, 5, 2, 10, 0, 0, 0, time.Local), Stock: "INFY", Decision: "Hold|x"},
	}
	md := Portfolio(entries)
	if !strings.Contains(md, "| 2024-05-01 10:00:00 | TCS | ₹3,500.00 | BUY |") {
		t.Errorf("Unexpected TCS row\n%s", md)
	}
	if !strings.Contains(md, `| INFY | N/A | Hold\|x |`) {
		t.Errorf("Expected escaped pipe and N/A price\n%s", md)
	}
	if !strings.Contains(Portfolio(nil), "No decisions recorded yet") {
		t.Error("Expected empty portfolio message")
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, "TCS <report>", Markdown(sampleReport(t))); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"<title>TCS &lt;report&gt;</title>", "<table>", "<h2>", "Buy Recommendation", `<a href="https://example.com/a">`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal(Markdown(sampleReport(t)), glamour.WithStandardStyle("notty"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Buy Recommendation") || !strings.Contains(out, "Solid outlook.") {
		t.Errorf("Unexpected terminal output\n%s", out)
	}
}
