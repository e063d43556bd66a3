package types

import (
	"strings"
	"text/tabwriter"
)

// Statement is a financial statement table: one column per reporting period,
// one row per line item.
type Statement struct {
	Columns []string       `json:"columns"`
	Rows    []StatementRow `json:"rows"`
}

type StatementRow struct {
	Item   string   `json:"item"`
	Values []Number `json:"values"`
}

func (s Statement) Empty() bool {
	return len(s.Rows) == 0
}

// Value returns the cell for item and column, unavailable when missing.
func (s Statement) Value(item, column string) Number {
	col := -1
	for i, c := range s.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return Number{}
	}
	for _, r := range s.Rows {
		if r.Item == item && col < len(r.Values) {
			return r.Values[col]
		}
	}
	return Number{}
}

// String renders an aligned plain-text table, or "Empty statement".
func (s Statement) String() string {
	if s.Empty() {
		return "Empty statement"
	}
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	w.Write([]byte("\t" + strings.Join(s.Columns, "\t") + "\t\n"))
	for _, r := range s.Rows {
		cells := make([]string, len(s.Columns))
		for i := range cells {
			cells[i] = NA
			if i < len(r.Values) {
				cells[i] = r.Values[i].String()
			}
		}
		w.Write([]byte(r.Item + "\t" + strings.Join(cells, "\t") + "\t\n"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}
