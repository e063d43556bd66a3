package ledger

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"llm-stock-advisor/internal/types"
)

// row is the on-disk shape of an entry. Header order is the field order.
type row struct {
	DateTime string `csv:"DateTime"`
	Stock    string `csv:"Stock"`
	Price    string `csv:"Price"`
	Decision string `csv:"Decision"`
}

func toRow(e types.Entry) row {
	return row{
		DateTime: e.Time.Local().Format(types.TimeLayout),
		Stock:    e.Stock,
		Price:    e.Price.String(),
		Decision: e.Decision,
	}
}

func (r row) entry() (types.Entry, error) {
	t, err := time.ParseInLocation(types.TimeLayout, r.DateTime, time.Local)
	if err != nil {
		return types.Entry{}, fmt.Errorf("bad DateTime %q: %w", r.DateTime, err)
	}
	price, err := types.ParseNumber(r.Price)
	if err != nil {
		return types.Entry{}, err
	}
	return types.Entry{Time: t, Stock: r.Stock, Price: price, Decision: r.Decision}, nil
}

// ReadCSV parses a ledger export. An empty input yields no entries.
func ReadCSV(r io.Reader) ([]types.Entry, error) {
	var rows []row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("read ledger csv: %w", err)
	}

	entries := make([]types.Entry, 0, len(rows))
	for i, rw := range rows {
		e, err := rw.entry()
		if err != nil {
			// +2: header line and 1-based numbering
			return nil, fmt.Errorf("ledger csv line %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteCSV writes entries with the DateTime,Stock,Price,Decision header.
func WriteCSV(w io.Writer, entries []types.Entry) error {
	rows := make([]row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, toRow(e))
	}
	if len(rows) == 0 {
		_, err := io.WriteString(w, "DateTime,Stock,Price,Decision\n")
		return err
	}
	return gocsv.Marshal(rows, w)
}

// SortedByTimeDesc returns a newest-first copy for display. Ties keep
// reverse insertion order.
func SortedByTimeDesc(entries []types.Entry) []types.Entry {
	out := make([]types.Entry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	return out
}
