// Package ledger records every recommendation in an append-only portfolio log.
package ledger

import (
	"context"
	"fmt"
	"io"

	"llm-stock-advisor/internal/interfaces"
	"llm-stock-advisor/internal/store"
)

// Store is a ledger that holds resources until closed.
type Store interface {
	interfaces.Ledger
	io.Closer
}

var (
	_ Store = (*CSV)(nil)
	_ Store = (*Memory)(nil)
	_ Store = (*SQLite)(nil)
)

// Open returns the backend selected by cfg.Ledger.Backend.
func Open(cfg *store.Config) (Store, error) {
	switch cfg.Ledger.Backend {
	case store.BackendCSV:
		return OpenCSV(cfg.Ledger.Path)
	case store.BackendSQLite:
		return OpenSQLite(cfg.Ledger.Path)
	case store.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}

// Import appends every row of a CSV export to l and returns how many were added.
// Rows already in l are left untouched.
func Import(ctx context.Context, l interfaces.Ledger, r io.Reader) (int, error) {
	entries, err := ReadCSV(r)
	if err != nil {
		return 0, err
	}
	for i, e := range entries {
		if err := l.Append(ctx, e); err != nil {
			return i, fmt.Errorf("import row %d: %w", i+1, err)
		}
	}
	return len(entries), nil
}
