package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "modernc.org/sqlite"

	"llm-stock-advisor/internal/types"
)

// SQLite stores entries in a table whose autoincrement id keeps insertion order.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps in-memory databases alive.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS decisions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		recorded_at TEXT NOT NULL,
		stock       TEXT NOT NULL,
		price       TEXT NOT NULL,
		decision    TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (l *SQLite) Append(ctx context.Context, e types.Entry) error {
	r := toRow(e)
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO decisions (recorded_at, stock, price, decision) VALUES (?, ?, ?, ?)`,
		r.DateTime, r.Stock, r.Price, r.Decision)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

func (l *SQLite) List(ctx context.Context) ([]types.Entry, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT recorded_at, stock, price, decision FROM decisions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.Entry
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.DateTime, &r.Stock, &r.Price, &r.Decision); err != nil {
			return nil, err
		}
		e, err := r.entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (l *SQLite) Export(ctx context.Context, w io.Writer) error {
	entries, err := l.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, entries)
}

func (l *SQLite) Close() error {
	return l.db.Close()
}
