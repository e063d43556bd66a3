package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"llm-stock-advisor/internal/types"
)

// CSV is the durable file ledger. Rows are appended, never rewritten.
type CSV struct {
	mu   sync.Mutex
	path string
}

func OpenCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return &CSV{path: path}, nil
}

func (l *CSV) Path() string { return l.path }

func (l *CSV) Append(_ context.Context, e types.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	rows := []row{toRow(e)}
	if info.Size() == 0 {
		err = gocsv.Marshal(rows, f)
	} else {
		err = gocsv.MarshalWithoutHeaders(rows, f)
	}
	if err != nil {
		return fmt.Errorf("append to %s: %w", l.path, err)
	}
	return nil
}

func (l *CSV) List(_ context.Context) ([]types.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func (l *CSV) Export(ctx context.Context, w io.Writer) error {
	entries, err := l.List(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, entries)
}

func (l *CSV) Close() error { return nil }
