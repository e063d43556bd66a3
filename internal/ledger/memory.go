package ledger

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"llm-stock-advisor/internal/types"
)

// Memory is a session-scoped ledger that lives as long as the process.
type Memory struct {
	mu      sync.Mutex
	entries []types.Entry
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Append(_ context.Context, e types.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *Memory) List(_ context.Context) ([]types.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

func (m *Memory) Export(ctx context.Context, w io.Writer) error {
	entries, _ := m.List(ctx)
	return WriteCSV(w, entries)
}

func (m *Memory) Close() error { return nil }

// Sessions hands out one memory ledger per session id.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Memory
}

func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Memory)}
}

// Start creates a session and returns its id and ledger.
func (s *Sessions) Start() (string, *Memory) {
	id := uuid.NewString()
	m := NewMemory()
	s.mu.Lock()
	s.sessions[id] = m
	s.mu.Unlock()
	return id, m
}

func (s *Sessions) Get(id string) (*Memory, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessions[id]
	return m, ok
}

// End drops a session and its entries.
func (s *Sessions) End(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
