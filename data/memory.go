package data

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ncobase/measure/query"
)

// ErrClosed is returned by a store used after Close.
var ErrClosed = errors.New("store is closed")

// MemoryStore keeps points in process.
type MemoryStore struct {
	mu     sync.RWMutex
	points map[string][]Point
	closed bool
	now    func() time.Time
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		points: make(map[string][]Point),
		now:    time.Now,
	}
}

// SetClock replaces the clock used for time ranges.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Write stores a point; a zero time is replaced with the current time.
func (m *MemoryStore) Write(_ context.Context, p Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if p.Time.IsZero() {
		p.Time = m.now()
	}
	m.points[p.Measurement] = append(m.points[p.Measurement], p)
	return nil
}

// Query evaluates stmt over the stored points.
func (m *MemoryStore) Query(_ context.Context, stmt query.Statement) ([]Series, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	return evaluate(m.points[stmt.Measurement], stmt, m.now()), nil
}

// Ping reports whether the store is open.
func (m *MemoryStore) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Len returns the number of stored points.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, ps := range m.points {
		n += len(ps)
	}
	return n
}

// Close drops every point.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.points = nil
	m.closed = true
	return nil
}
