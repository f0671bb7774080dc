package concurrency

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Manager caps the number of concurrent executions.
type Manager struct {
	maxConcurrent int32
	current       atomic.Int32
	semaphore     chan struct{}

	totalExecutions atomic.Int64
	rejectedCount   atomic.Int64
}

// NewManager creates a manager that allows up to max concurrent executions.
//
// Usage:
//
//	cm, err := concurrency.NewManager(10)
//	if err != nil {
//	    return err
//	}
//	if err := cm.Acquire(ctx); err != nil {
//	    return err
//	}
//	defer cm.Release()
func NewManager(max int32) (*Manager, error) {
	if max <= 0 {
		return nil, fmt.Errorf("max concurrent must be positive, got: %d", max)
	}

	return &Manager{
		maxConcurrent: max,
		semaphore:     make(chan struct{}, max),
	}, nil
}

// Acquire blocks until a slot is free or ctx is done.
func (m *Manager) Acquire(ctx context.Context) error {
	select {
	case m.semaphore <- struct{}{}:
		m.current.Add(1)
		m.totalExecutions.Add(1)
		return nil
	case <-ctx.Done():
		m.rejectedCount.Add(1)
		return fmt.Errorf("failed to acquire concurrency slot: %w", ctx.Err())
	}
}

// TryAcquire attempts to acquire without blocking.
func (m *Manager) TryAcquire() bool {
	select {
	case m.semaphore <- struct{}{}:
		m.current.Add(1)
		m.totalExecutions.Add(1)
		return true
	default:
		return false
	}
}

// Release releases a slot.
func (m *Manager) Release() {
	select {
	case <-m.semaphore:
		m.current.Add(-1)
	default:
		panic("attempting to release more slots than acquired")
	}
}

// Do runs fn inside a slot.
func (m *Manager) Do(ctx context.Context, fn func(context.Context) error) error {
	if err := m.Acquire(ctx); err != nil {
		return err
	}
	defer m.Release()
	return fn(ctx)
}

// Available returns the number of free slots.
func (m *Manager) Available() int32 {
	return m.maxConcurrent - m.current.Load()
}

// GetMetrics returns current counters.
func (m *Manager) GetMetrics() map[string]int64 {
	return map[string]int64{
		"max":              int64(m.maxConcurrent),
		"current":          int64(m.current.Load()),
		"total_executions": m.totalExecutions.Load(),
		"rejected_count":   m.rejectedCount.Load(),
	}
}
