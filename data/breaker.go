package data

import (
	"context"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/query"
	"github.com/sony/gobreaker"
)

// BreakerStore fails fast with gobreaker.ErrOpenState while the backend
// keeps failing.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerStore wraps next in a circuit breaker. onChange, when set, is
// told about every state transition.
func NewBreakerStore(next Store, cfg *config.Breaker, onChange func(from, to gobreaker.State)) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "store",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests && failureRatio >= cfg.FailureRatio
		},
	}
	if onChange != nil {
		st.OnStateChange = func(_ string, from, to gobreaker.State) { onChange(from, to) }
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker(st)}
}

// Query runs the statement through the breaker.
func (b *BreakerStore) Query(ctx context.Context, stmt query.Statement) ([]Series, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.next.Query(ctx, stmt)
	})
	if err != nil {
		return nil, err
	}
	series, _ := res.([]Series)
	return series, nil
}

// Write runs the write through the breaker.
func (b *BreakerStore) Write(ctx context.Context, p Point) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Write(ctx, p)
	})
	return err
}

// Ping bypasses the breaker.
func (b *BreakerStore) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}

// State returns the breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

// Close closes the wrapped store.
func (b *BreakerStore) Close() error {
	return b.next.Close()
}
