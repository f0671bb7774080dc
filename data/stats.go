package data

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ncobase/measure/query"
)

// Collector receives storage operation outcomes.
type Collector interface {
	StoreQuery(duration time.Duration, series int, err error)
	StoreWrite(duration time.Duration, err error)
}

// NoOpCollector implements Collector with no-op methods
type NoOpCollector struct{}

func (NoOpCollector) StoreQuery(time.Duration, int, error) {}
func (NoOpCollector) StoreWrite(time.Duration, error)      {}

// StatsCollector counts storage operations.
type StatsCollector struct {
	queries      atomic.Int64
	queryErrors  atomic.Int64
	emptyQueries atomic.Int64
	slowQueries  atomic.Int64
	queryTime    atomic.Int64 // nanoseconds
	writes       atomic.Int64
	writeErrors  atomic.Int64
	lastQuery    atomic.Value // time.Time
	lastWrite    atomic.Value // time.Time

	slowThreshold time.Duration
}

// NewStatsCollector creates a collector; queries slower than slowThreshold
// are counted as slow.
func NewStatsCollector(slowThreshold time.Duration) *StatsCollector {
	if slowThreshold <= 0 {
		slowThreshold = time.Second
	}
	return &StatsCollector{slowThreshold: slowThreshold}
}

// StoreQuery implements Collector.
func (c *StatsCollector) StoreQuery(d time.Duration, series int, err error) {
	c.queries.Add(1)
	c.queryTime.Add(d.Nanoseconds())
	c.lastQuery.Store(time.Now())
	if d > c.slowThreshold {
		c.slowQueries.Add(1)
	}
	switch {
	case err != nil:
		c.queryErrors.Add(1)
	case series == 0:
		c.emptyQueries.Add(1)
	}
}

// StoreWrite implements Collector.
func (c *StatsCollector) StoreWrite(_ time.Duration, err error) {
	c.writes.Add(1)
	c.lastWrite.Store(time.Now())
	if err != nil {
		c.writeErrors.Add(1)
	}
}

// Snapshot returns the current counters.
func (c *StatsCollector) Snapshot() map[string]any {
	stats := map[string]any{
		"queries":       c.queries.Load(),
		"query_errors":  c.queryErrors.Load(),
		"empty_queries": c.emptyQueries.Load(),
		"slow_queries":  c.slowQueries.Load(),
		"writes":        c.writes.Load(),
		"write_errors":  c.writeErrors.Load(),
	}
	if n := c.queries.Load(); n > 0 {
		stats["avg_query_ms"] = float64(c.queryTime.Load()) / float64(n) / float64(time.Millisecond)
	}
	if t, ok := c.lastQuery.Load().(time.Time); ok {
		stats["last_query"] = t
	}
	if t, ok := c.lastWrite.Load().(time.Time); ok {
		stats["last_write"] = t
	}
	return stats
}

// InstrumentedStore reports every operation to a Collector.
type InstrumentedStore struct {
	next      Store
	collector Collector
}

// Instrument wraps next.
func Instrument(next Store, c Collector) *InstrumentedStore {
	if c == nil {
		c = NoOpCollector{}
	}
	return &InstrumentedStore{next: next, collector: c}
}

// Query implements Store.
func (s *InstrumentedStore) Query(ctx context.Context, stmt query.Statement) ([]Series, error) {
	start := time.Now()
	series, err := s.next.Query(ctx, stmt)
	s.collector.StoreQuery(time.Since(start), len(series), err)
	return series, err
}

// Write implements Store.
func (s *InstrumentedStore) Write(ctx context.Context, p Point) error {
	start := time.Now()
	err := s.next.Write(ctx, p)
	s.collector.StoreWrite(time.Since(start), err)
	return err
}

// Ping implements Store.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

// Close implements Store.
func (s *InstrumentedStore) Close() error {
	return s.next.Close()
}
