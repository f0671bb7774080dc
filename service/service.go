// Package service answers last-value measurement requests for single hosts,
// host groups, host matrices and whole fleets, and forwards written points
// to storage.
package service

import (
	"context"
	"time"

	"github.com/ncobase/measure/concurrency"
	"github.com/ncobase/measure/concurrency/worker"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/interpret"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
)

// Service is the measurement query and write service.
type Service struct {
	catalog     *metric.Catalog
	interpreter *interpret.Interpreter
	store       data.Store
	limiter     *concurrency.Manager
	writes      *worker.Pool
	ownsWrites  bool
	logger      *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLimiter caps the number of concurrent storage queries of the group
// operations. Without it the fan-out is unbounded.
func WithLimiter(m *concurrency.Manager) Option {
	return func(s *Service) { s.limiter = m }
}

// WithWritePool runs writes on p instead of a pool owned by the service.
func WithWritePool(p *worker.Pool) Option {
	return func(s *Service) { s.writes = p }
}

// New creates a service reading and writing through store.
func New(catalog *metric.Catalog, store data.Store, l *logger.Logger, opts ...Option) *Service {
	if catalog == nil {
		catalog = metric.NewCatalog()
	}
	if l == nil {
		l = logger.Discard()
	}

	s := &Service{
		catalog:     catalog,
		interpreter: interpret.New(catalog),
		store:       store,
		logger:      l,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.writes == nil {
		s.writes = worker.NewPool(worker.DefaultConfig(), nil)
		s.writes.Start()
		s.ownsWrites = true
	}
	return s
}

// Catalog returns the metric catalog in use.
func (s *Service) Catalog() *metric.Catalog {
	return s.catalog
}

// Ping checks the storage backend.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// WriteStats returns the write pool counters.
func (s *Service) WriteStats() map[string]int64 {
	return s.writes.GetMetrics()
}

// Wait blocks until every write accepted so far has been handed to storage.
func (s *Service) Wait() {
	s.writes.Wait()
}

// Close drains a write pool created by New. A pool passed with
// WithWritePool is left to its owner.
func (s *Service) Close(ctx context.Context) {
	if !s.ownsWrites {
		return
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}
	s.writes.Stop(ctx)
}
