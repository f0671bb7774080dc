package data

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/query"
	"github.com/sony/gobreaker"
)

// Option configures how a Manager builds its store.
type Option func(*Manager)

// WithCollector reports store operations to c.
func WithCollector(c Collector) Option {
	return func(m *Manager) { m.collector = c }
}

// WithBreakerListener is told about circuit breaker state changes.
func WithBreakerListener(fn func(from, to gobreaker.State)) Option {
	return func(m *Manager) { m.onBreakerChange = fn }
}

// Manager opens the configured store on first use and shares it between
// every caller. Manager is itself a Store.
type Manager struct {
	conf            *config.Database
	collector       Collector
	onBreakerChange func(from, to gobreaker.State)

	once  sync.Once
	store Store
	err   error

	mu     sync.Mutex
	closed bool
}

// NewManager creates a manager for conf. Nothing is opened until the first
// call.
func NewManager(conf *config.Database, opts ...Option) *Manager {
	m := &Manager{conf: conf}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Static returns a manager serving an already opened store.
func Static(store Store) *Manager {
	m := &Manager{store: store}
	m.once.Do(func() {})
	return m
}

// Store returns the shared store, opening it once. An open error is kept
// and returned to every later caller.
func (m *Manager) Store() (Store, error) {
	m.once.Do(func() {
		m.store, m.err = Open(m.conf, m.collector, m.onBreakerChange)
	})
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	return m.store, nil
}

// Query implements Store.
func (m *Manager) Query(ctx context.Context, stmt query.Statement) ([]Series, error) {
	s, err := m.Store()
	if err != nil {
		return nil, err
	}
	return s.Query(ctx, stmt)
}

// Write implements Store.
func (m *Manager) Write(ctx context.Context, p Point) error {
	s, err := m.Store()
	if err != nil {
		return err
	}
	return s.Write(ctx, p)
}

// Ping implements Store.
func (m *Manager) Ping(ctx context.Context) error {
	s, err := m.Store()
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

// Close closes the store if it was opened.
func (m *Manager) Close() error {
	// a manager closed before first use never opens
	m.once.Do(func() {})
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	if m.store == nil {
		return nil
	}
	return m.store.Close()
}

// Open builds the store named by conf.Driver, wrapped in the circuit
// breaker when enabled and reporting to collector when one is given.
func Open(conf *config.Database, collector Collector, onBreakerChange func(from, to gobreaker.State)) (Store, error) {
	if conf == nil {
		return nil, &ecode.ConfigError{Field: "database", Message: ecode.FieldIsRequired()}
	}

	var (
		store Store
		err   error
	)
	switch conf.Driver {
	case config.DriverInflux, "":
		store, err = NewInfluxStore(conf)
	case config.DriverRedis:
		store, err = openRedis(conf)
	case config.DriverMemory:
		store = NewMemoryStore()
	default:
		return nil, &ecode.ConfigError{Field: "database.driver", Message: fmt.Sprintf("unsupported driver %q", conf.Driver)}
	}
	if err != nil {
		return nil, &ecode.ConfigError{Field: "database", Message: err.Error()}
	}

	if conf.Breaker != nil && conf.Breaker.Enabled {
		store = NewBreakerStore(store, conf.Breaker, onBreakerChange)
	}
	if collector != nil {
		store = Instrument(store, collector)
	}
	return store, nil
}

func openRedis(conf *config.Database) (Store, error) {
	rc, err := newRedisClient(conf)
	if err != nil {
		return nil, err
	}
	prefix, retention := "measure", time.Duration(0)
	if conf.Redis != nil {
		if conf.Redis.KeyPrefix != "" {
			prefix = conf.Redis.KeyPrefix
		}
		retention = conf.Redis.Retention
	}
	return NewRedisStore(rc, prefix, retention), nil
}
