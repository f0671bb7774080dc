package data

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/logging/logger"
	"github.com/sony/gobreaker"
)

// ProviderSet is the wire provider set for the data package.
var ProviderSet = wire.NewSet(
	ProvideStatsCollector,
	ProvideManager,
	wire.Bind(new(Store), new(*Manager)),
)

// ProvideStatsCollector creates the store statistics collector.
func ProvideStatsCollector() *StatsCollector {
	return NewStatsCollector(time.Second)
}

// ProvideManager creates the shared store manager. The cleanup closes the
// store if it was opened.
func ProvideManager(conf *config.Database, stats *StatsCollector, l *logger.Logger) (*Manager, func(), error) {
	m := NewManager(conf,
		WithCollector(stats),
		WithBreakerListener(func(from, to gobreaker.State) {
			l.Warnf(context.Background(), "store circuit breaker changed from %s to %s", from, to)
		}),
	)
	cleanup := func() {
		if err := m.Close(); err != nil {
			l.Errorf(context.Background(), "failed to close store: %v", err)
		}
	}
	return m, cleanup, nil
}
