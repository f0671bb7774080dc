package data

import (
	"context"
	"testing"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/ecode"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOpensOnce(t *testing.T) {
	stats := NewStatsCollector(0)
	m := NewManager(&config.Database{Driver: config.DriverMemory}, WithCollector(stats))
	ctx := context.Background()

	s1, err := m.Store()
	require.NoError(t, err)
	s2, err := m.Store()
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	require.NoError(t, m.Write(ctx, Point{Measurement: "m", Tags: map[string]string{"host": "h"}, Value: 1}))
	series, err := m.Query(ctx, query.Build("h", metric.Descriptor{Table: "m"}, query.Point))
	require.NoError(t, err)
	assert.Len(t, series, 1)

	snap := stats.Snapshot()
	assert.Equal(t, int64(1), snap["queries"])
	assert.Equal(t, int64(1), snap["writes"])
	assert.Equal(t, int64(0), snap["query_errors"])
}

func TestManagerKeepsOpenError(t *testing.T) {
	m := NewManager(&config.Database{Driver: "cassandra"})

	_, err := m.Store()
	require.Error(t, err)
	assert.True(t, ecode.IsConfig(err))

	_, err = m.Query(context.Background(), query.Statement{})
	assert.True(t, ecode.IsConfig(err))
}

func TestManagerNilConfig(t *testing.T) {
	_, err := NewManager(nil).Store()
	assert.True(t, ecode.IsConfig(err))
}

func TestManagerClose(t *testing.T) {
	m := Static(NewMemoryStore())
	require.NoError(t, m.Ping(context.Background()))
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err := m.Store()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestManagerCloseBeforeUse(t *testing.T) {
	m := NewManager(&config.Database{Driver: config.DriverMemory})
	require.NoError(t, m.Close())

	_, err := m.Store()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenWrapsBreaker(t *testing.T) {
	s, err := Open(&config.Database{Driver: config.DriverMemory, Breaker: testBreakerConfig()}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &BreakerStore{}, s)

	s, err = Open(&config.Database{Driver: config.DriverMemory}, NoOpCollector{}, nil)
	require.NoError(t, err)
	assert.IsType(t, &InstrumentedStore{}, s)
}

func TestOpenRedisRequiresHost(t *testing.T) {
	_, err := Open(&config.Database{Driver: config.DriverRedis}, nil, nil)
	assert.True(t, ecode.IsConfig(err))
}

func TestStatsCollectorCountsOutcomes(t *testing.T) {
	c := NewStatsCollector(0)
	s := Instrument(&failingStore{}, c)

	_, _ = s.Query(context.Background(), query.Statement{})
	_ = s.Write(context.Background(), Point{})

	snap := c.Snapshot()
	assert.Equal(t, int64(1), snap["query_errors"])
	assert.Equal(t, int64(1), snap["write_errors"])
	assert.Contains(t, snap, "avg_query_ms")
}
