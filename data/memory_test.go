package data

import (
	"context"
	"testing"
	"time"

	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 1, 1, 0, 10, 5, 0, time.UTC)

func newTestMemoryStore(t *testing.T, points ...Point) *MemoryStore {
	t.Helper()
	m := NewMemoryStore()
	m.SetClock(func() time.Time { return testNow })
	for _, p := range points {
		require.NoError(t, m.Write(context.Background(), p))
	}
	return m
}

func point(table, host string, tags map[string]string, v float64, at time.Time) Point {
	all := map[string]string{query.TagHost: host}
	for k, val := range tags {
		all[k] = val
	}
	return Point{Measurement: table, Tags: all, Value: v, Time: at}
}

func TestMemoryPointReturnsLatest(t *testing.T) {
	m := newTestMemoryStore(t,
		point("load_shortterm", "h1", map[string]string{"type": "load"}, 0.5, testNow.Add(-20*time.Second)),
		point("load_shortterm", "h1", map[string]string{"type": "load"}, 0.7, testNow.Add(-5*time.Second)),
		point("load_shortterm", "h2", map[string]string{"type": "load"}, 9, testNow),
	)

	stmt := query.Build("h1", metric.Descriptor{Table: "load_shortterm", Type: "load"}, query.Point)
	series, err := m.Query(context.Background(), stmt)
	require.NoError(t, err)
	require.Len(t, series, 1)

	assert.Equal(t, []string{"time", "value"}, series[0].Columns)
	samples := Samples(series)
	require.Len(t, samples, 1)
	assert.Equal(t, 0.7, samples[0].Value)
	assert.True(t, samples[0].Valid)
	assert.True(t, samples[0].Time.Equal(testNow.Add(-5*time.Second)))
}

func TestMemoryPairReturnsTwoNewestFirst(t *testing.T) {
	desc := metric.Descriptor{Table: "aggregation_value", Type: "cpu", TypeInstance: "idle"}
	tags := map[string]string{"type": "cpu", "type_instance": "idle"}
	m := newTestMemoryStore(t,
		point(desc.Table, "h1", tags, 60, testNow.Add(-20*time.Second)),
		point(desc.Table, "h1", tags, 70, testNow.Add(-10*time.Second)),
		point(desc.Table, "h1", tags, 80, testNow),
		point(desc.Table, "h1", map[string]string{"type": "cpu", "type_instance": "user"}, 1, testNow),
	)

	series, err := m.Query(context.Background(), query.Build("h1", desc, query.Pair))
	require.NoError(t, err)

	samples := Samples(series)
	require.Len(t, samples, 2)
	assert.Equal(t, 80.0, samples[0].Value)
	assert.Equal(t, 70.0, samples[1].Value)
}

func TestMemoryWindowSumsBuckets(t *testing.T) {
	desc := metric.Descriptor{Table: "interface_rx", Type: "if_octets"}
	tags := map[string]string{"type": "if_octets"}
	m := newTestMemoryStore(t,
		point(desc.Table, "h1", tags, 1000, testNow.Add(-5*time.Second)),
		point(desc.Table, "h1", tags, 500, testNow.Add(-3*time.Second)),
		point(desc.Table, "h1", tags, 800, testNow.Add(-15*time.Second)),
		point(desc.Table, "h1", tags, 5000, testNow.Add(-time.Hour)),
	)

	series, err := m.Query(context.Background(), query.Build("h1", desc, query.Window))
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, []string{"time", "sum"}, series[0].Columns)

	samples := series[0].Samples()
	require.Len(t, samples, 2)
	assert.Equal(t, 1500.0, samples[0].Value)
	assert.Equal(t, 800.0, samples[1].Value)
	assert.True(t, samples[0].Time.Equal(time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC)))
}

func TestMemoryWindowEmptyBucketIsNull(t *testing.T) {
	desc := metric.Descriptor{Table: "interface_tx", Type: "if_octets"}
	m := newTestMemoryStore(t,
		point(desc.Table, "h1", map[string]string{"type": "if_octets"}, 1000, testNow.Add(-25*time.Second)),
	)

	series, err := m.Query(context.Background(), query.Build("h1", desc, query.Window))
	require.NoError(t, err)

	samples := Samples(series)
	require.Len(t, samples, 2)
	assert.False(t, samples[0].Valid)
	assert.False(t, samples[1].Valid)
}

func TestMemoryFleetGroupsByHost(t *testing.T) {
	m := newTestMemoryStore(t,
		point("memory_value", "b", map[string]string{"type_instance": "free"}, 2, testNow.Add(-time.Minute)),
		point("memory_value", "b", map[string]string{"type_instance": "free"}, 3, testNow),
		point("memory_value", "a", map[string]string{"type_instance": "free"}, 1, testNow),
	)

	series, err := m.Query(context.Background(), query.Build("", metric.Descriptor{Table: "memory_value", TypeInstance: "free"}, query.Fleet))
	require.NoError(t, err)
	require.Len(t, series, 2)

	r0, err := series[0].Reading()
	require.NoError(t, err)
	r1, err := series[1].Reading()
	require.NoError(t, err)

	assert.Equal(t, "a", r0.Instance)
	assert.Equal(t, 1.0, r0.Value)
	assert.Equal(t, "b", r1.Instance)
	assert.Equal(t, 3.0, r1.Value)
}

func TestMemoryNoMatchReturnsNoSeries(t *testing.T) {
	m := newTestMemoryStore(t)

	series, err := m.Query(context.Background(), query.Build("h1", metric.Descriptor{Table: "nothing"}, query.Point))
	require.NoError(t, err)
	assert.Empty(t, series)
}

func TestMemoryWriteDefaultsTime(t *testing.T) {
	m := newTestMemoryStore(t, Point{Measurement: "m", Tags: map[string]string{"host": "h"}, Value: 1})

	series, err := m.Query(context.Background(), query.Build("h", metric.Descriptor{Table: "m"}, query.Point))
	require.NoError(t, err)
	samples := Samples(series)
	require.Len(t, samples, 1)
	assert.True(t, samples[0].Time.Equal(testNow))
	assert.Equal(t, 1, m.Len())
}

func TestMemoryClosed(t *testing.T) {
	m := newTestMemoryStore(t)
	require.NoError(t, m.Close())

	_, err := m.Query(context.Background(), query.Build("h", metric.Descriptor{Table: "m"}, query.Point))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Write(context.Background(), Point{Measurement: "m"}), ErrClosed)
	assert.ErrorIs(t, m.Ping(context.Background()), ErrClosed)
}
