package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/query"
	"github.com/ncobase/measure/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	assert.NoError(t, loadEnv(""))
	assert.NoError(t, loadEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEASURE_TEST_LOAD_ENV=yes\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("MEASURE_TEST_LOAD_ENV") })

	require.NoError(t, loadEnv(path))
	assert.Equal(t, "yes", os.Getenv("MEASURE_TEST_LOAD_ENV"))
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"serve", "read", "write", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestReadRequiresTarget(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"read", "--host", "web-1", "--env-file", ""})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--fleet")
}

func newReadTestService(t *testing.T) *service.Service {
	t.Helper()
	store := data.NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 10, 5, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	ctx := context.Background()
	for _, p := range []data.Point{
		{Measurement: "load_shortterm", Tags: map[string]string{query.TagHost: "web-1", query.TagType: "load"}, Value: 0.5, Time: now.Add(-time.Minute)},
		{Measurement: "load_shortterm", Tags: map[string]string{query.TagHost: "web-2", query.TagType: "load"}, Value: 1.5, Time: now.Add(-time.Minute)},
		{Measurement: "memory_value", Tags: map[string]string{query.TagHost: "web-1", query.TagTypeInstance: "free"}, Value: 2048, Time: now.Add(-time.Minute)},
	} {
		require.NoError(t, store.Write(ctx, p))
	}

	svc := service.New(nil, store, nil)
	t.Cleanup(func() { svc.Close(context.Background()) })
	return svc
}

func TestReadOptionsRun(t *testing.T) {
	svc := newReadTestService(t)
	ctx := context.Background()

	out, err := (&readOptions{hosts: []string{"web-1"}, types: []string{"memfree"}}).run(ctx, svc)
	require.NoError(t, err)
	m, ok := out.(*metric.Measurement)
	require.True(t, ok)
	assert.Equal(t, "2.05", m.Value)
	assert.Equal(t, "KB", m.Units)

	out, err = (&readOptions{hosts: []string{"web-1"}, types: []string{"memfree", "load_shortterm"}}).run(ctx, svc)
	require.NoError(t, err)
	group, ok := out.(*metric.MeasurementGroup)
	require.True(t, ok)
	assert.Len(t, group.Measurements, 2)

	out, err = (&readOptions{hosts: []string{"web-1", "web-3"}, types: []string{"load_shortterm"}}).run(ctx, svc)
	require.NoError(t, err)
	groups, ok := out.([]metric.MeasurementGroup)
	require.True(t, ok)
	require.Len(t, groups, 1)
	assert.Equal(t, "web-1", groups[0].Instance)

	out, err = (&readOptions{fleet: "load_shortterm"}).run(ctx, svc)
	require.NoError(t, err)
	readings, ok := out.([]metric.Reading)
	require.True(t, ok)
	assert.Len(t, readings, 2)
}

func TestReadOptionsRunNotFound(t *testing.T) {
	svc := newReadTestService(t)

	_, err := (&readOptions{hosts: []string{"web-9"}, types: []string{"memfree"}}).run(context.Background(), svc)
	require.Error(t, err)
}
