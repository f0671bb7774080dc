package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/measure/config"
	"github.com/ncobase/measure/ctxutil"
	"github.com/ncobase/measure/data"
	"github.com/ncobase/measure/logging/logger"
	"github.com/ncobase/measure/metric"
	"github.com/ncobase/measure/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	store *data.MemoryStore
	svc   *service.Service
	srv   *Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := data.NewMemoryStore()
	stats := data.NewStatsCollector(0)
	svc := service.New(metric.NewCatalog(), data.Instrument(store, stats), logger.Discard())
	t.Cleanup(func() { svc.Close(context.Background()) })

	cfg := &config.Config{RunMode: "test", Server: &config.Server{Host: "127.0.0.1", Port: 0}}
	return &testServer{store: store, svc: svc, srv: New(cfg, svc, stats, logger.Discard())}
}

func (ts *testServer) put(t *testing.T, table, host string, tags map[string]string, v float64) {
	t.Helper()
	all := map[string]string{"host": host}
	for k, val := range tags {
		all[k] = val
	}
	require.NoError(t, ts.store.Write(context.Background(), data.Point{Measurement: table, Tags: all, Value: v, Time: time.Now()}))
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestReadOne(t *testing.T) {
	ts := newTestServer(t)
	ts.put(t, "load_shortterm", "h1", map[string]string{"type": "load"}, 0.25)

	w := ts.do(t, http.MethodGet, "/api/v1/measurements/h1/load_shortterm", "")
	require.Equal(t, http.StatusOK, w.Code)

	var m map[string]any
	decode(t, w, &m)
	assert.Equal(t, 0.25, m["value"])
	assert.Equal(t, metric.UnitRunnableProcesses, m["units"])
	assert.NotContains(t, m, "type")
	assert.NotEmpty(t, w.Header().Get(ctxutil.TraceIDHeader))
}

func TestReadOneNotFound(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/measurements/ghost/cpuidle", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.Equal(t, "Host (ghost) or measurement type (cpuidle) not found.", body["message"])
	assert.EqualValues(t, -404, body["code"])
}

func TestTraceIDIsEchoed(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/debug/stats", nil)
	req.Header.Set(ctxutil.TraceIDHeader, "abc-123")
	w := httptest.NewRecorder()
	ts.srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(ctxutil.TraceIDHeader))
}

func TestReadHost(t *testing.T) {
	ts := newTestServer(t)
	ts.put(t, "memory_value", "h1", map[string]string{"type_instance": "free"}, 1500)

	w := ts.do(t, http.MethodGet, "/api/v1/hosts/h1/measurements?type=memfree&type=unknown_type", "")
	require.Equal(t, http.StatusOK, w.Code)

	var g metric.MeasurementGroup
	decode(t, w, &g)
	assert.Equal(t, "h1", g.Instance)
	require.Len(t, g.Measurements, 1)
	assert.Equal(t, "1.5", g.Measurements[0].Value)
	assert.Equal(t, "KB", g.Measurements[0].Units)
	assert.Equal(t, metric.Type("memfree"), g.Measurements[0].Type)
}

func TestReadHostRequiresType(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/v1/hosts/h1/measurements", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadMatrix(t *testing.T) {
	ts := newTestServer(t)
	ts.put(t, "aggregation_value", "A", map[string]string{"type": "cpu", "type_instance": "idle"}, 9)

	w := ts.do(t, http.MethodPost, "/api/v1/measurements/query", `{"hosts":["A","B"],"types":["cpuidle"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var groups []metric.MeasurementGroup
	decode(t, w, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "A", groups[0].Instance)
}

func TestReadMatrixValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/measurements/query", `{"hosts":[],"types":["cpuidle"]}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]any
	decode(t, w, &body)
	assert.EqualValues(t, -401, body["code"])
	assert.Contains(t, body["errors"], "hosts")

	w = ts.do(t, http.MethodPost, "/api/v1/measurements/query", `{"hosts":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReadFleet(t *testing.T) {
	ts := newTestServer(t)
	ts.put(t, "df_value", "a", map[string]string{"type_instance": "free", "instance": "root"}, 10)
	ts.put(t, "df_value", "b", map[string]string{"type_instance": "free", "instance": "root"}, 20)

	w := ts.do(t, http.MethodGet, "/api/v1/measurements?type=fsfree", "")
	require.Equal(t, http.StatusOK, w.Code)

	var readings []metric.Reading
	decode(t, w, &readings)
	require.Len(t, readings, 2)
	assert.Equal(t, "a", readings[0].Instance)
	assert.Equal(t, 10.0, readings[0].Value)

	w = ts.do(t, http.MethodGet, "/api/v1/measurements?type=nothing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(t, http.MethodGet, "/api/v1/measurements", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWrite(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodPost, "/api/v1/measurements", `{"type":"network.outgoing.bytes.rate","instance":"h1","value":"512","timestamp":"2024-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	ts.svc.Wait()
	assert.Equal(t, 1, ts.store.Len())

	w = ts.do(t, http.MethodPost, "/api/v1/measurements", `{"type":"cpu_util"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndStats(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	ts.do(t, http.MethodGet, "/api/v1/measurements/h1/cpuidle", "")
	w = ts.do(t, http.MethodGet, "/debug/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]map[string]any
	decode(t, w, &stats)
	assert.EqualValues(t, 1, stats["store"]["queries"])
	assert.Contains(t, stats["writes"], "completed_tasks")

	require.NoError(t, ts.store.Close())
	w = ts.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
