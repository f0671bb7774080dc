package resp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/measure/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]int{"n": 1})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.EqualValues(t, 1, decode(t, rec)["n"])

	rec = httptest.NewRecorder()
	Success(rec)
	assert.Equal(t, "ok", decode(t, rec)["message"])
}

func TestWithStatusCodeStringPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	WithStatusCode(rec, http.StatusAccepted, "accepted")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "accepted", decode(t, rec)["message"])
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, InvalidParams("bad", map[string]string{"hosts": "required"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.EqualValues(t, ecode.ParamErr, body["code"])
	assert.Equal(t, "bad", body["message"])
	assert.Contains(t, body["errors"], "hosts")
	assert.NotContains(t, body, "status")

	rec = httptest.NewRecorder()
	Fail(rec, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.EqualValues(t, ecode.ServerErr, decode(t, rec)["code"])

	rec = httptest.NewRecorder()
	Fail(rec, &Exception{Code: ecode.NotFound})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, ecode.Text(ecode.NotFound), decode(t, rec)["message"])
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	e := FromError(&ecode.NotFoundError{Host: "h1", Type: "cpu_util"})
	assert.Equal(t, http.StatusNotFound, e.Status)
	assert.Equal(t, ecode.NotFound, e.Code)

	e = FromError(&ecode.ConfigError{Field: "database", Message: "required"})
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)

	e = FromError(errors.New("connection refused"))
	assert.Equal(t, http.StatusBadGateway, e.Status)
	assert.Equal(t, "connection refused", e.Message)
}
