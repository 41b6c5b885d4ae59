package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/telemetry"
)

func TestHealthAndMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "# TYPE"), rec.Body.String())
}

func TestUnknownRouteReturnsErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(telemetry.SetOutput(&bytes.Buffer{}))
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		assert.Equal(t, want, Addr(in), in)
	}
}
