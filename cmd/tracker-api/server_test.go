package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/internal/config"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

const dataset = "../../tracker/testdata/dataset.json"

func newTestHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	storers, closeStorage, err := openStorage(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(closeStorage)
	h, err := newHandler(cfg, storers)
	require.NoError(t, err)
	return h
}

func TestServerStorageDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := config.Default()
			cfg.Storage.Driver = driver
			cfg.Storage.DSN = ":memory:"
			cfg.Storage.Dataset = dataset
			h := newTestHandler(t, cfg)

			req := httptest.NewRequest("GET", "/api/jira_issues?fields=jira_issue_key&sort=-jira_issue_id&page_size=2", nil)
			res := httptest.NewRecorder()
			h.ServeHTTP(res, req)

			assert.Equal(t, http.StatusOK, res.Code)
			assert.Equal(t, "6", res.Header().Get("X-Total"))
			assert.Contains(t, res.Body.String(), `"jira_issue_key":"OPS-`)
		})
	}
}

func TestServerItem(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dataset = dataset
	h := newTestHandler(t, cfg)

	req := httptest.NewRequest("GET", "/api/jira_projects/1?fields=jira_project_key", nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"TEMPO"`)

	req = httptest.NewRequest("GET", "/api/unknown", nil)
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
}

func TestServerCORS(t *testing.T) {
	cfg := config.Default()
	cfg.CORS.AllowedOrigins = []string{"https://example.com"}
	h := newTestHandler(t, cfg)

	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Origin", "https://example.com")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "https://example.com", res.Header().Get("Access-Control-Allow-Origin"))
}

func TestServerMetrics(t *testing.T) {
	h := newTestHandler(t, config.Default())

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest("GET", "/api/users", nil))
	require.Equal(t, http.StatusOK, res.Code)

	res = httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "tracker_api_requests_total")
}

func TestOpenStorageErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Dataset = "testdata/missing.json"
	_, _, err := openStorage(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	defer func(l resource.LogLevel) { resource.LoggerLevel = l }(resource.LoggerLevel)

	buf := &bytes.Buffer{}
	l := newLogger(config.LogConfig{Level: "warn", Format: "json"}, buf)
	assert.Equal(t, resource.LogLevelWarn, resource.LoggerLevel)
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	newLogger(config.LogConfig{Level: "trace"}, buf)
	assert.Equal(t, resource.LogLevelDebug, resource.LoggerLevel)
}

func TestServerHealth(t *testing.T) {
	cfg := config.Default()
	cfg.Circuit.Enabled = false
	h := newTestHandler(t, cfg)

	res := httptest.NewRecorder()
	h.ServeHTTP(res, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), `"jira_issues":"ok"`)
}
