package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboard implements the views exercised here; the embedded interface
// panics on anything else
type fakeDashboard struct {
	orchestrator.OrchestratorService

	summary *model.CostSummary
	hit     bool
	err     error

	month        string
	projects     []string
	includeScans bool
}

func (f *fakeDashboard) GetCostSummary(context.Context) (*model.CostSummary, bool, error) {
	return f.summary, f.hit, f.err
}

func (f *fakeDashboard) GetServiceBreakdown(_ context.Context, month string) (*model.ServiceBreakdown, bool, error) {
	f.month = month
	if month == "bad" {
		return nil, false, model.ErrInvalidMonth
	}
	return &model.ServiceBreakdown{Month: month, Breakdown: []model.ServiceCost{}}, false, nil
}

func (f *fakeDashboard) GetPipelineRuns(_ context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error) {
	f.projects, f.includeScans = projects, includeScans
	return &model.PipelineRuns{Runs: []model.PipelineRun{}}, nil
}

func (f *fakeDashboard) GetTasks(context.Context) (*model.TaskList, error) {
	return nil, f.err
}

func (f *fakeDashboard) GetHealth(context.Context) *model.HealthReport {
	return &model.HealthReport{Environments: []model.EnvironmentHealth{}, Timestamp: "2025-04-15T12:00:00Z"}
}

func serve(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestCostSetsCacheHeader(t *testing.T) {
	forecast := 3100.0
	dashboard := &fakeDashboard{summary: &model.CostSummary{
		ActualCost: 1500, ForecastCost: 3000, AzureForecastCost: &forecast, LastMonthCost: 2800, Currency: "USD",
	}}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/azure/cost")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.JSONEq(t, `{"actualCost":1500,"forecastCost":3000,"azureForecastCost":3100,"lastMonthCost":2800,"currency":"USD"}`, rec.Body.String())

	dashboard.hit = true
	rec = serve(t, s, "/api/azure/cost")

	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.cacheLookups.WithLabelValues(orchestrator.KeyCost, "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.cacheLookups.WithLabelValues(orchestrator.KeyCost, "miss")))
}

func TestMissingConfigurationNamesVariable(t *testing.T) {
	dashboard := &fakeDashboard{err: &model.ConfigurationMissingError{Variable: "AZURE_SUBSCRIPTION_ID"}}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/azure/cost")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Configuration missing","details":"AZURE_SUBSCRIPTION_ID environment variable is not set"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestUpstreamStatusIsPropagated(t *testing.T) {
	dashboard := &fakeDashboard{err: model.NewFetchFailed("jira", http.StatusTooManyRequests, errors.New("rate limited"))}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/jira/tasks")

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch jira data", body.Error)
	assert.Equal(t, "rate limited", body.Details)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.upstreamErrors.WithLabelValues("jira")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("/api/jira/tasks", http.MethodGet, "429")))
}

func TestPanickingHandlerIsRecoveredAndCounted(t *testing.T) {
	s := New(&fakeDashboard{}, zerolog.Nop(), Options{})
	s.echo.GET("/api/explode", func(echo.Context) error {
		panic("boom")
	})

	rec := serve(t, s, "/api/explode")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal error", body.Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.requests.WithLabelValues("/api/explode", http.MethodGet, "500")))
}

func TestUpstreamFailureWithoutStatusIs500(t *testing.T) {
	dashboard := &fakeDashboard{err: model.NewFetchFailed("azure-cost-management", 0, errors.New("dial tcp: timeout"))}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/azure/cost")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "dial tcp: timeout")
}

func TestServiceBreakdownMonthParameter(t *testing.T) {
	dashboard := &fakeDashboard{}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/azure/service-breakdown?month=2025-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-01", dashboard.month)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = serve(t, s, "/api/azure/service-breakdown?month=bad")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPipelineRunsQueryParameters(t *testing.T) {
	dashboard := &fakeDashboard{}
	s := New(dashboard, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/azure/pipeline-runs?projects=Alpha,%20Beta,&includeScans=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Alpha", "Beta"}, dashboard.projects)
	assert.True(t, dashboard.includeScans)

	serve(t, s, "/api/azure/pipeline-runs")

	assert.Nil(t, dashboard.projects)
	assert.False(t, dashboard.includeScans)
}

func TestHealthAndMetrics(t *testing.T) {
	s := New(&fakeDashboard{}, zerolog.Nop(), Options{})

	rec := serve(t, s, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"environments":[],"timestamp":"2025-04-15T12:00:00Z"}`, rec.Body.String())

	rec = serve(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "opsdash_http_requests_total")
}

func TestStaticUIFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>dashboard</html>"), 0o644))
	s := New(&fakeDashboard{}, zerolog.Nop(), Options{UIDir: dir})

	rec := serve(t, s, "/cloud-spend")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dashboard")

	rec = serve(t, s, "/api/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"config", &model.ConfigurationMissingError{Variable: "JIRA_EMAIL"}, http.StatusInternalServerError},
		{"wrapped upstream", errors.Join(errors.New("context"), model.NewFetchFailed("osv", http.StatusBadGateway, errors.New("bad"))), http.StatusBadGateway},
		{"invalid upstream status", model.NewFetchFailed("osv", 200, errors.New("odd")), http.StatusInternalServerError},
		{"invalid month", model.ErrInvalidMonth, http.StatusBadRequest},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
		})
	}
}
