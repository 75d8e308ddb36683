package osv

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewService(server.Client(), zerolog.Nop())
	svc.baseURL = server.URL
	svc.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc
}

func TestSeverityFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{9.8, "critical"},
		{9.0, "critical"},
		{7.0, "high"},
		{6.9, "medium"},
		{4.0, "medium"},
		{3.9, "low"},
		{0, "low"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFromScore(tt.score), "score %v", tt.score)
	}
}

func TestAdvisorySeverityFallbacks(t *testing.T) {
	numeric := vuln{Severity: []severity{{Type: "CVSS_V3", Score: "7.5"}}}
	assert.Equal(t, "high", advisorySeverity(numeric))

	vector := vuln{Severity: []severity{{Type: "CVSS_V3", Score: "CVSS:3.1/AV:N/AC:L"}}}
	vector.DatabaseSpecific.Severity = "MODERATE"
	assert.Equal(t, "moderate", advisorySeverity(vector))

	assert.Equal(t, "unknown", advisorySeverity(vuln{}))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, model.VulnStatusSafe, Status(nil))
	assert.Equal(t, model.VulnStatusWarning, Status([]model.Vulnerability{{Severity: "medium"}, {Severity: "low"}}))
	assert.Equal(t, model.VulnStatusCritical, Status([]model.Vulnerability{{Severity: "low"}, {Severity: "high"}}))
}

func TestQueryTarget(t *testing.T) {
	pkg, version := QueryTarget(model.TechStackItem{Name: "React", Version: "^18.2.0"}, "")
	assert.Equal(t, "react", pkg)
	assert.Equal(t, "18.2.0", version)

	pkg, version = QueryTarget(model.TechStackItem{Name: ".NET", Version: "net8.0"}, "8.0.100")
	assert.Equal(t, "Microsoft.NETCore.App", pkg)
	assert.Equal(t, "8.0.100", version)

	_, version = QueryTarget(model.TechStackItem{Name: ".NET", Version: "net8.0"}, "")
	assert.Equal(t, "8.0.0", version)
}

func TestQueryParsesAdvisories(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/query", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req queryRequest
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, queryRequest{Package: queryPackage{Name: "vite", Ecosystem: "npm"}, Version: "5.0.8"}, req)

		_, _ = w.Write([]byte(`{"vulns":[
			{"id":"GHSA-1","summary":"Path traversal","severity":[{"type":"CVSS_V3","score":"9.1"}],
			 "affected":[{"ranges":[{"events":[{"introduced":"0"},{"fixed":"5.0.12"}]}]}]},
			{"id":"GHSA-2","details":"Long details text","database_specific":{"severity":"LOW"}}
		]}`))
	})

	vulns, err := svc.Query(context.Background(), "vite", "5.0.8", "npm")

	require.NoError(t, err)
	assert.Equal(t, []model.Vulnerability{
		{ID: "GHSA-1", Severity: "critical", Summary: "Path traversal", Fixed: "5.0.12"},
		{ID: "GHSA-2", Severity: "low", Summary: "Long details text"},
	}, vulns)
}

func TestScan(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req queryRequest
		_ = json.Unmarshal(body, &req)

		switch req.Package.Name {
		case "react":
			_, _ = w.Write([]byte(`{}`))
		case "Microsoft.NETCore.App":
			assert.Equal(t, "8.0.1", req.Version)
			_, _ = w.Write([]byte(`{"vulns":[{"id":"CVE-1","summary":"DoS","database_specific":{"severity":"HIGH"}}]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	scan := svc.Scan(context.Background(), []model.TechStackItem{
		{Category: "Frontend", Name: "React", Version: "^18.2.0"},
		{Category: "Frontend", Name: "Vite", Version: "5.0.0"},
		{Category: "Frontend", Name: "Svelte", Version: "4.0.0"},
		{Category: "Backend", Name: ".NET", Version: "net8.0"},
		{Category: "Infrastructure", Name: "sdk", Version: "8.0.1-alpine"},
	})

	require.Len(t, scan.Results, 4)
	assert.Equal(t, model.VulnStatusSafe, scan.Results[0].Status)
	assert.Equal(t, model.VulnStatusUnknown, scan.Results[1].Status)
	assert.Equal(t, "npm", scan.Results[1].Ecosystem)
	assert.Equal(t, model.VulnResult{Package: "Svelte", Version: "4.0.0", Ecosystem: "unknown", Vulnerabilities: []model.Vulnerability{}, Status: model.VulnStatusUnknown}, scan.Results[2])
	assert.Equal(t, model.VulnStatusCritical, scan.Results[3].Status)
	assert.Equal(t, "net8.0 (SDK 8.0.1)", scan.Results[3].Version)
	assert.Equal(t, model.ScanSummary{Total: 4, Critical: 1, Safe: 1, Unknown: 2}, scan.Summary)
	assert.Equal(t, "2025-01-02T03:04:05Z", scan.Timestamp)
}
