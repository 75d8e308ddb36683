package osv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/model"
)

func NewService(httpClient *http.Client, logger zerolog.Logger) *service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &service{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		logger:     logger.With().Str("component", "osv").Logger(),
		now:        time.Now,
	}
}

// Query asks OSV for the advisories affecting one package version
func (s *service) Query(ctx context.Context, pkg, version, ecosystem string) ([]model.Vulnerability, error) {
	payload, err := json.Marshal(queryRequest{
		Package: queryPackage{Name: pkg, Ecosystem: ecosystem},
		Version: version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode OSV query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/query", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build OSV request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, model.NewFetchFailed(source, 0, fmt.Errorf("failed to read OSV response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, model.NewFetchFailed(source, resp.StatusCode, fmt.Errorf("OSV API error: %s", strings.TrimSpace(string(body))))
	}

	var result queryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, model.NewFetchFailed(source, 0, fmt.Errorf("failed to decode OSV response: %w", err))
	}

	vulns := make([]model.Vulnerability, 0, len(result.Vulns))
	for _, v := range result.Vulns {
		vulns = append(vulns, toVulnerability(v))
	}
	return vulns, nil
}

func toVulnerability(v vuln) model.Vulnerability {
	summary := v.Summary
	if summary == "" {
		summary = truncate(v.Details, 100)
	}
	if summary == "" {
		summary = "No description"
	}
	return model.Vulnerability{
		ID:       v.ID,
		Severity: advisorySeverity(v),
		Summary:  summary,
		Fixed:    firstFixed(v),
	}
}

// advisorySeverity grades an advisory from its first numeric CVSS score, falling back
// to the database-specific label.
func advisorySeverity(v vuln) string {
	if len(v.Severity) > 0 {
		if score, err := strconv.ParseFloat(v.Severity[0].Score, 64); err == nil {
			return SeverityFromScore(score)
		}
	}
	if v.DatabaseSpecific.Severity != "" {
		return strings.ToLower(v.DatabaseSpecific.Severity)
	}
	return "unknown"
}

// SeverityFromScore maps a CVSS base score to a severity label
func SeverityFromScore(score float64) string {
	switch {
	case score >= 9.0:
		return "critical"
	case score >= 7.0:
		return "high"
	case score >= 4.0:
		return "medium"
	default:
		return "low"
	}
}

// firstFixed returns the first fixed version in the first affected entry
func firstFixed(v vuln) string {
	if len(v.Affected) == 0 {
		return ""
	}
	for _, r := range v.Affected[0].Ranges {
		for _, event := range r.Events {
			if event.Fixed != "" {
				return event.Fixed
			}
		}
	}
	return ""
}

// Status is critical when any advisory is critical or high, warning when
// there are only lesser ones and safe when there are none.
func Status(vulns []model.Vulnerability) model.VulnStatus {
	if len(vulns) == 0 {
		return model.VulnStatusSafe
	}
	for _, v := range vulns {
		if v.Severity == "critical" || v.Severity == "high" {
			return model.VulnStatusCritical
		}
	}
	return model.VulnStatusWarning
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
