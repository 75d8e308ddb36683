package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/saral-digital/ops-dashboard/cmd/mcp/response"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDashboard implements the views exercised here; the embedded interface
// panics on anything else
type fakeDashboard struct {
	orchestrator.OrchestratorService

	summary  *model.CostSummary
	score    *model.SecurityScore
	wasteErr error

	month        string
	projects     []string
	includeScans bool
}

func (f *fakeDashboard) GetCostSummary(context.Context) (*model.CostSummary, bool, error) {
	return f.summary, false, nil
}

func (f *fakeDashboard) GetWasteReport(context.Context) (*model.WasteReport, bool, error) {
	if f.wasteErr != nil {
		return nil, false, f.wasteErr
	}
	return &model.WasteReport{}, false, nil
}

func (f *fakeDashboard) GetSecurityScore(context.Context) (*model.SecurityScore, bool, error) {
	return f.score, false, nil
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
	return nil, &model.ConfigurationMissingError{Variable: "JIRA_EMAIL"}
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (*mcp.CallToolResult, string) {
	t.Helper()
	var request mcp.CallToolRequest
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return result, text.Text
}

func TestCostSummaryTool(t *testing.T) {
	dashboard := &fakeDashboard{summary: &model.CostSummary{
		ActualCost: 1500, ForecastCost: 3000, LastMonthCost: 2000, Currency: "USD",
	}}

	result, text := call(t, makeCostSummaryHandler(dashboard), nil)

	assert.False(t, result.IsError)
	var got response.CostSummary
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	assert.InDelta(t, 1000, got.Difference, 1e-9)
	assert.InDelta(t, 50, got.PercentChange, 1e-9)
}

func TestServiceBreakdownToolPassesMonth(t *testing.T) {
	dashboard := &fakeDashboard{}

	result, text := call(t, makeServiceBreakdownHandler(dashboard), map[string]any{"month": "2025-01"})
	assert.False(t, result.IsError)
	assert.Equal(t, "2025-01", dashboard.month)
	assert.Contains(t, text, `"month": "2025-01"`)

	_, _ = call(t, makeServiceBreakdownHandler(dashboard), nil)
	assert.Equal(t, "", dashboard.month)

	result, text = call(t, makeServiceBreakdownHandler(dashboard), map[string]any{"month": "bad"})
	assert.True(t, result.IsError)
	assert.Contains(t, text, "YYYY-MM")
}

func TestPipelineRunsToolParsesArguments(t *testing.T) {
	dashboard := &fakeDashboard{}

	result, _ := call(t, makePipelineRunsHandler(dashboard), map[string]any{
		"projects":      " Saral , ,Infra",
		"include_scans": true,
	})

	assert.False(t, result.IsError)
	assert.Equal(t, []string{"Saral", "Infra"}, dashboard.projects)
	assert.True(t, dashboard.includeScans)
}

func TestTasksToolReportsMissingConfiguration(t *testing.T) {
	result, text := call(t, makeTasksHandler(&fakeDashboard{}), nil)

	assert.True(t, result.IsError)
	assert.Contains(t, text, "JIRA_EMAIL")
}

func TestOverviewCollectsPartialResults(t *testing.T) {
	dashboard := &fakeDashboard{
		summary:  &model.CostSummary{ActualCost: 10, Currency: "USD"},
		score:    &model.SecurityScore{ScorePercentage: 80},
		wasteErr: errors.New("compute unavailable"),
	}

	result, text := call(t, makeOverviewHandler(dashboard), nil)

	assert.False(t, result.IsError)
	var got response.Overview
	require.NoError(t, json.Unmarshal([]byte(text), &got))
	require.NotNil(t, got.Cost)
	require.NotNil(t, got.Security)
	assert.Nil(t, got.Waste)
	assert.Equal(t, map[string]string{"waste": "compute unavailable"}, got.Errors)
	assert.Equal(t, 80, got.Security.ScorePercentage)
}

func TestSplitProjects(t *testing.T) {
	assert.Empty(t, splitProjects(""))
	assert.Equal(t, []string{"a", "b"}, splitProjects("a, b,"))
}
