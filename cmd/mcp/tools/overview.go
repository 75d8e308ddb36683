package tools

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/saral-digital/ops-dashboard/cmd/mcp/response"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

// RegisterOverviewTools registers aggregate tools spanning several views
func RegisterOverviewTools(s *server.MCPServer, dashboard orchestrator.OrchestratorService) {
	s.AddTool(
		mcp.NewTool("dashboard_get_overview",
			mcp.WithDescription("Get cost summary, waste summary and security score in one call. Sections that fail are reported under errors."),
		),
		makeOverviewHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("dashboard_get_health",
			mcp.WithDescription("Probe each configured environment's health endpoint"),
		),
		makeHealthHandler(dashboard),
	)
}

func makeOverviewHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		overview := response.Overview{Errors: map[string]string{}}
		var mu sync.Mutex
		var wg sync.WaitGroup

		record := func(section string, err error) {
			mu.Lock()
			overview.Errors[section] = err.Error()
			mu.Unlock()
		}

		wg.Add(3)
		go func() {
			defer wg.Done()
			summary, _, err := dashboard.GetCostSummary(ctx)
			if err != nil {
				record("cost", err)
				return
			}
			mu.Lock()
			overview.Cost = response.ConvertCostSummary(summary)
			mu.Unlock()
		}()

		go func() {
			defer wg.Done()
			report, _, err := dashboard.GetWasteReport(ctx)
			if err != nil {
				record("waste", err)
				return
			}
			mu.Lock()
			overview.Waste = response.ConvertWasteReport("", report)
			mu.Unlock()
		}()

		go func() {
			defer wg.Done()
			score, _, err := dashboard.GetSecurityScore(ctx)
			if err != nil {
				record("security", err)
				return
			}
			mu.Lock()
			overview.Security = response.ConvertSecurityScore(score)
			mu.Unlock()
		}()

		wg.Wait()

		if len(overview.Errors) == 0 {
			overview.Errors = nil
		}
		return jsonResult(overview)
	}
}

func makeHealthHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(dashboard.GetHealth(ctx))
	}
}
