package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

// RegisterDeliveryTools registers the Azure DevOps, vulnerability and Jira tools
func RegisterDeliveryTools(s *server.MCPServer, dashboard orchestrator.OrchestratorService) {
	s.AddTool(
		mcp.NewTool("devops_list_projects",
			mcp.WithDescription("List Azure DevOps projects. Requires AZURE_DEVOPS_ORG and AZURE_DEVOPS_PAT."),
		),
		makeProjectsHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("devops_get_pipeline_runs",
			mcp.WithDescription("Get the latest pipeline runs per project. Requires AZURE_DEVOPS_ORG and AZURE_DEVOPS_PAT."),
			mcp.WithString("projects",
				mcp.Description("Comma separated project names, defaults to all projects"),
			),
			mcp.WithBoolean("include_scans",
				mcp.Description("Include parsed security scan tasks for each run"),
			),
		),
		makePipelineRunsHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("devops_get_security_scan",
			mcp.WithDescription("Scan the detected tech stack against the OSV vulnerability database"),
		),
		makeSecurityScanHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("jira_get_tasks",
			mcp.WithDescription("List open Jira tasks. Requires JIRA_DOMAIN, JIRA_PROJECT_KEY, JIRA_EMAIL and JIRA_API_TOKEN."),
		),
		makeTasksHandler(dashboard),
	)
}

func makeProjectsHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := dashboard.GetProjects(ctx)
		if err != nil {
			return errorResult("projects", err)
		}
		return jsonResult(projects)
	}
}

func makePipelineRunsHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runs, err := dashboard.GetPipelineRuns(ctx,
			splitProjects(request.GetString("projects", "")),
			request.GetBool("include_scans", false),
		)
		if err != nil {
			return errorResult("pipeline runs", err)
		}
		return jsonResult(runs)
	}
}

func makeSecurityScanHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		scan, _, err := dashboard.GetSecurityScan(ctx)
		if err != nil {
			return errorResult("security scan", err)
		}
		return jsonResult(scan)
	}
}

func makeTasksHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tasks, err := dashboard.GetTasks(ctx)
		if err != nil {
			return errorResult("tasks", err)
		}
		return jsonResult(tasks)
	}
}

func splitProjects(value string) []string {
	return lo.Compact(lo.Map(strings.Split(value, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
}
