package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/saral-digital/ops-dashboard/cmd/mcp/response"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

// RegisterAzureTools registers the subscription, cost, waste and security tools
func RegisterAzureTools(s *server.MCPServer, dashboard orchestrator.OrchestratorService) {
	s.AddTool(
		mcp.NewTool("azure_list_subscriptions",
			mcp.WithDescription("List all enabled Azure subscriptions the current credential has access to"),
		),
		makeListSubscriptionsHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_subscription_info",
			mcp.WithDescription("Get the monitored Azure subscription ID and display name. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeSubscriptionInfoHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_summary",
			mcp.WithDescription("Get month-to-date Azure cost, the run-rate and Azure forecasts for this month, and last month's total. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeCostSummaryHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_trend",
			mcp.WithDescription("Get monthly Azure costs since COST_HISTORY_START with this month's forecast and summary statistics. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeCostTrendHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_variance",
			mcp.WithDescription("List significant month-over-month cost changes per Azure service with their impact. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeCostVarianceHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_cost_by_project",
			mcp.WithDescription("Get last month's cost and this month's projected cost per project tag. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeCostByProjectHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_untagged_costs",
			mcp.WithDescription("List resource groups without a project tag and their cost last month. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeUntaggedCostsHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_service_breakdown",
			mcp.WithDescription("Get the top Azure services by cost for one month. Requires AZURE_SUBSCRIPTION_ID."),
			mcp.WithString("month",
				mcp.Description("Month formatted as YYYY-MM, defaults to last month"),
			),
		),
		makeServiceBreakdownHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_waste_summary",
			mcp.WithDescription("Get a complete summary of Azure waste detection: unattached disks, unused IPs, deallocated VMs, and expiring reservations. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeWasteSummaryHandler(dashboard),
	)

	s.AddTool(
		mcp.NewTool("azure_get_security_score",
			mcp.WithDescription("Get the Security Center score with the top unhealthy recommendations. Requires AZURE_SUBSCRIPTION_ID."),
		),
		makeSecurityScoreHandler(dashboard),
	)
}

func makeListSubscriptionsHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subscriptions, err := dashboard.ListSubscriptions(ctx)
		if err != nil {
			return errorResult("subscriptions", err)
		}

		result := make([]response.AzureSubscription, 0, len(subscriptions))
		for _, sub := range subscriptions {
			result = append(result, response.AzureSubscription{
				SubscriptionID: sub.SubscriptionID,
				DisplayName:    sub.DisplayName,
				State:          sub.State,
			})
		}
		return jsonResult(result)
	}
}

func makeSubscriptionInfoHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := dashboard.GetAccountInfo(ctx)
		if err != nil {
			return errorResult("subscription info", err)
		}
		return jsonResult(response.ConvertAccountInfo(info))
	}
}

func makeCostSummaryHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, _, err := dashboard.GetCostSummary(ctx)
		if err != nil {
			return errorResult("cost summary", err)
		}
		return jsonResult(response.ConvertCostSummary(summary))
	}
}

func makeCostTrendHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		history, _, err := dashboard.GetCostHistory(ctx)
		if err != nil {
			return errorResult("cost trend", err)
		}
		return jsonResult(response.ConvertCostHistory(history))
	}
}

func makeCostVarianceHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		variance, _, err := dashboard.GetCostVariance(ctx)
		if err != nil {
			return errorResult("cost variance", err)
		}
		return jsonResult(response.ConvertVariance(variance))
	}
}

func makeCostByProjectHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		breakdown, _, err := dashboard.GetCostByResourceGroup(ctx)
		if err != nil {
			return errorResult("project costs", err)
		}
		return jsonResult(response.ConvertCostBreakdown(breakdown))
	}
}

func makeUntaggedCostsHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		untagged, _, err := dashboard.GetUntaggedCosts(ctx)
		if err != nil {
			return errorResult("untagged costs", err)
		}
		return jsonResult(untagged)
	}
}

func makeServiceBreakdownHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		breakdown, _, err := dashboard.GetServiceBreakdown(ctx, request.GetString("month", ""))
		if err != nil {
			return errorResult("service breakdown", err)
		}
		return jsonResult(breakdown)
	}
}

func makeWasteSummaryHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := dashboard.GetAccountInfo(ctx)
		if err != nil {
			return errorResult("subscription info", err)
		}

		report, _, err := dashboard.GetWasteReport(ctx)
		if err != nil {
			return errorResult("waste report", err)
		}
		return jsonResult(response.ConvertWasteReport(info.AccountID, report))
	}
}

func makeSecurityScoreHandler(dashboard orchestrator.OrchestratorService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		score, _, err := dashboard.GetSecurityScore(ctx)
		if err != nil {
			return errorResult("security score", err)
		}
		return jsonResult(response.ConvertSecurityScore(score))
	}
}
