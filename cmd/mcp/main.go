package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/saral-digital/ops-dashboard/cmd/mcp/tools"
)

func main() {
	dashboard, logger, err := loadDashboard()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Setup error: %v\n", err)
		os.Exit(1)
	}

	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
	)

	tools.RegisterAzureTools(s, dashboard)
	tools.RegisterDeliveryTools(s, dashboard)
	tools.RegisterOverviewTools(s, dashboard)

	logger.Info().Str("version", version).Msg("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Error().Err(err).Msg("MCP server stopped")
		os.Exit(1)
	}
}
