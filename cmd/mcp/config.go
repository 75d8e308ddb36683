package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/config"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
	"github.com/saral-digital/ops-dashboard/utils"
)

const serverName = "ops-dashboard-mcp"

var version = "dev"

// loadDashboard builds the orchestrator from the environment. Stdout carries
// the MCP protocol so logs go to stderr.
func loadDashboard() (orchestrator.OrchestratorService, zerolog.Logger, error) {
	cfg := config.LoadConfig()
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr).
		With().Str("component", "mcp").Logger()

	dashboard, err := orchestrator.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, logger, err
	}
	return dashboard, logger, nil
}
