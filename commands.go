package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/saral-digital/ops-dashboard/config"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/server"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
	"github.com/saral-digital/ops-dashboard/utils"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var flags model.Flags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if flags.ListenAddr != "" {
				cfg.ListenAddr = flags.ListenAddr
			}
			if flags.UIDir != "" {
				cfg.UIDir = flags.UIDir
			}
			logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)

			dashboard, err := orchestrator.NewFromConfig(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(dashboard, logger, server.Options{UIDir: cfg.UIDir}).Run(ctx, cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&flags.ListenAddr, "addr", "", "listen address, overrides LISTEN_ADDR")
	cmd.Flags().StringVar(&flags.UIDir, "ui", "", "built UI directory, overrides UI_DIR")
	return cmd
}

func newReportCmd() *cobra.Command {
	var flags model.Flags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print this month's cost summary, project breakdown and significant changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := newReportDashboard()
			if err != nil {
				return err
			}
			if flags.Waste {
				return wasteWorkflow(cmd.Context(), dashboard)
			}
			return defaultWorkflow(cmd.Context(), dashboard)
		},
	}

	cmd.Flags().BoolVar(&flags.Waste, "waste", false, "report idle resources instead of costs")
	return cmd
}

func newTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Chart monthly costs since COST_HISTORY_START",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := newReportDashboard()
			if err != nil {
				return err
			}
			return trendWorkflow(cmd.Context(), dashboard)
		},
	}
}

// newReportDashboard logs to stderr so tables on stdout stay clean
func newReportDashboard() (orchestrator.OrchestratorService, error) {
	cfg := config.LoadConfig()
	logger := utils.NewLogger(cfg.LogLevel, "console", os.Stderr)
	return orchestrator.NewFromConfig(cfg, logger)
}

func defaultWorkflow(ctx context.Context, dashboard orchestrator.OrchestratorService) error {
	utils.DrawBanner()
	utils.StartSpinner()
	defer utils.StopSpinner()

	account, err := dashboard.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	summary, _, err := dashboard.GetCostSummary(ctx)
	if err != nil {
		return err
	}

	breakdown, _, err := dashboard.GetCostByResourceGroup(ctx)
	if err != nil {
		return err
	}

	variance, _, err := dashboard.GetCostVariance(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawCostTable(*account, *summary, *breakdown)
	utils.DrawVarianceTable(variance.Changes)
	return nil
}

func trendWorkflow(ctx context.Context, dashboard orchestrator.OrchestratorService) error {
	utils.StartSpinner()
	defer utils.StopSpinner()

	account, err := dashboard.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	history, _, err := dashboard.GetCostHistory(ctx)
	if err != nil {
		return err
	}

	summary, _, err := dashboard.GetCostSummary(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawTrendChart(*account, history.History, summary.Currency)
	return nil
}

func wasteWorkflow(ctx context.Context, dashboard orchestrator.OrchestratorService) error {
	utils.StartSpinner()
	defer utils.StopSpinner()

	account, err := dashboard.GetAccountInfo(ctx)
	if err != nil {
		return err
	}

	report, _, err := dashboard.GetWasteReport(ctx)
	if err != nil {
		return err
	}

	utils.StopSpinner()

	utils.DrawWasteTable(*account, *report)
	return nil
}
