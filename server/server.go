package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

func New(dashboard orchestrator.OrchestratorService, logger zerolog.Logger, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}

	s := &Server{
		echo:      e,
		dashboard: dashboard,
		metrics:   newMetrics(),
		logger:    logger.With().Str("component", "server").Logger(),
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(s.observe)
	e.Use(middleware.Recover())

	s.routes()
	e.HTTPErrorHandler = s.handleError(s.static(opts.UIDir))
	return s
}

func (s *Server) routes() {
	azure := s.echo.Group("/api/azure")
	azure.GET("/cost", cachedJSON(s, orchestrator.KeyCost, s.dashboard.GetCostSummary))
	azure.GET("/cost-history", cachedJSON(s, orchestrator.KeyCostHistory, s.dashboard.GetCostHistory))
	azure.GET("/cost-variance", cachedJSON(s, orchestrator.KeyCostVariance, s.dashboard.GetCostVariance))
	azure.GET("/cost-by-rg", cachedJSON(s, orchestrator.KeyCostByRG, s.dashboard.GetCostByResourceGroup))
	azure.GET("/untagged-costs", cachedJSON(s, orchestrator.KeyUntaggedCosts, s.dashboard.GetUntaggedCosts))
	azure.GET("/service-breakdown", s.serviceBreakdown)
	azure.GET("/resources", cachedJSON(s, orchestrator.KeyResources, s.dashboard.GetResources))
	azure.GET("/waste", cachedJSON(s, orchestrator.KeyWaste, s.dashboard.GetWasteReport))
	azure.GET("/security-score", cachedJSON(s, orchestrator.KeySecurityScore, s.dashboard.GetSecurityScore))
	azure.GET("/tech-stack", cachedJSON(s, orchestrator.KeyTechStack, s.dashboard.GetTechStack))
	azure.GET("/security-scan", cachedJSON(s, orchestrator.KeySecurityScan, s.dashboard.GetSecurityScan))
	azure.GET("/projects", s.projects)
	azure.GET("/pipeline-runs", s.pipelineRuns)

	s.echo.GET("/api/jira/tasks", s.tasks)
	s.echo.GET("/api/health", s.health)
	s.echo.GET("/metrics", s.metrics.handler())
}

// static serves a built UI when dir contains index.html and returns the index
// path used for SPA fallback, or "" when there is no UI
func (s *Server) static(dir string) string {
	if dir == "" {
		return ""
	}
	indexPath := filepath.Join(dir, "index.html")
	if fi, err := os.Stat(indexPath); err != nil || fi.IsDir() {
		s.logger.Warn().Str("dir", dir).Msg("UI directory has no index.html, static serving disabled")
		return ""
	}

	s.echo.Static("/", dir)
	s.echo.GET("/", func(c echo.Context) error { return c.File(indexPath) })
	return indexPath
}

// observe records request metrics and writes errors before the status is read
func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		status := c.Response().Status
		elapsed := time.Since(start)
		s.metrics.observeRequest(route, c.Request().Method, status, elapsed)

		s.logger.Debug().
			Str("method", c.Request().Method).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request")
		return nil
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("starting dashboard server")
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
