package server

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

// Server serves the dashboard JSON API, Prometheus metrics and an optional
// built UI directory
type Server struct {
	echo      *echo.Echo
	dashboard orchestrator.OrchestratorService
	metrics   *metrics
	logger    zerolog.Logger
}

// Options configures New
type Options struct {
	// UIDir holds a built single page app; empty disables static serving
	UIDir string
}

// errorResponse is the body of every failed API call
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

const (
	headerCache = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)
