package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/saral-digital/ops-dashboard/service/orchestrator"
)

// cachedJSON adapts a cached orchestrator view to a handler that sets X-Cache
func cachedJSON[T any](s *Server, key string, fetch func(ctx context.Context) (T, bool, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, hit, err := fetch(c.Request().Context())
		if err != nil {
			return err
		}
		return s.writeCached(c, key, payload, hit)
	}
}

func (s *Server) writeCached(c echo.Context, key string, payload any, hit bool) error {
	s.metrics.observeCache(key, hit)
	header := cacheMiss
	if hit {
		header = cacheHit
	}
	c.Response().Header().Set(headerCache, header)
	return c.JSON(http.StatusOK, payload)
}

func (s *Server) serviceBreakdown(c echo.Context) error {
	breakdown, hit, err := s.dashboard.GetServiceBreakdown(c.Request().Context(), c.QueryParam("month"))
	if err != nil {
		return err
	}
	return s.writeCached(c, orchestrator.KeyServiceBreakdown, breakdown, hit)
}

func (s *Server) projects(c echo.Context) error {
	projects, err := s.dashboard.GetProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// pipelineRuns accepts ?projects=a,b and ?includeScans=true
func (s *Server) pipelineRuns(c echo.Context) error {
	var projects []string
	for _, name := range strings.Split(c.QueryParam("projects"), ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			projects = append(projects, trimmed)
		}
	}
	includeScans := c.QueryParam("includeScans") == "true"

	runs, err := s.dashboard.GetPipelineRuns(c.Request().Context(), projects, includeScans)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, runs)
}

func (s *Server) tasks(c echo.Context) error {
	tasks, err := s.dashboard.GetTasks(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, s.dashboard.GetHealth(c.Request().Context()))
}
