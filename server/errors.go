package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/saral-digital/ops-dashboard/model"
)

// statusFor maps an orchestrator error to the HTTP status and body returned
// to the client
func statusFor(err error) (int, errorResponse) {
	var missing *model.ConfigurationMissingError
	if errors.As(err, &missing) {
		return http.StatusInternalServerError, errorResponse{
			Error:   "Configuration missing",
			Details: missing.Error(),
		}
	}

	var fetchErr *model.FetchFailedError
	if errors.As(err, &fetchErr) {
		status := http.StatusInternalServerError
		if fetchErr.StatusCode >= 400 && fetchErr.StatusCode <= 599 {
			status = fetchErr.StatusCode
		}
		return status, errorResponse{
			Error:   "Failed to fetch " + fetchErr.Source + " data",
			Details: fetchErr.Message,
		}
	}

	if errors.Is(err, model.ErrInvalidMonth) {
		return http.StatusBadRequest, errorResponse{Error: "Invalid request", Details: err.Error()}
	}

	return http.StatusInternalServerError, errorResponse{Error: "Internal error", Details: err.Error()}
}

// handleError writes API failures as {error, details}. Unknown non-API paths
// fall back to the UI index when one is configured.
func (s *Server) handleError(indexPath string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.Code == http.StatusNotFound && indexPath != "" && !strings.HasPrefix(c.Request().URL.Path, "/api") {
				_ = c.File(indexPath)
				return
			}
			s.echo.DefaultHTTPErrorHandler(err, c)
			return
		}

		status, body := statusFor(err)

		var fetchErr *model.FetchFailedError
		if errors.As(err, &fetchErr) {
			s.metrics.observeUpstreamError(fetchErr.Source)
		}
		s.logger.Error().
			Err(err).
			Str("endpoint", c.Path()).
			Int("status", status).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("request failed")

		if jsonErr := c.JSON(status, body); jsonErr != nil {
			s.logger.Error().Err(jsonErr).Msg("failed to write error response")
		}
	}
}
