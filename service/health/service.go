package health

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
	"golang.org/x/sync/errgroup"
)

func NewService(environments []model.Environment, httpClient *http.Client) *service {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &service{
		environments: environments,
		httpClient:   httpClient,
		timeout:      defaultTimeout,
		now:          time.Now,
	}
}

// Check probes every environment's frontend and backend concurrently. Each
// probe is bounded by the timeout; a failed probe is unhealthy with no latency.
func (s *service) Check(ctx context.Context) *model.HealthReport {
	results := make([]model.EnvironmentHealth, len(s.environments))

	var g errgroup.Group
	for i, env := range s.environments {
		g.Go(func() error {
			var frontend, backend probe
			var pair errgroup.Group
			pair.Go(func() error { frontend = s.probe(ctx, env.URL); return nil })
			pair.Go(func() error { backend = s.probe(ctx, env.BackendURL); return nil })
			_ = pair.Wait()

			results[i] = model.EnvironmentHealth{
				Name:                env.Name,
				URL:                 env.URL,
				Status:              frontend.status,
				ResponseTime:        frontend.latency,
				BackendStatus:       backend.status,
				BackendResponseTime: backend.latency,
			}
			return nil
		})
	}
	_ = g.Wait()

	return &model.HealthReport{
		Environments: results,
		Timestamp:    s.now().UTC().Format(time.RFC3339),
	}
}

func (s *service) probe(ctx context.Context, url string) probe {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return probe{status: StatusUnhealthy}
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return probe{status: StatusUnhealthy}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	latency := time.Since(start).Milliseconds()
	status := StatusHealthy
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status = StatusUnhealthy
	}
	return probe{status: status, latency: &latency}
}
