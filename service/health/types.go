package health

import (
	"context"
	"net/http"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	environments []model.Environment
	httpClient   *http.Client
	timeout      time.Duration
	now          func() time.Time
}

type HealthService interface {
	Check(ctx context.Context) *model.HealthReport
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultTimeout = 5 * time.Second
)

type probe struct {
	status  string
	latency *int64
}
