package service

import (
	"context"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
)

// IdentityService provides the monitored subscription's identity
type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)
}

// CostService runs aggregate cost queries and the provider's month forecast
type CostService interface {
	Query(ctx context.Context, query model.CostQuery) ([]model.CostRow, error)
	Forecast(ctx context.Context, from, to time.Time) (float64, error)
}

// ResourceService lists resource groups and the resource inventory
type ResourceService interface {
	ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error)
	ListResources(ctx context.Context) (*model.ResourceInventory, error)
}

// WasteService provides compute/storage waste detection
type WasteService interface {
	GetWasteReport(ctx context.Context) (*model.WasteReport, error)
}

// SecurityService provides the Security Center posture
type SecurityService interface {
	GetSecurityScore(ctx context.Context) (*model.SecurityScore, error)
}

// PipelineService reads Azure DevOps projects and build activity
type PipelineService interface {
	ListProjects(ctx context.Context) ([]model.DevOpsProject, error)
	GetPipelineRuns(ctx context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error)
}

// TechStackService detects frameworks and runtimes from repository files
type TechStackService interface {
	GetTechStack(ctx context.Context) (*model.TechStack, error)
}

// VulnerabilityService checks a tech stack against an advisory database
type VulnerabilityService interface {
	Scan(ctx context.Context, stack []model.TechStackItem) *model.SecurityScan
}

// TaskService lists tracked work items
type TaskService interface {
	GetTasks(ctx context.Context) (*model.TaskList, error)
}

// HealthService probes the deployed environments
type HealthService interface {
	Check(ctx context.Context) *model.HealthReport
}
