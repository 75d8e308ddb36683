package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/config"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service"
	"github.com/saral-digital/ops-dashboard/service/cache"
)

// Services are the upstream clients composed by the orchestrator.
// A nil field means the matching configuration is missing; the Require checks
// on Config run before any of them is used.
type Services struct {
	Identity        service.IdentityService
	Cost            service.CostService
	Resources       service.ResourceService
	Waste           service.WasteService
	Security        service.SecurityService
	Pipelines       service.PipelineService
	TechStack       service.TechStackService
	Vulnerabilities service.VulnerabilityService
	Tasks           service.TaskService
	Health          service.HealthService
}

type orchestratorService struct {
	cfg      *config.Config
	services Services
	cache    *cache.Store
	logger   zerolog.Logger
	now      func() time.Time
}

// OrchestratorService exposes one method per dashboard view. Cached views
// also report whether the payload came from the cache.
type OrchestratorService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)

	GetCostSummary(ctx context.Context) (*model.CostSummary, bool, error)
	GetCostHistory(ctx context.Context) (*model.CostHistory, bool, error)
	GetCostVariance(ctx context.Context) (*model.CostVariance, bool, error)
	GetCostByResourceGroup(ctx context.Context) (*model.CostBreakdown, bool, error)
	GetUntaggedCosts(ctx context.Context) (*model.UntaggedCosts, bool, error)
	GetServiceBreakdown(ctx context.Context, month string) (*model.ServiceBreakdown, bool, error)

	GetResources(ctx context.Context) (*model.ResourceInventory, bool, error)
	GetWasteReport(ctx context.Context) (*model.WasteReport, bool, error)
	GetSecurityScore(ctx context.Context) (*model.SecurityScore, bool, error)
	GetTechStack(ctx context.Context) (*model.TechStack, bool, error)
	GetSecurityScan(ctx context.Context) (*model.SecurityScan, bool, error)

	GetProjects(ctx context.Context) (*model.DevOpsProjects, error)
	GetPipelineRuns(ctx context.Context, projects []string, includeScans bool) (*model.PipelineRuns, error)
	GetTasks(ctx context.Context) (*model.TaskList, error)
	GetHealth(ctx context.Context) *model.HealthReport
}

// Cache keys, one per endpoint. The service breakdown key is suffixed with the month.
const (
	KeyCost             = "cost"
	KeyCostHistory      = "cost-history"
	KeyCostVariance     = "cost-variance"
	KeyCostByRG         = "cost-by-rg"
	KeyUntaggedCosts    = "untagged-costs"
	KeyServiceBreakdown = "service-breakdown"
	KeyResources        = "resources"
	KeyWaste            = "waste"
	KeySecurityScore    = "security-score"
	KeyTechStack        = "tech-stack"
	KeySecurityScan     = "security-scan"
)

const (
	costTTL     = 5 * time.Minute
	analysisTTL = 15 * time.Minute
	resourceTTL = 10 * time.Minute
	securityTTL = time.Hour
)
