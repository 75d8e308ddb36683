package orchestrator

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/saral-digital/ops-dashboard/config"
	azurecompute "github.com/saral-digital/ops-dashboard/service/azure/compute"
	azureconfig "github.com/saral-digital/ops-dashboard/service/azure/config"
	azurecostmanagement "github.com/saral-digital/ops-dashboard/service/azure/costmanagement"
	azureidentity "github.com/saral-digital/ops-dashboard/service/azure/identity"
	azureresources "github.com/saral-digital/ops-dashboard/service/azure/resources"
	azuresecurity "github.com/saral-digital/ops-dashboard/service/azure/security"
	"github.com/saral-digital/ops-dashboard/service/cache"
	"github.com/saral-digital/ops-dashboard/service/devops"
	"github.com/saral-digital/ops-dashboard/service/health"
	"github.com/saral-digital/ops-dashboard/service/jira"
	"github.com/saral-digital/ops-dashboard/service/osv"
	"github.com/saral-digital/ops-dashboard/service/techstack"
)

const upstreamTimeout = 30 * time.Second

// NewFromConfig builds every upstream client the configuration allows.
// Unconfigured upstreams stay nil and their views report the missing variable.
func NewFromConfig(cfg *config.Config, logger zerolog.Logger) (*orchestratorService, error) {
	for _, invalid := range cfg.Invalid {
		logger.Warn().
			Str("variable", invalid.Variable).
			Str("value", invalid.Value).
			Str("expected", invalid.Expected).
			Msg("ignoring malformed environment variable, using default")
	}

	httpClient := &http.Client{Timeout: upstreamTimeout}

	services := Services{
		Vulnerabilities: osv.NewService(httpClient, logger),
		Health:          health.NewService(cfg.HealthEnvironments, nil),
	}

	if cfg.HasAzure() {
		if err := newAzureServices(cfg.AzureSubscriptionID, &services); err != nil {
			return nil, err
		}
	}

	if cfg.RequireDevOps() == nil {
		devopsService := devops.NewService(cfg.DevOpsOrg, cfg.DevOpsPAT, httpClient, logger)
		services.Pipelines = devopsService
		services.TechStack = techstack.NewService(devopsService, cfg.TechStackProject,
			cfg.TechStackFrontendRepos, cfg.TechStackBackendRepos, logger)
	}

	if cfg.RequireJira() == nil {
		services.Tasks = jira.NewService(cfg.JiraDomain, cfg.JiraEmail, cfg.JiraAPIToken, cfg.JiraProjectKey, httpClient)
	}

	return NewService(cfg, services, cache.NewStore(), logger), nil
}

func newAzureServices(subscriptionID string, services *Services) error {
	cfgService, err := azureconfig.NewService(subscriptionID)
	if err != nil {
		return err
	}
	credential := cfgService.GetCredential()

	identityService, err := azureidentity.NewService(subscriptionID, credential)
	if err != nil {
		return fmt.Errorf("failed to create Azure identity service: %w", err)
	}

	costService, err := azurecostmanagement.NewService(subscriptionID, credential)
	if err != nil {
		return fmt.Errorf("failed to create Azure cost service: %w", err)
	}

	resourceService, err := azureresources.NewService(subscriptionID, credential)
	if err != nil {
		return fmt.Errorf("failed to create Azure resource service: %w", err)
	}

	computeService, err := azurecompute.NewService(subscriptionID, credential)
	if err != nil {
		return fmt.Errorf("failed to create Azure compute service: %w", err)
	}

	securityService, err := azuresecurity.NewService(subscriptionID, credential)
	if err != nil {
		return fmt.Errorf("failed to create Azure security service: %w", err)
	}

	services.Identity = identityService
	services.Cost = costService
	services.Resources = resourceService
	services.Waste = computeService
	services.Security = securityService
	return nil
}
