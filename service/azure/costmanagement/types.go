package azurecostmanagement

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/saral-digital/ops-dashboard/service/retry"
)

type service struct {
	scope    string
	query    queryClient
	forecast forecastClient
	retry    retry.Options
}

// queryClient is the subset of armcostmanagement.QueryClient used here
type queryClient interface {
	Usage(ctx context.Context, scope string, parameters armcostmanagement.QueryDefinition, options *armcostmanagement.QueryClientUsageOptions) (armcostmanagement.QueryClientUsageResponse, error)
}

// forecastClient is the subset of armcostmanagement.ForecastClient used here
type forecastClient interface {
	Usage(ctx context.Context, scope string, parameters armcostmanagement.ForecastDefinition, options *armcostmanagement.ForecastClientUsageOptions) (armcostmanagement.ForecastClientUsageResponse, error)
}

type CostManagementService interface {
	Query(ctx context.Context, query model.CostQuery) ([]model.CostRow, error)
	Forecast(ctx context.Context, from, to time.Time) (float64, error)
}

// Credential is passed to allow reuse across services
type Credential = azcore.TokenCredential

const source = "azure-cost-management"
