package azureidentity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	subscriptionID string
	client         *armsubscriptions.Client
}

type IdentityService interface {
	GetAccountInfo(ctx context.Context) (*model.AccountInfo, error)
	ListSubscriptions(ctx context.Context) ([]model.Subscription, error)
}

// Credential is passed to allow reuse across services
type Credential = azcore.TokenCredential
