package azureresources

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	groupsClient    *armresources.ResourceGroupsClient
	resourcesClient *armresources.Client
}

type ResourceService interface {
	ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error)
	ListResources(ctx context.Context) (*model.ResourceInventory, error)
}

// Credential is passed to allow reuse across services
type Credential = azcore.TokenCredential
