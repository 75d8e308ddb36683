package azuresecurity

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/security/armsecurity"
	"github.com/saral-digital/ops-dashboard/model"
)

type service struct {
	scope  string
	client *armsecurity.AssessmentsClient
}

type SecurityService interface {
	GetSecurityScore(ctx context.Context) (*model.SecurityScore, error)
}

// Credential is passed to allow reuse across services
type Credential = azcore.TokenCredential

const topUnhealthy = 10
