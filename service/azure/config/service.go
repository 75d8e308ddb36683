package azureconfig

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// NewService resolves credentials through DefaultAzureCredential: environment
// service principal, managed identity or an Azure CLI login.
func NewService(subscriptionID string) (*service, error) {
	credential, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	return NewServiceWithCredential(subscriptionID, credential), nil
}

// NewServiceWithCredential uses an already constructed credential
func NewServiceWithCredential(subscriptionID string, credential azcore.TokenCredential) *service {
	return &service{
		subscriptionID: subscriptionID,
		credential:     credential,
	}
}

func (s *service) GetCredential() azcore.TokenCredential {
	return s.credential
}

func (s *service) GetSubscriptionID() string {
	return s.subscriptionID
}
