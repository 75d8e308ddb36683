package azureidentity

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
)

func TestEnabledSubscriptions(t *testing.T) {
	values := []*armsubscriptions.Subscription{
		{SubscriptionID: to.Ptr("sub-1"), DisplayName: to.Ptr("Production"), State: to.Ptr(armsubscriptions.SubscriptionStateEnabled)},
		{SubscriptionID: to.Ptr("sub-2"), State: to.Ptr(armsubscriptions.SubscriptionStateEnabled)},
		{SubscriptionID: to.Ptr("sub-3"), State: to.Ptr(armsubscriptions.SubscriptionStateDisabled)},
		{DisplayName: to.Ptr("no id"), State: to.Ptr(armsubscriptions.SubscriptionStateEnabled)},
		nil,
	}

	assert.Equal(t, []model.Subscription{
		{SubscriptionID: "sub-1", DisplayName: "Production", State: "Enabled"},
		{SubscriptionID: "sub-2", DisplayName: "sub-2", State: "Enabled"},
	}, enabledSubscriptions(values))
}
