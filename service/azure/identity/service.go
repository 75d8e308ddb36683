package azureidentity

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

func NewService(subscriptionID string, credential Credential) (*service, error) {
	client, err := armsubscriptions.NewClient(credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	return &service{
		subscriptionID: subscriptionID,
		client:         client,
	}, nil
}

// GetAccountInfo names the monitored subscription, falling back to its ID
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	resp, err := s.client.Get(ctx, s.subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription info: %w", err)
	}

	return &model.AccountInfo{
		Provider:    "azure",
		AccountID:   s.subscriptionID,
		AccountName: lo.FromPtrOr(resp.DisplayName, s.subscriptionID),
	}, nil
}

// ListSubscriptions returns the enabled subscriptions the credential can read
func (s *service) ListSubscriptions(ctx context.Context) ([]model.Subscription, error) {
	var subscriptions []model.Subscription

	pager := s.client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list subscriptions: %w", err)
		}
		subscriptions = append(subscriptions, enabledSubscriptions(page.Value)...)
	}

	return subscriptions, nil
}

func enabledSubscriptions(values []*armsubscriptions.Subscription) []model.Subscription {
	var result []model.Subscription
	for _, sub := range values {
		if sub == nil || sub.SubscriptionID == nil || sub.State == nil {
			continue
		}
		if *sub.State != armsubscriptions.SubscriptionStateEnabled {
			continue
		}
		result = append(result, model.Subscription{
			SubscriptionID: *sub.SubscriptionID,
			DisplayName:    lo.FromPtrOr(sub.DisplayName, *sub.SubscriptionID),
			State:          string(*sub.State),
		})
	}
	return result
}
