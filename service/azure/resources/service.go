package azureresources

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

func NewService(subscriptionID string, credential Credential) (*service, error) {
	groupsClient, err := armresources.NewResourceGroupsClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	resourcesClient, err := armresources.NewClient(subscriptionID, credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resources client: %w", err)
	}

	return &service{
		groupsClient:    groupsClient,
		resourcesClient: resourcesClient,
	}, nil
}

// ListResourceGroups returns every resource group of the subscription with its tags
func (s *service) ListResourceGroups(ctx context.Context) ([]model.ResourceGroup, error) {
	var groups []model.ResourceGroup

	pager := s.groupsClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resource groups: %w", err)
		}

		for _, rg := range page.Value {
			if rg == nil || rg.Name == nil {
				continue
			}
			groups = append(groups, model.ResourceGroup{
				Name: *rg.Name,
				Tags: flattenTags(rg.Tags),
			})
		}
	}

	return groups, nil
}

// ListResources returns the subscription inventory sorted by type then name
func (s *service) ListResources(ctx context.Context) (*model.ResourceInventory, error) {
	resources := []model.Resource{}

	pager := s.resourcesClient.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list resources: %w", err)
		}

		for _, res := range page.Value {
			if res == nil {
				continue
			}
			resources = append(resources, toResource(res))
		}
	}

	SortInventory(resources)

	return &model.ResourceInventory{
		Total:     len(resources),
		Resources: resources,
	}, nil
}

// SortInventory orders resources by short type, then by name
func SortInventory(resources []model.Resource) {
	sort.SliceStable(resources, func(i, j int) bool {
		if resources[i].Type != resources[j].Type {
			return resources[i].Type < resources[j].Type
		}
		return resources[i].Name < resources[j].Name
	})
}

func toResource(res *armresources.GenericResourceExpanded) model.Resource {
	id := lo.FromPtr(res.ID)
	fullType := lo.FromPtr(res.Type)

	return model.Resource{
		ID:            id,
		Name:          lo.FromPtr(res.Name),
		Type:          ShortType(fullType),
		FullType:      fullType,
		Location:      lo.FromPtr(res.Location),
		ResourceGroup: ResourceGroupFromID(id),
		Tags:          flattenTags(res.Tags),
	}
}

// ShortType returns the last segment of a resource type such as
// "Microsoft.Web/sites" → "sites"
func ShortType(fullType string) string {
	if idx := strings.LastIndex(fullType, "/"); idx >= 0 {
		return fullType[idx+1:]
	}
	return fullType
}

// ResourceGroupFromID reads the resource group segment of a resource ID
func ResourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "resourceGroups") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return "Unknown"
}

func flattenTags(tags map[string]*string) map[string]string {
	flat := make(map[string]string, len(tags))
	for key, value := range tags {
		flat[key] = lo.FromPtr(value)
	}
	return flat
}
