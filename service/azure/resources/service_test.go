package azureresources

import (
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
)

func TestToResource(t *testing.T) {
	res := toResource(&armresources.GenericResourceExpanded{
		ID:       to.Ptr("/subscriptions/sub/resourceGroups/rg-web/providers/Microsoft.Web/sites/portal"),
		Name:     to.Ptr("portal"),
		Type:     to.Ptr("Microsoft.Web/sites"),
		Location: to.Ptr("westeurope"),
		Tags:     map[string]*string{"project": to.Ptr("Portal"), "empty": nil},
	})

	assert.Equal(t, model.Resource{
		ID:            "/subscriptions/sub/resourceGroups/rg-web/providers/Microsoft.Web/sites/portal",
		Name:          "portal",
		Type:          "sites",
		FullType:      "Microsoft.Web/sites",
		Location:      "westeurope",
		ResourceGroup: "rg-web",
		Tags:          map[string]string{"project": "Portal", "empty": ""},
	}, res)
}

func TestResourceGroupFromID(t *testing.T) {
	assert.Equal(t, "rg-a", ResourceGroupFromID("/subscriptions/s/resourcegroups/rg-a/providers/x/y/z"))
	assert.Equal(t, "Unknown", ResourceGroupFromID("/subscriptions/s"))
	assert.Equal(t, "Unknown", ResourceGroupFromID(""))
}

func TestShortType(t *testing.T) {
	assert.Equal(t, "servers", ShortType("Microsoft.Sql/servers"))
	assert.Equal(t, "databases", ShortType("Microsoft.Sql/servers/databases"))
	assert.Equal(t, "plain", ShortType("plain"))
}

func TestSortInventory(t *testing.T) {
	resources := []model.Resource{
		{Name: "b", Type: "sites"},
		{Name: "z", Type: "disks"},
		{Name: "a", Type: "sites"},
	}

	SortInventory(resources)

	assert.Equal(t, []model.Resource{
		{Name: "z", Type: "disks"},
		{Name: "a", Type: "sites"},
		{Name: "b", Type: "sites"},
	}, resources)
}
