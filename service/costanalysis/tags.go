package costanalysis

import (
	"strings"

	"github.com/saral-digital/ops-dashboard/model"
)

// ProjectTag is the resource group tag that names the owning project
const ProjectTag = "project"

// ResolveProjectTags maps lowercased resource group names to their project tag.
// Groups without the tag are left out.
func ResolveProjectTags(groups []model.ResourceGroup) map[string]string {
	tags := make(map[string]string, len(groups))
	for _, rg := range groups {
		project, ok := rg.Tags[ProjectTag]
		if !ok || project == "" {
			continue
		}
		tags[strings.ToLower(rg.Name)] = project
	}
	return tags
}
