package costanalysis

import (
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

const (
	// OtherProject collects spend from resource groups without a project tag
	OtherProject = "Other"

	displayThreshold    = 1.0
	untaggedMinimumCost = 0.01
	topServiceCount     = 10
)

// SumByResourceGroup totals rows per lowercased resource group name
func SumByResourceGroup(rows []model.CostRow) map[string]float64 {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[strings.ToLower(row.DimensionValue)] += row.Cost
	}
	return sums
}

// ProjectRunRate forecasts every resource group's month-to-date spend
func ProjectRunRate(actual map[string]float64, daysElapsed, daysInMonth int) map[string]float64 {
	return lo.MapValues(actual, func(cost float64, _ string) float64 {
		return RunRateForecast(cost, daysElapsed, daysInMonth)
	})
}

// BuildBreakdown attributes resource group spend to projects. Groups with no
// tag entry roll into OtherProject. Entries whose actual and projected costs
// are both at most one currency unit are dropped. Entries are sorted by name
// with OtherProject last, and the totals cover the kept entries only.
func BuildBreakdown(tags map[string]string, actual, projected map[string]float64) model.CostBreakdown {
	byProject := make(map[string]*model.CostBreakdownEntry)
	other := &model.CostBreakdownEntry{Name: OtherProject}
	entryFor := func(rg string) *model.CostBreakdownEntry {
		project, ok := tags[rg]
		if !ok {
			return other
		}
		entry, ok := byProject[project]
		if !ok {
			entry = &model.CostBreakdownEntry{Name: project}
			byProject[project] = entry
		}
		return entry
	}

	for rg, cost := range actual {
		entryFor(rg).Actual += cost
	}
	for rg, cost := range projected {
		entryFor(rg).Projected += cost
	}

	entries := make([]model.CostBreakdownEntry, 0, len(byProject)+1)
	for _, entry := range byProject {
		if visible(*entry) {
			entries = append(entries, *entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	if visible(*other) {
		entries = append(entries, *other)
	}

	breakdown := model.CostBreakdown{Breakdown: entries}
	for _, entry := range entries {
		breakdown.TotalActual += entry.Actual
		breakdown.TotalProjected += entry.Projected
	}
	return breakdown
}

func visible(entry model.CostBreakdownEntry) bool {
	return entry.Actual > displayThreshold || entry.Projected > displayThreshold
}

// UntaggedResourceGroups lists resource groups without a project tag that had
// spend above one cent, most expensive first.
func UntaggedResourceGroups(tags map[string]string, costs map[string]float64) []model.ResourceGroupCost {
	groups := []model.ResourceGroupCost{}
	for rg, cost := range costs {
		if _, tagged := tags[rg]; tagged || cost <= untaggedMinimumCost {
			continue
		}
		groups = append(groups, model.ResourceGroupCost{Name: rg, Cost: cost})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Cost != groups[j].Cost {
			return groups[i].Cost > groups[j].Cost
		}
		return groups[i].Name < groups[j].Name
	})
	return groups
}

// TopServices totals rows per service and keeps the ten most expensive. The
// returned total covers every service, not just the ones kept.
func TopServices(rows []model.CostRow) ([]model.ServiceCost, float64) {
	sums := make(map[string]float64)
	for _, row := range rows {
		sums[row.DimensionValue] += row.Cost
	}

	services := make([]model.ServiceCost, 0, len(sums))
	for name, cost := range sums {
		services = append(services, model.ServiceCost{Service: name, Cost: cost})
	}
	sort.Slice(services, func(i, j int) bool {
		if services[i].Cost != services[j].Cost {
			return services[i].Cost > services[j].Cost
		}
		return services[i].Service < services[j].Service
	})

	total := lo.SumBy(services, func(s model.ServiceCost) float64 { return s.Cost })
	if len(services) > topServiceCount {
		services = services[:topServiceCount]
	}
	return services, total
}
