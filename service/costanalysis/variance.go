package costanalysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

const (
	// SignificanceThreshold is the minimum absolute monthly change reported
	SignificanceThreshold = 100.0
	mediumImpactThreshold = 50.0
)

// DetectVariance compares consecutive complete months per service and returns
// the changes larger than SignificanceThreshold, by month then by size.
// The month containing now is excluded.
func DetectVariance(rows []model.CostRow, now time.Time) []model.VarianceChange {
	currentKey := PeriodKey(now)
	serviceCosts := make(map[string]map[string]float64)
	months := make(map[string]struct{})

	for _, row := range rows {
		if _, err := time.Parse(monthKeyLayout, row.PeriodKey); err != nil {
			continue
		}
		if row.PeriodKey == currentKey {
			continue
		}
		months[row.PeriodKey] = struct{}{}
		if serviceCosts[row.DimensionValue] == nil {
			serviceCosts[row.DimensionValue] = make(map[string]float64)
		}
		serviceCosts[row.DimensionValue][row.PeriodKey] += row.Cost
	}

	changes := []model.VarianceChange{}
	sortedMonths := lo.Keys(months)
	sort.Strings(sortedMonths)
	if len(sortedMonths) < 2 {
		return changes
	}

	services := lo.Keys(serviceCosts)
	sort.Strings(services)

	for i := 1; i < len(sortedMonths); i++ {
		prevMonth, currMonth := sortedMonths[i-1], sortedMonths[i]
		for _, service := range services {
			previous := serviceCosts[service][prevMonth]
			current := serviceCosts[service][currMonth]
			delta := current - previous
			if math.Abs(delta) <= SignificanceThreshold {
				continue
			}
			changes = append(changes, newVarianceChange(currMonth, service, previous, current))
		}
	}

	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Period != changes[j].Period {
			return changes[i].Period < changes[j].Period
		}
		return math.Abs(changes[i].Delta) > math.Abs(changes[j].Delta)
	})

	return changes
}

func newVarianceChange(month, service string, previous, current float64) model.VarianceChange {
	delta := current - previous
	direction, sign := "Increased", "+"
	if delta < 0 {
		direction, sign = "Decreased", "-"
	}

	return model.VarianceChange{
		PeriodLabel:   PeriodLabel(month),
		Period:        month,
		Dimension:     service,
		Delta:         delta,
		Previous:      previous,
		Current:       current,
		PercentChange: PercentChange(previous, current),
		Impact:        ClassifyImpact(delta),
		Change:        fmt.Sprintf("%s$%.2f", sign, math.Abs(delta)),
		Reason:        fmt.Sprintf("%s %s", service, direction),
	}
}

// PercentChange is relative to previous; growth from nothing counts as 100%
func PercentChange(previous, current float64) float64 {
	if previous > 0 {
		return (current - previous) / previous * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

// ClassifyImpact grades the absolute size of a change
func ClassifyImpact(delta float64) model.Impact {
	abs := math.Abs(delta)
	switch {
	case abs > SignificanceThreshold:
		return model.ImpactHigh
	case abs > mediumImpactThreshold:
		return model.ImpactMedium
	default:
		return model.ImpactLow
	}
}
