package response

import (
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertCostSummary converts model.CostSummary and derives the comparison
// against last month from the run-rate forecast
func ConvertCostSummary(summary *model.CostSummary) *CostSummary {
	if summary == nil {
		return nil
	}

	difference := summary.ForecastCost - summary.LastMonthCost
	percent := 0.0
	if summary.LastMonthCost > 0 {
		percent = difference / summary.LastMonthCost * 100
	}

	return &CostSummary{
		ActualCost:      summary.ActualCost,
		RunRateForecast: summary.ForecastCost,
		AzureForecast:   summary.AzureForecastCost,
		LastMonthCost:   summary.LastMonthCost,
		Difference:      difference,
		PercentChange:   percent,
		Currency:        summary.Currency,
	}
}

// ConvertCostHistory converts the chart series to a trend. Forecast-only
// points are listed but excluded from the summary statistics.
func ConvertCostHistory(history *model.CostHistory) *CostTrend {
	if history == nil || len(history.History) == 0 {
		return &CostTrend{
			Months:  []MonthCost{},
			Summary: TrendSummary{},
		}
	}

	months := make([]MonthCost, 0, len(history.History))
	var summary TrendSummary
	complete := 0

	for _, point := range history.History {
		if point.ActualCost == nil {
			if point.ForecastCost != nil {
				months = append(months, MonthCost{
					Month:    point.Period,
					Label:    point.PeriodLabel,
					Amount:   *point.ForecastCost,
					Forecast: true,
				})
			}
			continue
		}

		amount := *point.ActualCost
		months = append(months, MonthCost{
			Month:  point.Period,
			Label:  point.PeriodLabel,
			Amount: amount,
		})

		summary.TotalSpend += amount
		if complete == 0 || amount > summary.HighestAmount {
			summary.HighestAmount = amount
			summary.HighestMonth = point.Period
		}
		if complete == 0 || amount < summary.LowestAmount {
			summary.LowestAmount = amount
			summary.LowestMonth = point.Period
		}
		complete++
	}

	if complete > 0 {
		summary.AverageMonthly = summary.TotalSpend / float64(complete)
	}

	return &CostTrend{Months: months, Summary: summary}
}

// ConvertCostBreakdown converts model.CostBreakdown to response format
func ConvertCostBreakdown(breakdown *model.CostBreakdown) *ProjectBreakdown {
	if breakdown == nil {
		return nil
	}
	return &ProjectBreakdown{
		Projects: lo.Map(breakdown.Breakdown, func(e model.CostBreakdownEntry, _ int) ProjectCost {
			return ProjectCost{Project: e.Name, LastMonth: e.Actual, Projected: e.Projected}
		}),
		TotalLastMonth: breakdown.TotalActual,
		TotalProjected: breakdown.TotalProjected,
	}
}

// ConvertVariance converts the significant changes to response format
func ConvertVariance(variance *model.CostVariance) []CostChange {
	if variance == nil {
		return []CostChange{}
	}
	return lo.Map(variance.Changes, func(c model.VarianceChange, _ int) CostChange {
		return CostChange{
			Month:         c.Period,
			Service:       c.Dimension,
			Previous:      c.Previous,
			Current:       c.Current,
			Difference:    c.Delta,
			PercentChange: c.PercentChange,
			Impact:        string(c.Impact),
		}
	})
}

// ConvertWasteReport converts model.WasteReport to response.WasteSummary
func ConvertWasteReport(accountID string, report *model.WasteReport) *WasteSummary {
	if report == nil {
		return nil
	}
	return &WasteSummary{
		AccountID:            accountID,
		UnusedVolumes:        ConvertUnusedVolumes(report.UnusedVolumes),
		AttachedVolumes:      ConvertUnusedVolumes(report.AttachedVolumes),
		UnusedIPs:            ConvertUnusedIPs(report.UnusedIPs),
		StoppedInstances:     ConvertStoppedInstances(report.StoppedInstances),
		ExpiringReservations: ConvertReservations(report.ExpiringReservations),
	}
}

// ConvertSecurityScore converts model.SecurityScore to response format
func ConvertSecurityScore(score *model.SecurityScore) *SecurityScore {
	if score == nil {
		return nil
	}
	return &SecurityScore{
		ScorePercentage:  score.ScorePercentage,
		Healthy:          score.Healthy,
		Unhealthy:        score.Unhealthy,
		NotApplicable:    score.NotApplicable,
		TotalAssessments: score.TotalAssessments,
		TopUnhealthy: lo.Map(score.Assessments, func(a model.Assessment, _ int) string {
			return a.Name
		}),
	}
}

// ConvertUnusedVolumes converts []model.UnusedVolume to response format
func ConvertUnusedVolumes(volumes []model.UnusedVolume) []UnusedVolume {
	result := make([]UnusedVolume, 0, len(volumes))
	for _, v := range volumes {
		result = append(result, UnusedVolume{
			ID:     v.ID,
			SizeGB: v.SizeGB,
			Status: v.Status,
		})
	}
	return result
}

// ConvertStoppedInstances converts []model.StoppedInstance to response format
func ConvertStoppedInstances(instances []model.StoppedInstance) []StoppedInstance {
	result := make([]StoppedInstance, 0, len(instances))
	for _, i := range instances {
		result = append(result, StoppedInstance{ID: i.ID, Name: i.Name})
	}
	return result
}

// ConvertUnusedIPs converts []model.UnusedIP to response format
func ConvertUnusedIPs(ips []model.UnusedIP) []UnusedIP {
	result := make([]UnusedIP, 0, len(ips))
	for _, ip := range ips {
		result = append(result, UnusedIP{Address: ip.Address, Name: ip.Name})
	}
	return result
}

// ConvertReservations converts []model.Reservation to response format
func ConvertReservations(reservations []model.Reservation) []Reservation {
	result := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		result = append(result, Reservation{
			ID:              r.ID,
			DisplayName:     r.DisplayName,
			Status:          r.Status,
			DaysUntilExpiry: r.DaysUntilExpiry,
		})
	}
	return result
}
