package costanalysis

import (
	"sort"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
)

// BuildHistory turns monthly cost rows into a chronological chart series.
//
// While the current month is still in progress its point carries only the
// run-rate forecast, and the previous point repeats its actual cost as a
// forecast so the two lines connect.
func BuildHistory(rows []model.CostRow, now time.Time) []model.HistoryPoint {
	totals := make(map[string]float64)
	for _, row := range rows {
		if _, err := time.Parse(monthKeyLayout, row.PeriodKey); err != nil {
			continue
		}
		totals[row.PeriodKey] += row.Cost
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	currentKey := PeriodKey(now)
	dayOfMonth := now.Day()
	daysInMonth := DaysInMonth(now)

	history := make([]model.HistoryPoint, 0, len(keys))
	for i, key := range keys {
		actual := totals[key]
		point := model.HistoryPoint{
			Period:      key,
			PeriodLabel: PeriodLabel(key),
		}

		if key == currentKey && dayOfMonth < daysInMonth {
			forecast := RunRateForecast(actual, dayOfMonth, daysInMonth)
			point.ForecastCost = &forecast
			if i > 0 && history[i-1].ActualCost != nil {
				connect := *history[i-1].ActualCost
				history[i-1].ForecastCost = &connect
			}
		} else {
			point.ActualCost = &actual
		}

		history = append(history, point)
	}

	return history
}
