package costanalysis

import (
	"testing"
	"time"

	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRateForecast(t *testing.T) {
	tests := []struct {
		name        string
		actual      float64
		daysElapsed int
		daysInMonth int
		want        float64
	}{
		{name: "half month", actual: 500, daysElapsed: 15, daysInMonth: 30, want: 1000},
		{name: "first day", actual: 10, daysElapsed: 1, daysInMonth: 31, want: 310},
		{name: "full month", actual: 900, daysElapsed: 30, daysInMonth: 30, want: 900},
		{name: "no days elapsed", actual: 123, daysElapsed: 0, daysInMonth: 30, want: 0},
		{name: "credit", actual: -30, daysElapsed: 10, daysInMonth: 30, want: -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RunRateForecast(tt.actual, tt.daysElapsed, tt.daysInMonth), 0.0001)
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 28, DaysInMonth(time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, DaysInMonth(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "Jan 25", PeriodLabel("2025-01"))
	assert.Equal(t, "Dec 24", PeriodLabel("2024-12"))
	assert.Equal(t, "bogus", PeriodLabel("bogus"))
}

func TestResolveProjectTags(t *testing.T) {
	tags := ResolveProjectTags([]model.ResourceGroup{
		{Name: "RG-Web", Tags: map[string]string{"project": "Portal", "env": "prod"}},
		{Name: "rg-data", Tags: map[string]string{"owner": "ops"}},
		{Name: "rg-empty", Tags: map[string]string{"project": ""}},
		{Name: "rg-nil"},
	})

	assert.Equal(t, map[string]string{"rg-web": "Portal"}, tags)
}

func monthRows(costs map[string]float64) []model.CostRow {
	rows := make([]model.CostRow, 0, len(costs))
	for key, cost := range costs {
		rows = append(rows, model.CostRow{PeriodKey: key, Cost: cost, Currency: "USD"})
	}
	return rows
}

func TestBuildHistoryCurrentMonthForecast(t *testing.T) {
	now := time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)
	rows := monthRows(map[string]float64{
		"2025-02": 800,
		"2025-04": 500,
		"2025-03": 900,
	})

	history := BuildHistory(rows, now)

	require.Len(t, history, 3)
	assert.Equal(t, []string{"2025-02", "2025-03", "2025-04"},
		[]string{history[0].Period, history[1].Period, history[2].Period})
	assert.Equal(t, "Feb 25", history[0].PeriodLabel)

	require.NotNil(t, history[0].ActualCost)
	assert.Equal(t, 800.0, *history[0].ActualCost)
	assert.Nil(t, history[0].ForecastCost)

	require.NotNil(t, history[1].ActualCost)
	require.NotNil(t, history[1].ForecastCost)
	assert.Equal(t, *history[1].ActualCost, *history[1].ForecastCost)

	assert.Nil(t, history[2].ActualCost)
	require.NotNil(t, history[2].ForecastCost)
	assert.InDelta(t, 1000.0, *history[2].ForecastCost, 0.0001)
}

func TestBuildHistoryTwelveMonthsWithMidMonthForecast(t *testing.T) {
	now := time.Date(2025, 4, 15, 12, 0, 0, 0, time.UTC)
	costs := map[string]float64{"2025-04": 500}
	for i := 0; i < 12; i++ {
		month := time.Date(2024, time.April+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		costs[month.Format("2006-01")] = float64(100 + i)
	}

	history := BuildHistory(monthRows(costs), now)

	require.Len(t, history, 13)
	assert.Equal(t, "2024-04", history[0].Period)

	last := history[12]
	assert.Equal(t, "2025-04", last.Period)
	assert.Nil(t, last.ActualCost)
	require.NotNil(t, last.ForecastCost)
	assert.InDelta(t, 1000.0, *last.ForecastCost, 0.0001)

	previous := history[11]
	require.NotNil(t, previous.ActualCost)
	require.NotNil(t, previous.ForecastCost)
	assert.Equal(t, 111.0, *previous.ActualCost)
	assert.Equal(t, 111.0, *previous.ForecastCost)

	for _, point := range history[:11] {
		assert.Nil(t, point.ForecastCost, point.Period)
	}
}

func TestBuildHistoryLastDayOfMonthKeepsActual(t *testing.T) {
	now := time.Date(2025, 4, 30, 12, 0, 0, 0, time.UTC)
	history := BuildHistory(monthRows(map[string]float64{"2025-03": 900, "2025-04": 500}), now)

	require.Len(t, history, 2)
	require.NotNil(t, history[1].ActualCost)
	assert.Equal(t, 500.0, *history[1].ActualCost)
	assert.Nil(t, history[1].ForecastCost)
	assert.Nil(t, history[0].ForecastCost)
}

func TestBuildHistorySumsDuplicatesAndSkipsInvalidPeriods(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		{PeriodKey: "2025-01", Cost: 10},
		{PeriodKey: "2025-01", Cost: 15},
		{PeriodKey: "", Cost: 99},
		{PeriodKey: "junk", Cost: 99},
	}

	history := BuildHistory(rows, now)

	require.Len(t, history, 1)
	assert.Equal(t, 25.0, *history[0].ActualCost)
}

func TestBuildHistoryOnlyCurrentMonth(t *testing.T) {
	now := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	history := BuildHistory(monthRows(map[string]float64{"2025-04": 100}), now)

	require.Len(t, history, 1)
	assert.Nil(t, history[0].ActualCost)
	assert.InDelta(t, 300.0, *history[0].ForecastCost, 0.0001)
}

func serviceRow(service, month string, cost float64) model.CostRow {
	return model.CostRow{DimensionValue: service, PeriodKey: month, Cost: cost}
}

func TestDetectVarianceSingleIncrease(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		serviceRow("Virtual Machines", "2025-01", 200),
		serviceRow("Virtual Machines", "2025-02", 350),
		serviceRow("Storage", "2025-01", 40),
		serviceRow("Storage", "2025-02", 60),
		serviceRow("Virtual Machines", "2025-03", 9000),
	}

	changes := DetectVariance(rows, now)

	require.Len(t, changes, 1)
	change := changes[0]
	assert.Equal(t, "Feb 25", change.PeriodLabel)
	assert.Equal(t, "2025-02", change.Period)
	assert.Equal(t, "Virtual Machines", change.Dimension)
	assert.Equal(t, 150.0, change.Delta)
	assert.Equal(t, 200.0, change.Previous)
	assert.Equal(t, 350.0, change.Current)
	assert.InDelta(t, 75.0, change.PercentChange, 0.0001)
	assert.Equal(t, model.ImpactHigh, change.Impact)
	assert.Equal(t, "+$150.00", change.Change)
	assert.Equal(t, "Virtual Machines Increased", change.Reason)
}

func TestDetectVarianceFromLowBase(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		serviceRow("App Service", "2025-01", 100),
		serviceRow("App Service", "2025-02", 250),
	}

	changes := DetectVariance(rows, now)

	require.Len(t, changes, 1)
	assert.Equal(t, 150.0, changes[0].Delta)
	assert.InDelta(t, 150.0, changes[0].PercentChange, 0.0001)
	assert.Equal(t, model.ImpactHigh, changes[0].Impact)
}

func TestDetectVarianceOrdersByMonthThenMagnitude(t *testing.T) {
	now := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		serviceRow("A", "2025-01", 1000),
		serviceRow("A", "2025-02", 800),
		serviceRow("B", "2025-01", 0),
		serviceRow("B", "2025-02", 500),
		serviceRow("A", "2025-03", 1000),
		serviceRow("B", "2025-03", 500),
		serviceRow("C", "2025-03", 101),
	}

	changes := DetectVariance(rows, now)

	require.Len(t, changes, 4)
	assert.Equal(t, []string{"B", "A", "A", "C"}, []string{
		changes[0].Dimension, changes[1].Dimension, changes[2].Dimension, changes[3].Dimension,
	})
	assert.Equal(t, "2025-02", changes[0].Period)
	assert.Equal(t, 100.0, changes[0].PercentChange)
	assert.Equal(t, "-$200.00", changes[1].Change)
	assert.Equal(t, "A Decreased", changes[1].Reason)
	assert.InDelta(t, -20.0, changes[1].PercentChange, 0.0001)
	assert.Equal(t, "2025-03", changes[2].Period)
	assert.Equal(t, 200.0, changes[2].Delta)
	assert.Equal(t, 101.0, changes[3].Delta)
}

func TestDetectVarianceThresholdIsStrict(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		serviceRow("A", "2025-01", 100),
		serviceRow("A", "2025-02", 200),
	}

	assert.Empty(t, DetectVariance(rows, now))
}

func TestDetectVarianceNeedsTwoCompleteMonths(t *testing.T) {
	now := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	rows := []model.CostRow{
		serviceRow("A", "2025-01", 100),
		serviceRow("A", "2025-02", 5000),
	}

	changes := DetectVariance(rows, now)
	assert.NotNil(t, changes)
	assert.Empty(t, changes)
}

func TestClassifyImpact(t *testing.T) {
	assert.Equal(t, model.ImpactHigh, ClassifyImpact(150))
	assert.Equal(t, model.ImpactHigh, ClassifyImpact(-101))
	assert.Equal(t, model.ImpactMedium, ClassifyImpact(100))
	assert.Equal(t, model.ImpactMedium, ClassifyImpact(-75))
	assert.Equal(t, model.ImpactLow, ClassifyImpact(50))
	assert.Equal(t, model.ImpactLow, ClassifyImpact(0))
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, 50.0, PercentChange(100, 150))
	assert.Equal(t, 100.0, PercentChange(0, 10))
	assert.Equal(t, 0.0, PercentChange(0, 0))
	assert.Equal(t, 0.0, PercentChange(-5, -10))
}

func TestBuildBreakdown(t *testing.T) {
	tags := map[string]string{"rg1": "Saral"}
	actual := map[string]float64{"rg1": 100, "rg2": 50}

	breakdown := BuildBreakdown(tags, actual, map[string]float64{})

	assert.Equal(t, []model.CostBreakdownEntry{
		{Name: "Saral", Actual: 100},
		{Name: OtherProject, Actual: 50},
	}, breakdown.Breakdown)
	assert.Equal(t, 150.0, breakdown.TotalActual)
	assert.Equal(t, 0.0, breakdown.TotalProjected)
}

func TestBuildBreakdownSortsByNameWithOtherLast(t *testing.T) {
	tags := map[string]string{"rg-web": "Vision", "rg-api": "Portal", "rg-ml": "Vision", "rg-zz": "Zeta"}
	actual := map[string]float64{"rg-web": 100, "rg-api": 50, "rg-ml": 30, "rg-misc": 20, "rg-zz": 5}
	projected := ProjectRunRate(actual, 10, 30)

	breakdown := BuildBreakdown(tags, actual, projected)

	require.Len(t, breakdown.Breakdown, 4)
	assert.Equal(t, []string{"Portal", "Vision", "Zeta", OtherProject}, []string{
		breakdown.Breakdown[0].Name, breakdown.Breakdown[1].Name,
		breakdown.Breakdown[2].Name, breakdown.Breakdown[3].Name,
	})
	assert.Equal(t, model.CostBreakdownEntry{Name: "Vision", Actual: 130, Projected: 390}, breakdown.Breakdown[1])
	assert.Equal(t, model.CostBreakdownEntry{Name: OtherProject, Actual: 20, Projected: 60}, breakdown.Breakdown[3])
	assert.InDelta(t, 205.0, breakdown.TotalActual, 0.0001)
	assert.InDelta(t, 615.0, breakdown.TotalProjected, 0.0001)
}

func TestBuildBreakdownDropsNegligibleEntries(t *testing.T) {
	tags := map[string]string{"rg-a": "Alpha", "rg-b": "Beta", "rg-c": "Gamma"}
	actual := map[string]float64{"rg-a": 0.5, "rg-b": 1, "rg-c": 0.2, "rg-x": 1}
	projected := map[string]float64{"rg-a": 0.9, "rg-b": 1, "rg-c": 4}

	breakdown := BuildBreakdown(tags, actual, projected)

	assert.Equal(t, []model.CostBreakdownEntry{{Name: "Gamma", Actual: 0.2, Projected: 4}}, breakdown.Breakdown)
	assert.Equal(t, 0.2, breakdown.TotalActual)
	assert.Equal(t, 4.0, breakdown.TotalProjected)
}

func TestBuildBreakdownProjectedOnlyGroup(t *testing.T) {
	breakdown := BuildBreakdown(map[string]string{}, map[string]float64{}, map[string]float64{"rg-new": 12})

	assert.Equal(t, []model.CostBreakdownEntry{{Name: OtherProject, Projected: 12}}, breakdown.Breakdown)
}

func TestBuildBreakdownEmpty(t *testing.T) {
	breakdown := BuildBreakdown(nil, nil, nil)

	assert.NotNil(t, breakdown.Breakdown)
	assert.Empty(t, breakdown.Breakdown)
}

func TestSumByResourceGroup(t *testing.T) {
	sums := SumByResourceGroup([]model.CostRow{
		{DimensionValue: "RG-Web", Cost: 1},
		{DimensionValue: "rg-web", Cost: 2},
		{DimensionValue: "rg-data", Cost: 3},
	})

	assert.Equal(t, map[string]float64{"rg-web": 3, "rg-data": 3}, sums)
}

func TestUntaggedResourceGroups(t *testing.T) {
	tags := map[string]string{"rg-web": "Portal"}
	costs := map[string]float64{"rg-web": 500, "rg-a": 5, "rg-b": 80, "rg-zero": 0.01, "rg-credit": -3}

	groups := UntaggedResourceGroups(tags, costs)

	assert.Equal(t, []model.ResourceGroupCost{{Name: "rg-b", Cost: 80}, {Name: "rg-a", Cost: 5}}, groups)
}

func TestTopServices(t *testing.T) {
	var rows []model.CostRow
	for i := 0; i < 12; i++ {
		rows = append(rows, model.CostRow{DimensionValue: string(rune('A' + i)), Cost: float64(i + 1)})
	}
	rows = append(rows, model.CostRow{DimensionValue: "A", Cost: 100})

	services, total := TopServices(rows)

	require.Len(t, services, 10)
	assert.Equal(t, model.ServiceCost{Service: "A", Cost: 101}, services[0])
	assert.Equal(t, model.ServiceCost{Service: "L", Cost: 12}, services[1])
	assert.InDelta(t, 178.0, total, 0.0001)
}
