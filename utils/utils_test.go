package utils

import (
	"testing"

	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
	"github.com/stretchr/testify/assert"
)

func TestBarLabel(t *testing.T) {
	actual := model.HistoryPoint{Period: "2025-03", PeriodLabel: "Mar 25", ActualCost: lo.ToPtr(1234.5), ForecastCost: lo.ToPtr(1234.5)}
	forecast := model.HistoryPoint{Period: "2025-04", PeriodLabel: "Apr 25", ForecastCost: lo.ToPtr(2000.0)}

	assert.Equal(t, "Mar 25: 1234.50 USD", BarLabel(actual, "USD"))
	assert.Equal(t, "Apr 25: 2000.00 USD*", BarLabel(forecast, "USD"))
	assert.Equal(t, 0.0, barValue(model.HistoryPoint{}))
}

func TestAssignRankedColors(t *testing.T) {
	colors := assignRankedColors([]float64{10, 30, 20, 1, 2, 3, 4})

	assert.Equal(t, ColorRank3, colors[0])
	assert.Equal(t, ColorRank1, colors[1])
	assert.Equal(t, ColorRank2, colors[2])
	assert.Equal(t, "", colors[3])
	assert.Equal(t, ColorRank6, colors[4])
}

func TestCostTable(t *testing.T) {
	out := CostTable(
		model.AccountInfo{AccountID: "sub-1", AccountName: "Production"},
		model.CostSummary{ActualCost: 1500, ForecastCost: 3000, LastMonthCost: 2800, Currency: "EUR", AzureForecastCost: lo.ToPtr(3100.0)},
		model.CostBreakdown{
			Breakdown:      []model.CostBreakdownEntry{{Name: "Saral", Actual: 100, Projected: 120}, {Name: "Other", Actual: 50}},
			TotalActual:    150,
			TotalProjected: 120,
		},
	)

	assert.Contains(t, out, "Production (sub-1)")
	assert.Contains(t, out, "2800.00 EUR")
	assert.Contains(t, out, "3100.00 EUR")
	assert.Contains(t, out, "Saral")
	assert.Contains(t, out, "Other")
	assert.Contains(t, out, "150.00 EUR")
}

func TestVarianceTable(t *testing.T) {
	out := VarianceTable([]model.VarianceChange{{
		PeriodLabel: "Mar 25", Dimension: "Storage", Previous: 200, Current: 350,
		Change: "+$150.00", PercentChange: 75, Impact: model.ImpactHigh,
	}})

	assert.Contains(t, out, "Storage")
	assert.Contains(t, out, "+$150.00")
	assert.Contains(t, out, "75.0")

	assert.Contains(t, VarianceTable(nil), "No significant changes")
}

func TestWasteTable(t *testing.T) {
	out := WasteTable(model.WasteReport{
		UnusedVolumes:        []model.UnusedVolume{{ID: "disk-1", SizeGB: 128, Status: "available"}},
		UnusedIPs:            []model.UnusedIP{{Name: "pip-1", Address: "20.1.2.3"}},
		ExpiringReservations: []model.Reservation{{DisplayName: "VM reservation", Status: "expiring", DaysUntilExpiry: 10}},
	})

	assert.Contains(t, out, "disk-1")
	assert.Contains(t, out, "128 GB")
	assert.Contains(t, out, "20.1.2.3")
	assert.Contains(t, out, "10 days")

	assert.Contains(t, WasteTable(model.WasteReport{}), "No waste found")
}
