package utils

import (
	"fmt"
	"sort"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/saral-digital/ops-dashboard/model"
)

const (
	ColorRank1 = "#d73027"
	ColorRank2 = "#f46d43"
	ColorRank3 = "#fee08b"
	ColorRank4 = "#abdda4"
	ColorRank5 = "#66c2a5"
	ColorRank6 = "#1a9850"

	ColorForecast = "#7f7f7f"
)

var defaultStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("#F4D060"))

// DrawTrendChart plots the monthly history. The current month's bar is its
// forecast and is drawn in grey.
func DrawTrendChart(account model.AccountInfo, history []model.HistoryPoint, currency string) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 📈  OPS DASHBOARD TREND"))
	fmt.Printf(" Subscription: %s\n", text.FgBlue.Sprint(account.AccountName))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))

	bc := barchart.New(130, 20)

	values := lo.Map(history, func(point model.HistoryPoint, _ int) float64 { return barValue(point) })
	indexedColors := assignRankedColors(values)

	for idx, point := range history {
		color := indexedColors[idx]
		if point.ActualCost == nil {
			color = ColorForecast
		}
		bc.Push(barchart.BarData{
			Label: BarLabel(point, currency),
			Values: []barchart.BarValue{
				{
					Name:  point.Period,
					Value: values[idx],
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(color)),
				},
			},
		})
	}

	fmt.Println()
	fmt.Println()

	bc.Draw()
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, defaultStyle.Render(bc.View())))
}

// barValue is the actual cost, or the forecast for the in-progress month
func barValue(point model.HistoryPoint) float64 {
	if point.ActualCost != nil {
		return *point.ActualCost
	}
	return lo.FromPtr(point.ForecastCost)
}

// BarLabel formats "Jan 25: 1234.00 USD", suffixed with "*" for forecasts
func BarLabel(point model.HistoryPoint, currency string) string {
	label := fmt.Sprintf("%s: %.2f %s", point.PeriodLabel, barValue(point), currency)
	if point.ActualCost == nil {
		label += "*"
	}
	return label
}

// assignRankedColors colours the six most expensive bars from red to green
func assignRankedColors(values []float64) []string {
	palette := []string{ColorRank1, ColorRank2, ColorRank3, ColorRank4, ColorRank5, ColorRank6}

	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] > values[order[j]]
	})

	resultColors := make([]string, len(values))
	for rank, originalIndex := range order {
		if rank < len(palette) {
			resultColors[originalIndex] = palette[rank]
		}
	}
	return resultColors
}
