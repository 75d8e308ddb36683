package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/saral-digital/ops-dashboard/model"
)

func DrawCostTable(account model.AccountInfo, summary model.CostSummary, breakdown model.CostBreakdown) {
	fmt.Println(CostTable(account, summary, breakdown))
}

// CostTable renders the month summary followed by the per-project breakdown
func CostTable(account model.AccountInfo, summary model.CostSummary, breakdown model.CostBreakdown) string {
	tw := table.NewWriter()
	tw.SetTitle(fmt.Sprintf("%s (%s)", account.AccountName, account.AccountID))
	tw.AppendHeader(table.Row{"Project", "Last Month", "Projected", "Difference"})

	tw.AppendRow(totalRow(summary))
	tw.AppendSeparator()
	for _, entry := range breakdown.Breakdown {
		tw.AppendRow(projectRow(entry, summary.Currency))
	}
	tw.AppendFooter(table.Row{
		"Attributed",
		formatCost(breakdown.TotalActual, summary.Currency),
		formatCost(breakdown.TotalProjected, summary.Currency),
		"",
	})

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, VAlignHeader: text.VAlignMiddle},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight, VAlignHeader: text.VAlignMiddle},
	})
	return tw.Render()
}

func totalRow(summary model.CostSummary) table.Row {
	difference := summary.ForecastCost - summary.LastMonthCost
	color := text.FgHiGreen
	if difference > 0 {
		color = text.FgHiRed
	}

	projected := formatCost(summary.ForecastCost, summary.Currency)
	if summary.AzureForecastCost != nil {
		projected = fmt.Sprintf("%s\n(Azure %s)", projected, formatCost(*summary.AzureForecastCost, summary.Currency))
	}

	return table.Row{
		color.Sprint("Total Costs"),
		text.FgHiYellow.Sprint(formatCost(summary.LastMonthCost, summary.Currency)),
		color.Sprint(projected),
		color.Sprint(formatCost(difference, summary.Currency)),
	}
}

func projectRow(entry model.CostBreakdownEntry, currency string) table.Row {
	difference := entry.Projected - entry.Actual
	color := text.FgGreen
	if difference > 0 {
		color = text.FgRed
	}

	return table.Row{
		color.Sprint(entry.Name),
		text.FgYellow.Sprint(formatCost(entry.Actual, currency)),
		color.Sprint(formatCost(entry.Projected, currency)),
		color.Sprint(formatCost(difference, currency)),
	}
}

func DrawVarianceTable(changes []model.VarianceChange) {
	fmt.Println(VarianceTable(changes))
}

// VarianceTable renders significant month-over-month changes
func VarianceTable(changes []model.VarianceChange) string {
	tw := table.NewWriter()
	tw.SetTitle("Significant Changes")
	tw.AppendHeader(table.Row{"Month", "Service", "Previous", "Current", "Change", "%", "Impact"})

	if len(changes) == 0 {
		tw.AppendRow(table.Row{text.FgHiGreen.Sprint("No significant changes"), "", "", "", "", "", ""})
	}
	for _, change := range changes {
		color := text.FgGreen
		if change.Delta > 0 {
			color = text.FgRed
		}
		tw.AppendRow(table.Row{
			change.PeriodLabel,
			change.Dimension,
			fmt.Sprintf("%.2f", change.Previous),
			fmt.Sprintf("%.2f", change.Current),
			color.Sprint(change.Change),
			fmt.Sprintf("%.1f", change.PercentChange),
			impactColor(change.Impact).Sprint(change.Impact),
		})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	return tw.Render()
}

func impactColor(impact model.Impact) text.Color {
	switch impact {
	case model.ImpactHigh:
		return text.FgHiRed
	case model.ImpactMedium:
		return text.FgHiYellow
	default:
		return text.FgHiGreen
	}
}

func formatCost(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}
