package utils

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/saral-digital/ops-dashboard/model"
)

func DrawWasteTable(account model.AccountInfo, report model.WasteReport) {
	fmt.Printf("\n%s\n", text.FgHiWhite.Sprint(" 🏥  OPS DASHBOARD CHECKUP"))
	fmt.Printf(" Subscription: %s\n", text.FgBlue.Sprint(account.AccountName))
	fmt.Println(text.FgHiBlue.Sprint(" ------------------------------------------------"))
	fmt.Println(WasteTable(report))
}

// WasteTable renders one row per idle resource, grouped by finding
func WasteTable(report model.WasteReport) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Finding", "Resource", "Details"})

	for _, disk := range report.UnusedVolumes {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("Unattached disk"), disk.ID, fmt.Sprintf("%d GB", disk.SizeGB)})
	}
	for _, disk := range report.AttachedVolumes {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("Disk on deallocated VM"), disk.ID, fmt.Sprintf("%d GB", disk.SizeGB)})
	}
	for _, vm := range report.StoppedInstances {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("Deallocated VM"), vm.Name, ""})
	}
	for _, ip := range report.UnusedIPs {
		tw.AppendRow(table.Row{text.FgYellow.Sprint("Unused public IP"), ip.Name, ip.Address})
	}
	for _, reservation := range report.ExpiringReservations {
		tw.AppendRow(table.Row{
			reservationColor(reservation).Sprint("Reservation " + reservation.Status),
			reservation.DisplayName,
			fmt.Sprintf("%d days", reservation.DaysUntilExpiry),
		})
	}

	if tw.Length() == 0 {
		tw.AppendRow(table.Row{text.FgHiGreen.Sprint("✅ No waste found"), "", ""})
	}

	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 3, Align: text.AlignRight}})
	return tw.Render()
}

func reservationColor(reservation model.Reservation) text.Color {
	if reservation.Status == "expired" {
		return text.FgHiRed
	}
	return text.FgYellow
}
