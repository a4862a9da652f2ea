package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/trade-report/internal/dashboard"
	"github.com/rxtech-lab/trade-report/internal/types"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle for metric labels.
	LabelStyle = lipgloss.NewStyle().Faint(true).Width(24)

	// ValueStyle for metric values.
	ValueStyle = lipgloss.NewStyle().Bold(true)

	// GainStyle for positive P/L values.
	GainStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))

	// LossStyle for negative P/L values.
	LossStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// FormatPLWithColor renders a money amount green for gains and red for losses.
func FormatPLWithColor(amount float64) string {
	formatted := dashboard.FormatMoney(amount)

	if amount < 0 {
		return LossStyle.Render(formatted)
	}

	return GainStyle.Render(formatted)
}

// RenderSummary renders the headline metrics of a report for the terminal.
func RenderSummary(rep types.Report) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Overall Performance Summary"))
	b.WriteString("\n\n")

	line := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("Total Realized P/L", FormatPLWithColor(rep.Summary.TotalRealizedPL))
	line("Total Closed Trades", ValueStyle.Render(fmt.Sprintf("%d", rep.Summary.TotalTrades)))
	line("Winning / Losing", ValueStyle.Render(fmt.Sprintf("%d / %d", rep.Summary.WinningTrades, rep.Summary.LosingTrades)))
	line("Win Rate", ValueStyle.Render(dashboard.FormatPercent(rep.Summary.WinRate)))
	line("Avg Holding Period", ValueStyle.Render(dashboard.FormatDays(rep.Summary.AvgHoldingPeriodDays)))
	line("Best Trade", FormatPLWithColor(rep.Summary.MaxProfit))
	line("Worst Trade", FormatPLWithColor(rep.Summary.MaxLoss))

	return b.String()
}
