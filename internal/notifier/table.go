package notifier

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"StockPulse/internal/model"
)

// FormatTable renders the last rows days of prices and indicators followed by
// the signal breakdown as plain-text tables.
func FormatTable(a *model.Analysis, rows int) string {
	var b strings.Builder

	prices := table.NewWriter()
	prices.SetTitle(fmt.Sprintf("%s (%s)", a.Symbol, a.Period))
	prices.AppendHeader(table.Row{"Date", "Close", "Volume", "SMA20", "SMA50", "SMA200", "RSI", "MACD", "Signal", "BB Upper", "BB Lower"})

	ind := a.Indicators
	start := len(a.Points) - rows
	if start < 0 || rows <= 0 {
		start = 0
	}
	for i := start; i < len(a.Points); i++ {
		p := a.Points[i]
		prices.AppendRow(table.Row{
			p.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", p.Close),
			fmt.Sprintf("%.0f", p.Volume),
			value(ind.SMA20[i], "%.2f"),
			value(ind.SMA50[i], "%.2f"),
			value(ind.SMA200[i], "%.2f"),
			value(ind.RSI[i], "%.1f"),
			value(ind.MACD.MACD[i], "%.3f"),
			value(ind.MACD.Signal[i], "%.3f"),
			value(ind.Bollinger.Upper[i], "%.2f"),
			value(ind.Bollinger.Lower[i], "%.2f"),
		})
	}
	prices.SetColumnConfigs(numericColumns(2, 11))
	b.WriteString(prices.Render())
	b.WriteString("\n\n")

	sum := a.Summary
	signals := table.NewWriter()
	signals.SetTitle(fmt.Sprintf("Verdict: %s (confidence %d%%)", strings.ToUpper(string(sum.Direction)), sum.Confidence))
	signals.AppendHeader(table.Row{"Indicator", "Signal", "Weight", "Reason"})
	for _, s := range sum.Signals {
		signals.AppendRow(table.Row{s.Indicator, s.Direction, fmt.Sprintf("%.1f", s.Weight), s.Reason})
	}
	signals.AppendFooter(table.Row{"", "", "", sum.Summary})
	b.WriteString(signals.Render())
	b.WriteString("\n")
	return b.String()
}

func numericColumns(from, to int) []table.ColumnConfig {
	var cfgs []table.ColumnConfig
	for n := from; n <= to; n++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	return cfgs
}
