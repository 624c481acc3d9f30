package notifier

import (
	"fmt"
	"html"
	"math"
	"strings"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

var directionIcon = map[model.Direction]string{
	model.Bullish: "🟢",
	model.Bearish: "🔴",
	model.Neutral: "⚪",
}

// value formats an indicator value, or N/A when it is undefined.
func value(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf(format, v)
}

// FormatAdvisory formats one analysis as an HTML advisory card.
func FormatAdvisory(a *model.Analysis) string {
	var b strings.Builder
	sum := a.Summary
	ind := a.Indicators

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", html.EscapeString(a.Symbol), a.AnalyzedAt.Format("2006-01-02")))
	if q := a.Quote; q != nil {
		b.WriteString(fmt.Sprintf("%s (%s)\n", html.EscapeString(q.Name), html.EscapeString(q.Exchange)))
	}
	b.WriteString("\n")

	price := a.LastClose()
	b.WriteString(fmt.Sprintf("Price: %.2f", price))
	if n := len(a.Points); n > 1 && a.Points[n-2].Close != 0 {
		prev := a.Points[n-2].Close
		b.WriteString(fmt.Sprintf(" (%+.2f, %+.2f%%)", price-prev, (price-prev)/prev*100))
	}
	b.WriteString("\n")
	if high, low, err := calculator.Range(a.Points, calculator.TradingDays52w); err == nil {
		pos, _ := calculator.Position(price, high, low)
		b.WriteString(fmt.Sprintf("52w range: %.2f - %.2f (position %.0f%%)\n", low, high, pos*100))
	}
	b.WriteString(fmt.Sprintf("SMA20: %s | SMA50: %s | SMA200: %s\n",
		value(calculator.Last(ind.SMA20), "%.2f"),
		value(calculator.Last(ind.SMA50), "%.2f"),
		value(calculator.Last(ind.SMA200), "%.2f")))
	b.WriteString(fmt.Sprintf("RSI(14): %s | MACD: %s / %s\n\n",
		value(calculator.Last(ind.RSI), "%.1f"),
		value(calculator.Last(ind.MACD.MACD), "%.3f"),
		value(calculator.Last(ind.MACD.Signal), "%.3f")))

	b.WriteString(fmt.Sprintf("%s <b>%s</b> | confidence %d%%\n",
		directionIcon[sum.Direction], strings.ToUpper(string(sum.Direction)), sum.Confidence))
	b.WriteString(html.EscapeString(sum.Summary))
	b.WriteString("\n\n")

	for _, s := range sum.Signals {
		b.WriteString(fmt.Sprintf("  %s %s: %s\n", directionIcon[s.Direction], s.Indicator, html.EscapeString(s.Reason)))
	}
	return b.String()
}

// FormatDirectionChange prefixes an advisory with the direction flip.
func FormatDirectionChange(a *model.Analysis, previous model.Direction) string {
	if previous == "" {
		return FormatAdvisory(a)
	}
	return fmt.Sprintf("🔔 <b>%s</b> turned %s → %s\n\n%s",
		html.EscapeString(a.Symbol), previous, a.Summary.Direction, FormatAdvisory(a))
}

// FormatDigest formats one line per analysis for the weekly digest.
func FormatDigest(analyses []*model.Analysis) string {
	var b strings.Builder
	b.WriteString("🗓 <b>Weekly watchlist digest</b>\n\n")
	if len(analyses) == 0 {
		b.WriteString("No symbols analyzed.")
		return b.String()
	}
	for _, a := range analyses {
		b.WriteString(fmt.Sprintf("%s %s %.2f | %s %d%%\n",
			directionIcon[a.Summary.Direction], html.EscapeString(a.Symbol), a.LastClose(),
			a.Summary.Direction, a.Summary.Confidence))
	}
	return b.String()
}
