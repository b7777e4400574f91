package report

import (
	"fmt"
	"strings"

	"alphaview/internal/model"
	"alphaview/internal/portfolio"
)

// FormatSnapshot renders one batch refresh as a plain-text report. Symbols
// whose pipeline failed entirely get an explicit degraded line; they are
// never silently omitted.
func FormatSnapshot(snap *portfolio.Snapshot, holdings map[string]float64) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("AlphaView | %s\n", snap.TakenAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("EUR/USD %.4f | %d/%d symbols available\n\n",
		snap.EURUSDRate, snap.Available(), len(snap.Results)))

	var totalEUR float64
	for _, res := range snap.Results {
		if res.Unavailable() {
			continue
		}
		qty := holdings[res.Symbol]
		totalEUR += portfolio.ValueInEUR(res.Analysis.Price*qty, res.Analysis.Currency, snap.EURUSDRate)
	}
	if totalEUR > 0 {
		b.WriteString(fmt.Sprintf("Portfolio value: %.2f EUR\n\n", totalEUR))
	}

	for _, res := range snap.Results {
		b.WriteString(formatLine(res, holdings[res.Symbol]))
	}
	return b.String()
}

func formatLine(res portfolio.Result, qty float64) string {
	if res.Unavailable() {
		reason := "no data"
		if res.Err != nil {
			reason = res.Err.Error()
		}
		return fmt.Sprintf("  %-10s unavailable (%s)\n", res.Symbol, reason)
	}

	a := res.Analysis
	line := fmt.Sprintf("  %-10s %-24s %10.2f %s  %+6.2f%%  %-7s vol %5.1f%%",
		a.Symbol, truncate(a.Name, 24), a.Price, a.Currency,
		a.ChangePercent, a.Trend, a.Volatility)
	if qty > 0 {
		line += fmt.Sprintf("  qty %.2f", qty)
	}
	return line + "\n"
}

// FormatAnalysis renders a single instrument in detail.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s, %s)\n", a.Name, a.Symbol, a.InstrumentType))
	b.WriteString(fmt.Sprintf("Price: %.2f %s (%+.2f / %+.2f%% vs %.2f)\n",
		a.Price, a.Currency, a.Change, a.ChangePercent, a.ReferencePrice))
	if a.SMA50.Valid {
		b.WriteString(fmt.Sprintf("SMA50: %.2f\n", a.SMA50.Float64))
	} else {
		b.WriteString("SMA50: n/a\n")
	}
	if a.SMA200.Valid {
		b.WriteString(fmt.Sprintf("SMA200: %.2f\n", a.SMA200.Float64))
	} else {
		b.WriteString("SMA200: n/a\n")
	}
	b.WriteString(fmt.Sprintf("Trend: %s | Volatility: %.1f%% p.a.\n", a.Trend, a.Volatility))
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
