package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"StockSentinel/internal/model"
)

// FormatReport formats a full analysis report into a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 <b>%s</b> (%s) | %s\n\n", esc(r.Name), esc(r.Symbol), r.GeneratedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Last price: %.2f\n", r.LastPrice)

	hp := r.HistoricalPerformance
	fmt.Fprintf(&b, "1D %s | 1W %s | 1M %s\n", hp.OneDay, hp.OneWeek, hp.OneMonth)
	fmt.Fprintf(&b, "3M %s | 1Y %s | 3Y %s\n\n", hp.ThreeMonth, hp.OneYear, hp.ThreeYear)

	ma := r.TechnicalAnalysis.MovingAverages
	ind := r.TechnicalAnalysis.Indicators
	b.WriteString("📈 <b>Technicals</b>\n")
	fmt.Fprintf(&b, "  SMA50: %s | SMA200: %s | EMA20: %s\n", optional(ma.SMA50), optional(ma.SMA200), optional(ma.EMA20))
	fmt.Fprintf(&b, "  RSI: %s | MACD: %s | Bollinger: %s\n", optional(ind.RSI), ind.MACD, ind.BollingerBands)
	fmt.Fprintf(&b, "  Votes: %d bullish / %d bearish\n\n", r.TrendVotes.Bullish, r.TrendVotes.Bearish)

	f := r.Fundamentals
	b.WriteString("🏢 <b>Fundamentals</b>\n")
	if r.FundamentalsMissing {
		b.WriteString("  unavailable\n")
	} else {
		fmt.Fprintf(&b, "  MCap: ₹%.2f Cr | PE: %.2f | EPS: %.2f\n", f.MarketCapCr, f.PERatio, f.EPS)
		fmt.Fprintf(&b, "  Div. yield: %s | P/B: %.2f\n", f.DividendYield, f.PriceToBook)
	}
	fmt.Fprintf(&b, "  52W: %.2f - %.2f\n\n", f.Low52W, f.High52W)

	if len(r.KeyObservations) > 0 {
		b.WriteString("🔎 <b>Observations</b>\n")
		for _, o := range r.KeyObservations {
			fmt.Fprintf(&b, "  • %s\n", esc(o))
		}
		b.WriteString("\n")
	}

	e := r.EnhancedKeyObservations
	fmt.Fprintf(&b, "Trend: %s\n", esc(e.Trend))
	fmt.Fprintf(&b, "Volume: %s\n", esc(e.VolumeSurge))
	fmt.Fprintf(&b, "Breakout: %s\n", esc(e.BreakoutPossibility))
	fmt.Fprintf(&b, "Profit booking: %s\n\n", esc(e.ProfitBookingZone))

	b.WriteString("💡 <b>Recommendations</b>\n")
	for _, rec := range r.Recommendations.All() {
		fmt.Fprintf(&b, "  %s: %s\n", horizonLabels[rec.Horizon], esc(string(rec.Action)))
	}
	b.WriteString("\n")

	st := r.BuySellSuggestions.ShortTerm
	lt := r.BuySellSuggestions.LongTerm
	fmt.Fprintf(&b, "💰 <b>%s:</b> %s\n", st.Duration, esc(string(st.Action)))
	fmt.Fprintf(&b, "   Buy zone %.2f | Targets %s | Stop loss %.2f\n", st.BuyZone, joinPrices(st.Target), st.StopLoss)
	fmt.Fprintf(&b, "💰 <b>%s:</b> %s\n", lt.Duration, esc(string(lt.Action)))
	fmt.Fprintf(&b, "   Target %.2f | %s\n", lt.Target, esc(lt.DividendStability))

	if len(r.SimilarCompanies) > 0 {
		b.WriteString("\n👥 <b>Peers (1Y)</b>\n")
		for _, p := range r.SimilarCompanies {
			fmt.Fprintf(&b, "  %s: %s\n", esc(p.Symbol), p.Performance1Y)
		}
	}
	if n := len(r.PeerErrors); n > 0 {
		fmt.Fprintf(&b, "  (%d peer(s) unavailable)\n", n)
	}
	return b.String()
}

// FormatDigest lists one line per report for a watchlist run.
func FormatDigest(reports []*model.Report, failed map[string]error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗂 <b>Watchlist digest</b> | %d analysed, %d failed\n\n", len(reports), len(failed))
	for _, r := range reports {
		fmt.Fprintf(&b, "%s %.2f | 6M %s | 1Y %s | 3Y %s\n",
			esc(r.Symbol), r.LastPrice,
			esc(string(r.Recommendations.ShortTerm6M)),
			esc(string(r.Recommendations.ShortTerm1Y)),
			esc(string(r.Recommendations.LongTerm3Y)))
	}
	for sym, err := range failed {
		fmt.Fprintf(&b, "❌ %s: %s\n", esc(sym), esc(err.Error()))
	}
	return b.String()
}

// FormatFailure explains why symbol could not be analysed.
func FormatFailure(symbol string, err error) string {
	if errors.Is(err, model.ErrNoData) {
		return fmt.Sprintf("❌ No price data for <b>%s</b>. Check the symbol.", esc(symbol))
	}
	return fmt.Sprintf("❌ Analysis of <b>%s</b> failed: %s", esc(symbol), esc(err.Error()))
}

// FormatHelp lists the supported commands.
func FormatHelp(watchlist []string) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	b.WriteString("• /analyze SYMBOL - full report for one stock\n")
	b.WriteString("• /watchlist - analyse every watched stock\n")
	b.WriteString("• /help - this message\n")
	if len(watchlist) > 0 {
		fmt.Fprintf(&b, "\nWatching: %s", esc(strings.Join(watchlist, ", ")))
	}
	return b.String()
}

var horizonLabels = map[model.Horizon]string{
	model.HorizonShort6M: "6M",
	model.HorizonShort1Y: "1Y",
	model.HorizonLong3Y:  "3Y",
}

func esc(s string) string { return html.EscapeString(s) }

func optional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func joinPrices(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%.2f", v)
	}
	return strings.Join(parts, ", ")
}
