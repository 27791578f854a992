package notifier

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ValueScope/internal/model"
	"ValueScope/internal/sentiment"
)

var signalEmoji = map[model.ValueSignal]string{
	model.SignalUndervalued: "🟢",
	model.SignalOvervalued:  "🔴",
	model.SignalFairValue:   "⚪",
}

// FormatAnalysisReport formats a full stock analysis into a Telegram message.
func FormatAnalysisReport(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n\n", a.Symbol, time.Now().Format("2006-01-02")))

	writeDivergence(&b, "Annual", a.AnnualDivergence)
	writeDivergence(&b, "Quarterly", a.QuarterlyDivergence)

	if f := a.Financials; f != nil {
		b.WriteString("📈 <b>Financials:</b>\n")
		if f.RevenueCr != nil {
			b.WriteString(fmt.Sprintf("  Revenue: %s", sentiment.FormatCrore(*f.RevenueCr)))
			if f.RevenueGrowth != nil {
				b.WriteString(fmt.Sprintf(" (%+.1f%% YoY)", *f.RevenueGrowth))
			}
			b.WriteString("\n")
		}
		if f.NetProfitCr != nil {
			b.WriteString(fmt.Sprintf("  Net profit: %s", sentiment.FormatCrore(*f.NetProfitCr)))
			if f.ProfitGrowth != nil {
				b.WriteString(fmt.Sprintf(" (%+.1f%% YoY)", *f.ProfitGrowth))
			}
			b.WriteString("\n")
		}
		if f.PE != nil {
			b.WriteString(fmt.Sprintf("  P/E: %.1f\n", *f.PE))
		}
		if f.MarketCapCr != nil {
			b.WriteString(fmt.Sprintf("  Market cap: %s\n", sentiment.FormatCrore(*f.MarketCapCr)))
		}
		b.WriteString("\n")
	}

	if len(a.News) > 0 {
		b.WriteString("📰 <b>Recent news:</b>\n")
		for i, n := range a.News {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", sentimentEmoji(n.Sentiment), n.Title))
		}
	}

	return b.String()
}

func writeDivergence(b *strings.Builder, label string, d *model.DivergenceResult) {
	if d == nil {
		b.WriteString(fmt.Sprintf("%s: insufficient data\n\n", label))
		return
	}
	b.WriteString(fmt.Sprintf("%s %s <b>%s</b>\n", signalEmoji[d.Signal], label, strings.ToUpper(string(d.Signal))))
	b.WriteString(fmt.Sprintf("  Revenue %+.1f%% vs price %+.1f%% over %s\n\n",
		d.RevenueChangePct, d.PriceChangePct, strings.Join(d.Periods, ", ")))
}

// FormatNewsDigest formats classified headlines for a stock.
func FormatNewsDigest(stockName string, articles []model.NewsArticle) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📰 <b>%s news</b>\n\n", stockName))
	if len(articles) == 0 {
		b.WriteString("No recent headlines found.\n")
		return b.String()
	}
	for _, n := range articles {
		b.WriteString(fmt.Sprintf("%s <b>%s</b>\n", sentimentEmoji(n.Sentiment), n.Title))
		if n.Source != "" || n.Date != "" {
			b.WriteString(fmt.Sprintf("   %s · %s\n", n.Source, n.Date))
		}
		b.WriteString(fmt.Sprintf("   %s\n\n", n.Impact))
	}
	return b.String()
}

// FormatWatchlistAlert formats the alert sent when a scheduled scan finds a
// non-fair-value signal or leaning news coverage on a watched stock.
func FormatWatchlistAlert(a *model.Analysis) string {
	var b strings.Builder

	d := a.AnnualDivergence
	if d == nil {
		d = a.QuarterlyDivergence
	}
	if d != nil {
		b.WriteString(fmt.Sprintf("%s <b>%s looks %s</b>\n", signalEmoji[d.Signal], a.Symbol, d.Signal))
		b.WriteString(fmt.Sprintf("Revenue %+.1f%% vs price %+.1f%% (%s)\n",
			d.RevenueChangePct, d.PriceChangePct, strings.Join(d.Periods, ", ")))
	} else if len(a.News) > 0 {
		b.WriteString(fmt.Sprintf("📰 <b>%s news is leaning</b>\n", a.Symbol))
	}

	for i, n := range a.News {
		if i >= 3 {
			break
		}
		if n.Sentiment == model.SentimentNeutral {
			continue
		}
		b.WriteString(fmt.Sprintf("%s %s\n", sentimentEmoji(n.Sentiment), n.Title))
	}
	return b.String()
}

// FormatIndustryList formats the cached sector to industries taxonomy.
func FormatIndustryList(sectors map[string][]string) string {
	names := make([]string, 0, len(sectors))
	for sector := range sectors {
		names = append(names, sector)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🏭 <b>Sectors</b> (%d)\n\n", len(names)))
	for _, sector := range names {
		b.WriteString(fmt.Sprintf("<b>%s</b>\n", sector))
		for _, ind := range sectors[sector] {
			b.WriteString("• " + ind + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func sentimentEmoji(s model.Sentiment) string {
	switch s {
	case model.SentimentBullish:
		return "🟢"
	case model.SentimentBearish:
		return "🔴"
	default:
		return "⚪"
	}
}
