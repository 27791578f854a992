package sentiment

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ValueScope/internal/model"
)

// maxTriggers caps how many evidence items the narration names.
const maxTriggers = 4

var titleCaser = cases.Title(language.English)

// Narrate builds a short impact explanation for a classified headline.
// Purely formatting: deterministic for identical inputs, no side effects.
// financials may be nil; present fields append a summary line.
func Narrate(sentiment model.Sentiment, evidence []string, headline string, financials *model.FinancialSnapshot) string {
	var b strings.Builder

	switch sentiment {
	case model.SentimentBullish:
		if len(evidence) > 0 {
			b.WriteString("This news signals positive momentum. Key triggers: ")
			b.WriteString(triggerList(evidence))
			b.WriteString(". Such developments typically indicate business growth, improved financials, or market confidence, which can support the stock's long-term trajectory.")
		} else {
			// Unreachable under the current decision rule, which requires a
			// positive score for a bullish verdict. Kept for robustness.
			b.WriteString("This news has a positive tone that could support investor confidence.")
		}
	case model.SentimentBearish:
		if len(evidence) > 0 {
			b.WriteString("This news raises caution. Key concerns: ")
			b.WriteString(triggerList(evidence))
			b.WriteString(". These factors may indicate operational challenges, financial stress, or governance issues, which could put downward pressure on the stock.")
		} else {
			b.WriteString("This news has a negative tone that warrants caution for investors.")
		}
	default:
		if len(evidence) > 0 {
			b.WriteString("This news contains mixed signals (")
			b.WriteString(triggerList(evidence))
			b.WriteString(") and does not clearly lean positive or negative. The impact on the stock is ambiguous; monitor for follow-up developments.")
		} else {
			b.WriteString("This news is neutral and does not strongly indicate either positive or negative impact on the stock. Monitor for follow-up developments.")
		}
	}

	if line := financialLine(financials); line != "" {
		b.WriteString(" ")
		b.WriteString(line)
	}
	return b.String()
}

func triggerList(evidence []string) string {
	n := len(evidence)
	if n > maxTriggers {
		n = maxTriggers
	}
	titled := make([]string, n)
	for i := 0; i < n; i++ {
		titled[i] = titleCaser.String(evidence[i])
	}
	return strings.Join(titled, ", ")
}

// financialLine renders only the fields present in the snapshot. Absent
// fields are omitted entirely, never shown as zero.
func financialLine(f *model.FinancialSnapshot) string {
	if f == nil {
		return ""
	}
	var parts []string
	if f.RevenueCr != nil {
		s := "revenue " + FormatCrore(*f.RevenueCr)
		if f.RevenueGrowth != nil {
			s += fmt.Sprintf(" (%+.1f%% YoY)", *f.RevenueGrowth)
		}
		parts = append(parts, s)
	} else if f.RevenueGrowth != nil {
		parts = append(parts, fmt.Sprintf("revenue growth %+.1f%% YoY", *f.RevenueGrowth))
	}
	if f.NetProfitCr != nil {
		s := "net profit " + FormatCrore(*f.NetProfitCr)
		if f.ProfitGrowth != nil {
			s += fmt.Sprintf(" (%+.1f%% YoY)", *f.ProfitGrowth)
		}
		parts = append(parts, s)
	} else if f.ProfitGrowth != nil {
		parts = append(parts, fmt.Sprintf("profit growth %+.1f%% YoY", *f.ProfitGrowth))
	}
	if f.PE != nil {
		parts = append(parts, fmt.Sprintf("P/E %.1f", *f.PE))
	}
	if f.MarketCapCr != nil {
		parts = append(parts, "market cap "+FormatCrore(*f.MarketCapCr))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Latest financials: " + strings.Join(parts, ", ") + "."
}

// FormatCrore renders an amount given in ₹ crore, scaling into lakh-crore
// above 1e5 Cr. Zero or negative-unknown amounts render as N/A.
func FormatCrore(cr float64) string {
	if cr == 0 {
		return "N/A"
	}
	if cr >= 1e5 {
		return fmt.Sprintf("₹%.2f L Cr", cr/1e5)
	}
	return "₹" + humanize.CommafWithDigits(cr, 0) + " Cr"
}
