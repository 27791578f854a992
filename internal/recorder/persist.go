package recorder

import (
	"log"
	"strings"

	"ValueScope/internal/model"
)

// Persist writes every divergence result and classified headline from one
// analysis through the recorder. Recording is best-effort on all paths:
// write failures are logged, never propagated.
func Persist(r Recorder, a *model.Analysis) {
	for timeframe, d := range map[string]*model.DivergenceResult{
		"annual":    a.AnnualDivergence,
		"quarterly": a.QuarterlyDivergence,
	} {
		if d == nil {
			continue
		}
		if err := r.RecordAnalysis(&AnalysisRecord{
			Symbol:           a.Symbol,
			Timeframe:        timeframe,
			Signal:           string(d.Signal),
			RevenueChangePct: d.RevenueChangePct,
			PriceChangePct:   d.PriceChangePct,
			Gap:              d.RevenueChangePct - d.PriceChangePct,
			Periods:          strings.Join(d.Periods, ","),
		}); err != nil {
			log.Printf("[ERROR] record analysis: %v", err)
		}
	}
	for _, n := range a.News {
		if err := r.RecordHeadline(&HeadlineRecord{
			Symbol:    a.Symbol,
			Title:     n.Title,
			Source:    n.Source,
			Sentiment: string(n.Sentiment),
			Evidence:  strings.Join(n.Evidence, ","),
		}); err != nil {
			log.Printf("[ERROR] record headline: %v", err)
		}
	}
}
