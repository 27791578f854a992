package model

// ValueSignal is the three-way valuation verdict from the divergence engine.
type ValueSignal string

const (
	SignalUndervalued ValueSignal = "undervalued"
	SignalOvervalued  ValueSignal = "overvalued"
	SignalFairValue   ValueSignal = "fair value"
)

// DivergenceResult compares a revenue trajectory against a price trajectory,
// both rebased to 100 at the first common period.
type DivergenceResult struct {
	Periods          []string    `json:"periods"`
	RevenueIndex     []float64   `json:"revenue_index"`
	PriceIndex       []float64   `json:"price_index"`
	Signal           ValueSignal `json:"signal"`
	RevenueChangePct float64     `json:"revenue_change_pct"`
	PriceChangePct   float64     `json:"price_change_pct"`
}

// Analysis is the full payload for one stock analysis request. Divergence
// fields are nil when there were not enough overlapping periods to compare;
// consumers must not render a valuation signal in that case.
type Analysis struct {
	Symbol              string                        `json:"symbol"`
	AnnualRevenue       map[string]map[string]float64 `json:"annual_revenue"`
	QuarterlyRevenue    map[string]map[string]float64 `json:"quarterly_revenue"`
	PriceYearly         map[string]float64            `json:"price_yearly"`
	PriceQuarterly      map[string]float64            `json:"price_quarterly"`
	AnnualDivergence    *DivergenceResult             `json:"annual_divergence,omitempty"`
	QuarterlyDivergence *DivergenceResult             `json:"quarterly_divergence,omitempty"`
	Financials          *FinancialSnapshot            `json:"financials,omitempty"`
	News                []NewsArticle                 `json:"news"`
}
