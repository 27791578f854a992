package model

// StockQuote holds screener-level data for a single listed company.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	MarketCap     float64 `json:"marketCap"`
	CurrentPrice  float64 `json:"currentPrice"`
	TrailingPE    float64 `json:"trailingPE,omitempty"`
	PriceToBook   float64 `json:"priceToBook,omitempty"`
	DividendYield float64 `json:"dividendYield,omitempty"`
	EVToEBITDA    float64 `json:"evToEbitda,omitempty"`
}

// FinancialSnapshot is a sparse record of headline financials for narration.
// A nil field means the value is unknown and must be omitted, not treated as zero.
type FinancialSnapshot struct {
	RevenueCr     *float64 `json:"revenue_cr,omitempty"`
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"`
	NetProfitCr   *float64 `json:"net_profit_cr,omitempty"`
	ProfitGrowth  *float64 `json:"profit_growth,omitempty"`
	PE            *float64 `json:"pe,omitempty"`
	MarketCapCr   *float64 `json:"mcap_cr,omitempty"`
}

// Float returns a pointer to v, for building sparse snapshots.
func Float(v float64) *float64 { return &v }
