package collector

import (
	"context"

	"ValueScope/internal/model"
)

// ScreenerFetcher defines the interface for the equity screener and
// fundamentals data source.
type ScreenerFetcher interface {
	// Industries returns the sector -> industries map for the configured market.
	Industries(ctx context.Context) (map[string][]string, error)
	// Screen lists quotes matching one screener field ("sector" or "industry").
	Screen(ctx context.Context, field, value string) ([]model.StockQuote, error)
	// Quote returns screener-level data for a single symbol.
	Quote(ctx context.Context, symbol string) (*model.StockQuote, error)
	// AnnualRevenue maps fiscal-year keys to total revenue.
	AnnualRevenue(ctx context.Context, symbol string) (map[string]float64, error)
	// QuarterlyRevenue maps fiscal-quarter keys to total revenue.
	QuarterlyRevenue(ctx context.Context, symbol string) (map[string]float64, error)
	// AnnualNetProfit maps fiscal-year keys to net income.
	AnnualNetProfit(ctx context.Context, symbol string) (map[string]float64, error)
	// PriceHistory returns mean closing prices grouped by fiscal year and quarter.
	PriceHistory(ctx context.Context, symbol string, years int) (yearly, quarterly map[string]float64, err error)
	Name() string
}

// NewsFetcher defines the interface for the headline feed.
type NewsFetcher interface {
	Headlines(ctx context.Context, stockName string, limit int) ([]model.Headline, error)
	Name() string
}
