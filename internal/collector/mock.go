package collector

import (
	"context"

	"ValueScope/internal/model"
)

// MockScreener returns controllable fixed data for development and testing.
type MockScreener struct {
	Sectors     map[string][]string
	Quotes      map[string]*model.StockQuote
	Annual      map[string]map[string]float64
	Quarterly   map[string]map[string]float64
	NetProfit   map[string]map[string]float64
	Yearly      map[string]float64
	QuarterlyPx map[string]float64
	Err         error
}

func (m *MockScreener) Name() string { return "mock" }

func (m *MockScreener) Industries(_ context.Context) (map[string][]string, error) {
	return m.Sectors, m.Err
}

func (m *MockScreener) Screen(_ context.Context, _, _ string) ([]model.StockQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	quotes := make([]model.StockQuote, 0, len(m.Quotes))
	for _, q := range m.Quotes {
		quotes = append(quotes, *q)
	}
	return quotes, nil
}

func (m *MockScreener) Quote(_ context.Context, symbol string) (*model.StockQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return &model.StockQuote{Symbol: symbol, Name: symbol}, nil
}

func (m *MockScreener) AnnualRevenue(_ context.Context, symbol string) (map[string]float64, error) {
	return m.Annual[symbol], m.Err
}

func (m *MockScreener) QuarterlyRevenue(_ context.Context, symbol string) (map[string]float64, error) {
	return m.Quarterly[symbol], m.Err
}

func (m *MockScreener) AnnualNetProfit(_ context.Context, symbol string) (map[string]float64, error) {
	return m.NetProfit[symbol], m.Err
}

func (m *MockScreener) PriceHistory(_ context.Context, _ string, _ int) (map[string]float64, map[string]float64, error) {
	return m.Yearly, m.QuarterlyPx, m.Err
}

// MockNews serves canned headlines.
type MockNews struct {
	Items []model.Headline
	Err   error
}

func (m *MockNews) Name() string { return "mock" }

func (m *MockNews) Headlines(_ context.Context, _ string, limit int) ([]model.Headline, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && limit < len(m.Items) {
		return m.Items[:limit], nil
	}
	return m.Items, nil
}
