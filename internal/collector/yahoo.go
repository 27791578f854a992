package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"ValueScope/internal/divergence"
	"ValueScope/internal/model"
)

// yahooSectors are the screener's top-level sector labels.
var yahooSectors = []string{
	"Basic Materials", "Communication Services", "Consumer Cyclical",
	"Consumer Defensive", "Energy", "Financial Services", "Healthcare",
	"Industrials", "Real Estate", "Technology", "Utilities",
}

// YahooFetcher implements ScreenerFetcher against Yahoo Finance public APIs.
type YahooFetcher struct {
	Client   *http.Client
	Region   string // screener region code, e.g. "in"
	Exchange string // screener exchange code, e.g. "NSI"
	limiter  *rate.Limiter
}

// NewYahooFetcher creates a Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(region, exchange, proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Region:   region,
		Exchange: exchange,
		limiter:  rate.NewLimiter(rate.Limit(5), 5),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) get(ctx context.Context, u string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Industries screens each sector and collects the distinct industry labels
// found in the results.
func (f *YahooFetcher) Industries(ctx context.Context) (map[string][]string, error) {
	sectors := make(map[string][]string, len(yahooSectors))
	for _, sector := range yahooSectors {
		quotes, err := f.Screen(ctx, "sector", sector)
		if err != nil {
			return nil, fmt.Errorf("screen sector %s: %w", sector, err)
		}
		seen := map[string]bool{}
		for _, q := range quotes {
			if q.Industry != "" && !seen[q.Industry] {
				seen[q.Industry] = true
				sectors[sector] = append(sectors[sector], q.Industry)
			}
		}
		sort.Strings(sectors[sector])
	}
	return sectors, nil
}

// screenerRequest mirrors the Yahoo equity screener query body.
type screenerRequest struct {
	Size      int            `json:"size"`
	Offset    int            `json:"offset"`
	SortField string         `json:"sortField"`
	SortType  string         `json:"sortType"`
	QuoteType string         `json:"quoteType"`
	Query     screenerClause `json:"query"`
}

type screenerClause struct {
	Operator string        `json:"operator"`
	Operands []interface{} `json:"operands"`
}

type screenerResponse struct {
	Finance struct {
		Result []struct {
			Quotes []yahooQuote `json:"quotes"`
			Total  int          `json:"total"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"finance"`
}

type yahooQuote struct {
	Symbol             string  `json:"symbol"`
	ShortName          string  `json:"shortName"`
	LongName           string  `json:"longName"`
	Sector             string  `json:"sector"`
	Industry           string  `json:"industry"`
	MarketCap          float64 `json:"marketCap"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	TrailingPE         float64 `json:"trailingPE"`
	PriceToBook        float64 `json:"priceToBook"`
	DividendYield      float64 `json:"dividendYield"`
	EnterpriseToEbitda float64 `json:"enterpriseToEbitda"`
}

func (q yahooQuote) toModel() model.StockQuote {
	name := q.ShortName
	if name == "" {
		name = q.LongName
	}
	// Yahoo reports yields inconsistently: fractions below 1 are ratios.
	dy := q.DividendYield
	if dy > 0 && dy < 1 {
		dy *= 100
	}
	return model.StockQuote{
		Symbol:        q.Symbol,
		Name:          name,
		Sector:        q.Sector,
		Industry:      q.Industry,
		MarketCap:     q.MarketCap,
		CurrentPrice:  q.RegularMarketPrice,
		TrailingPE:    q.TrailingPE,
		PriceToBook:   q.PriceToBook,
		DividendYield: dy,
		EVToEBITDA:    q.EnterpriseToEbitda,
	}
}

// Screen runs an equity screener query for one field, sorted by market cap.
func (f *YahooFetcher) Screen(ctx context.Context, field, value string) ([]model.StockQuote, error) {
	size := 100
	if field == "sector" {
		size = 250
	}
	reqBody := screenerRequest{
		Size:      size,
		SortField: "intradaymarketcap",
		SortType:  "DESC",
		QuoteType: "EQUITY",
		Query: screenerClause{
			Operator: "AND",
			Operands: []interface{}{
				screenerClause{Operator: "EQ", Operands: []interface{}{"region", f.Region}},
				screenerClause{Operator: "EQ", Operands: []interface{}{"exchange", f.Exchange}},
				screenerClause{Operator: "EQ", Operands: []interface{}{field, value}},
			},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal screener query: %w", err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://query1.finance.yahoo.com/v1/finance/screener", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo screener: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo screener read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo screener: status %d, body: %s", resp.StatusCode, string(body))
	}

	var sr screenerResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("yahoo screener decode: %w", err)
	}
	if sr.Finance.Error != nil {
		return nil, fmt.Errorf("yahoo screener api error: %s", sr.Finance.Error.Description)
	}
	if len(sr.Finance.Result) == 0 {
		return nil, fmt.Errorf("yahoo screener: no result")
	}

	quotes := make([]model.StockQuote, 0, len(sr.Finance.Result[0].Quotes))
	for _, q := range sr.Finance.Result[0].Quotes {
		quotes = append(quotes, q.toModel())
	}
	return quotes, nil
}

// Quote fetches a single quote via the v7 quote endpoint.
func (f *YahooFetcher) Quote(ctx context.Context, symbol string) (*model.StockQuote, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v7/finance/quote?symbols=%s",
		url.QueryEscape(symbol))
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var qr struct {
		QuoteResponse struct {
			Result []yahooQuote `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := json.Unmarshal(body, &qr); err != nil {
		return nil, fmt.Errorf("yahoo quote decode: %w", err)
	}
	if len(qr.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote: no data for %s", symbol)
	}
	q := qr.QuoteResponse.Result[0].toModel()
	return &q, nil
}

// timeseriesPoint is one reported fundamentals value.
type timeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
	} `json:"reportedValue"`
}

type timeseriesResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"timeseries"`
}

// fetchTimeseries pulls one fundamentals series and maps it onto period keys.
func (f *YahooFetcher) fetchTimeseries(ctx context.Context, symbol, seriesType string, quarterly bool) (map[string]float64, error) {
	now := time.Now()
	u := fmt.Sprintf("https://query1.finance.yahoo.com/ws/fundamentals-timeseries/v1/finance/timeseries/%s?type=%s&period1=%d&period2=%d",
		url.PathEscape(symbol), seriesType, now.AddDate(-5, 0, 0).Unix(), now.Unix())
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var tr timeseriesResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("yahoo timeseries decode: %w", err)
	}
	if tr.Timeseries.Error != nil {
		return nil, fmt.Errorf("yahoo timeseries api error: %s", tr.Timeseries.Error.Description)
	}

	series := map[string]float64{}
	for _, result := range tr.Timeseries.Result {
		raw, ok := result[seriesType]
		if !ok {
			continue
		}
		var points []*timeseriesPoint
		if err := json.Unmarshal(raw, &points); err != nil {
			return nil, fmt.Errorf("yahoo timeseries points decode: %w", err)
		}
		for _, p := range points {
			if p == nil {
				continue
			}
			t, err := time.Parse("2006-01-02", p.AsOfDate)
			if err != nil {
				continue
			}
			if quarterly {
				series[divergence.QuarterKey(t.Year(), int(t.Month()-1)/3+1)] = p.ReportedValue.Raw
			} else {
				series[divergence.YearKey(t.Year())] = p.ReportedValue.Raw
			}
		}
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("yahoo timeseries: no %s data for %s", seriesType, symbol)
	}
	return series, nil
}

func (f *YahooFetcher) AnnualRevenue(ctx context.Context, symbol string) (map[string]float64, error) {
	return f.fetchTimeseries(ctx, symbol, "annualTotalRevenue", false)
}

func (f *YahooFetcher) QuarterlyRevenue(ctx context.Context, symbol string) (map[string]float64, error) {
	return f.fetchTimeseries(ctx, symbol, "quarterlyTotalRevenue", true)
}

func (f *YahooFetcher) AnnualNetProfit(ctx context.Context, symbol string) (map[string]float64, error) {
	return f.fetchTimeseries(ctx, symbol, "annualNetIncome", false)
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// PriceHistory fetches daily closes and averages them per fiscal year and
// per fiscal quarter, matching the fundamentals period keys.
func (f *YahooFetcher) PriceHistory(ctx context.Context, symbol string, years int) (map[string]float64, map[string]float64, error) {
	if years <= 0 {
		years = 3
	}
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%dy",
		url.PathEscape(symbol), years)
	body, err := f.get(ctx, u)
	if err != nil {
		return nil, nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, nil, fmt.Errorf("yahoo chart decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, nil, fmt.Errorf("yahoo chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil, fmt.Errorf("yahoo chart: no data for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil, fmt.Errorf("yahoo chart: no quote data for %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	yearSums := map[string]float64{}
	yearCounts := map[string]int{}
	quarterSums := map[string]float64{}
	quarterCounts := map[string]int{}
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		c := toFloat(closes[i])
		if c == 0 {
			continue // null bars (holidays etc.)
		}
		t := time.Unix(ts, 0)
		yk := divergence.YearKey(t.Year())
		qk := divergence.QuarterKey(t.Year(), int(t.Month()-1)/3+1)
		yearSums[yk] += c
		yearCounts[yk]++
		quarterSums[qk] += c
		quarterCounts[qk]++
	}

	yearly := make(map[string]float64, len(yearSums))
	for k, sum := range yearSums {
		yearly[k] = sum / float64(yearCounts[k])
	}
	quarterly := make(map[string]float64, len(quarterSums))
	for k, sum := range quarterSums {
		quarterly[k] = sum / float64(quarterCounts[k])
	}
	return yearly, quarterly, nil
}
