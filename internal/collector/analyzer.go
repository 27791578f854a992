package collector

import (
	"context"
	"fmt"
	"log"
	"sort"

	"ValueScope/internal/divergence"
	"ValueScope/internal/lexicon"
	"ValueScope/internal/model"
	"ValueScope/internal/sentiment"
)

// DefaultNewsLimit is how many headlines one analysis classifies.
const DefaultNewsLimit = 10

// Analyzer orchestrates data fetching, sentiment classification and the
// divergence computation for one stock. The engine packages stay pure; all
// outward calls happen here.
type Analyzer struct {
	Screener  ScreenerFetcher
	News      NewsFetcher
	Lexicon   *lexicon.Lexicon
	MaxPoints int // trailing window for the divergence engine
	NewsLimit int
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(screener ScreenerFetcher, news NewsFetcher, lex *lexicon.Lexicon, maxPoints int) *Analyzer {
	return &Analyzer{
		Screener:  screener,
		News:      news,
		Lexicon:   lex,
		MaxPoints: maxPoints,
		NewsLimit: DefaultNewsLimit,
	}
}

// Analyze runs the full analysis for a symbol: revenue and price series for
// the symbol (and revenue for its peers), annual and quarterly divergence,
// the financial snapshot, and classified news. News fetching runs
// concurrently with the fundamentals fetch; neither depends on the other.
func (a *Analyzer) Analyze(ctx context.Context, symbol string, peers []string) (*model.Analysis, error) {
	quote, err := a.Screener.Quote(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] quote fetch failed for %s: %v", symbol, err)
	}

	stockName := symbol
	if quote != nil && quote.Name != "" {
		stockName = quote.Name
	}

	type newsResult struct {
		headlines []model.Headline
		err       error
	}
	newsCh := make(chan newsResult, 1)
	go func() {
		headlines, err := a.News.Headlines(ctx, stockName, a.NewsLimit)
		newsCh <- newsResult{headlines, err}
	}()

	analysis := &model.Analysis{
		Symbol:           symbol,
		AnnualRevenue:    map[string]map[string]float64{},
		QuarterlyRevenue: map[string]map[string]float64{},
	}

	for _, t := range append([]string{symbol}, peers...) {
		if annual, err := a.Screener.AnnualRevenue(ctx, t); err != nil {
			log.Printf("[WARN] annual revenue fetch failed for %s: %v", t, err)
		} else {
			analysis.AnnualRevenue[t] = annual
		}
		if quarterly, err := a.Screener.QuarterlyRevenue(ctx, t); err != nil {
			log.Printf("[WARN] quarterly revenue fetch failed for %s: %v", t, err)
		} else {
			analysis.QuarterlyRevenue[t] = quarterly
		}
	}

	priceYearly, priceQuarterly, err := a.Screener.PriceHistory(ctx, symbol, 4)
	if err != nil {
		log.Printf("[WARN] price history fetch failed for %s: %v", symbol, err)
	}
	analysis.PriceYearly = priceYearly
	analysis.PriceQuarterly = priceQuarterly

	if revenue, ok := analysis.AnnualRevenue[symbol]; ok && priceYearly != nil {
		result, err := divergence.Compute(revenue, priceYearly, a.MaxPoints)
		if err != nil {
			log.Printf("[INFO] no annual divergence signal for %s: %v", symbol, err)
		} else {
			analysis.AnnualDivergence = result
		}
	}
	if revenue, ok := analysis.QuarterlyRevenue[symbol]; ok && priceQuarterly != nil {
		result, err := divergence.Compute(revenue, priceQuarterly, a.MaxPoints)
		if err != nil {
			log.Printf("[INFO] no quarterly divergence signal for %s: %v", symbol, err)
		} else {
			analysis.QuarterlyDivergence = result
		}
	}

	profit, err := a.Screener.AnnualNetProfit(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] net profit fetch failed for %s: %v", symbol, err)
	}
	analysis.Financials = buildSnapshot(analysis.AnnualRevenue[symbol], profit, quote)

	nr := <-newsCh
	if nr.err != nil {
		log.Printf("[WARN] news fetch failed for %s: %v", stockName, nr.err)
	}
	analysis.News = a.classify(nr.headlines, analysis.Financials)

	return analysis, nil
}

// ClassifyNews fetches and classifies headlines without any financial
// context, for the standalone news endpoint.
func (a *Analyzer) ClassifyNews(ctx context.Context, stockName string, limit int) ([]model.NewsArticle, error) {
	if limit <= 0 {
		limit = a.NewsLimit
	}
	headlines, err := a.News.Headlines(ctx, stockName, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	return a.classify(headlines, nil), nil
}

func (a *Analyzer) classify(headlines []model.Headline, financials *model.FinancialSnapshot) []model.NewsArticle {
	articles := make([]model.NewsArticle, 0, len(headlines))
	for _, h := range headlines {
		c := sentiment.Classify(h.Title, a.Lexicon)
		articles = append(articles, model.NewsArticle{
			Title:     h.Title,
			Source:    h.Source,
			Date:      h.Date,
			Sentiment: c.Sentiment,
			Evidence:  c.Evidence,
			Impact:    sentiment.Narrate(c.Sentiment, c.Evidence, h.Title, financials),
		})
	}
	return articles
}

// buildSnapshot assembles the sparse financial snapshot from whatever data
// arrived. Raw values come in rupees; the snapshot carries crore.
func buildSnapshot(revenue, profit map[string]float64, quote *model.StockQuote) *model.FinancialSnapshot {
	snap := &model.FinancialSnapshot{}
	populated := false

	if last, growth, ok := latestWithGrowth(revenue); ok {
		snap.RevenueCr = model.Float(last / 1e7)
		if growth != nil {
			snap.RevenueGrowth = growth
		}
		populated = true
	}
	if last, growth, ok := latestWithGrowth(profit); ok {
		snap.NetProfitCr = model.Float(last / 1e7)
		if growth != nil {
			snap.ProfitGrowth = growth
		}
		populated = true
	}
	if quote != nil {
		if quote.TrailingPE != 0 {
			snap.PE = model.Float(quote.TrailingPE)
			populated = true
		}
		if quote.MarketCap != 0 {
			snap.MarketCapCr = model.Float(quote.MarketCap / 1e7)
			populated = true
		}
	}
	if !populated {
		return nil
	}
	return snap
}

// latestWithGrowth returns the most recent value of a period series and,
// when a prior period exists with a nonzero value, the YoY growth percent.
func latestWithGrowth(series map[string]float64) (last float64, growth *float64, ok bool) {
	if len(series) == 0 {
		return 0, nil, false
	}
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	last = series[keys[len(keys)-1]]
	if len(keys) >= 2 {
		prev := series[keys[len(keys)-2]]
		if prev != 0 {
			growth = model.Float((last - prev) / prev * 100)
		}
	}
	return last, growth, true
}
