package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ValueScope/internal/cache"
	"ValueScope/internal/collector"
	"ValueScope/internal/lexicon"
	"ValueScope/internal/model"
	"ValueScope/internal/notifier"
	"ValueScope/internal/recorder"
)

func testScheduler(t *testing.T, screener *collector.MockScreener, news *collector.MockNews, watchlist []string) *Scheduler {
	t.Helper()
	analyzer := collector.NewAnalyzer(screener, news, lexicon.Curated(), 4)
	industries := cache.NewIndustryStore(
		filepath.Join(t.TempDir(), "industries.json"),
		7*24*time.Hour,
		screener,
	)
	tn := notifier.NewTelegramNotifier("", "", "")
	return NewScheduler(context.Background(), analyzer, industries, tn, recorder.NewNoopRecorder(), watchlist)
}

func TestRegisterAll(t *testing.T) {
	s := testScheduler(t, &collector.MockScreener{}, &collector.MockNews{}, nil)
	if err := s.RegisterAll("0 0 6 * * 0", "0 30 17 * * 1-5"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(s.Cron.Entries()) != 2 {
		t.Errorf("expected 2 cron entries, got %d", len(s.Cron.Entries()))
	}
}

func TestRegisterAll_BadSpec(t *testing.T) {
	s := testScheduler(t, &collector.MockScreener{}, &collector.MockNews{}, nil)
	if err := s.RegisterAll("not a cron spec", "0 30 17 * * 1-5"); err == nil {
		t.Error("expected error for invalid cron spec")
	}
}

func TestHandleCommand_Analyze(t *testing.T) {
	screener := &collector.MockScreener{
		Annual: map[string]map[string]float64{
			"TCS.NS": {"2022": 2.0e12, "2023": 2.4e12},
		},
		Yearly: map[string]float64{"2022": 3000, "2023": 3050},
	}
	s := testScheduler(t, screener, &collector.MockNews{}, nil)

	reply := s.HandleCommand("/analyze tcs.ns")
	if !strings.Contains(reply, "TCS.NS") {
		t.Errorf("reply should name the symbol: %s", reply)
	}
	if !strings.Contains(reply, "UNDERVALUED") {
		t.Errorf("reply should carry the signal: %s", reply)
	}
}

func TestHandleCommand_News(t *testing.T) {
	news := &collector.MockNews{Items: []model.Headline{
		{Title: "Company posts net loss", Source: "ET"},
	}}
	s := testScheduler(t, &collector.MockScreener{}, news, nil)

	reply := s.HandleCommand("/news Some Company")
	if !strings.Contains(reply, "Some Company") {
		t.Errorf("reply should name the stock: %s", reply)
	}
	if !strings.Contains(reply, "net loss") {
		t.Errorf("reply should include the headline: %s", reply)
	}
}

func TestHandleCommand_Industries(t *testing.T) {
	screener := &collector.MockScreener{Sectors: map[string][]string{
		"Financial Services": {"Banks"},
		"Healthcare":         {"Pharma"},
	}}
	s := testScheduler(t, screener, &collector.MockNews{}, nil)

	reply := s.HandleCommand("/industries")
	if !strings.Contains(reply, "Banks") || !strings.Contains(reply, "Pharma") {
		t.Errorf("reply should list industries: %s", reply)
	}
}

func TestHandleCommand_Help(t *testing.T) {
	s := testScheduler(t, &collector.MockScreener{}, &collector.MockNews{}, nil)
	for _, cmd := range []string{"", "/unknown", "hello"} {
		reply := s.HandleCommand(cmd)
		if !strings.Contains(reply, "/analyze") {
			t.Errorf("expected help text for %q, got: %s", cmd, reply)
		}
	}
}

func TestHandleCommand_AnalyzeMissingArg(t *testing.T) {
	s := testScheduler(t, &collector.MockScreener{}, &collector.MockNews{}, nil)
	reply := s.HandleCommand("/analyze")
	if !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage hint, got: %s", reply)
	}
}

func TestAlerting(t *testing.T) {
	fair := &model.Analysis{
		AnnualDivergence: &model.DivergenceResult{Signal: model.SignalFairValue},
	}
	if alerting(fair) {
		t.Error("fair value should not alert")
	}

	under := &model.Analysis{
		QuarterlyDivergence: &model.DivergenceResult{Signal: model.SignalUndervalued},
	}
	if !alerting(under) {
		t.Error("undervalued should alert")
	}

	noData := &model.Analysis{}
	if alerting(noData) {
		t.Error("missing divergence should not alert")
	}
}

func TestAlerting_MajoritySentiment(t *testing.T) {
	// A fair-value signal with mostly bearish coverage still alerts.
	leaning := &model.Analysis{
		AnnualDivergence: &model.DivergenceResult{Signal: model.SignalFairValue},
		News: []model.NewsArticle{
			{Title: "Penalty imposed on company", Sentiment: model.SentimentBearish},
			{Title: "Margin pressure mounts", Sentiment: model.SentimentBearish},
			{Title: "AGM scheduled", Sentiment: model.SentimentNeutral},
		},
	}
	if !alerting(leaning) {
		t.Error("2 of 3 non-neutral headlines should alert")
	}

	split := &model.Analysis{
		News: []model.NewsArticle{
			{Sentiment: model.SentimentBullish},
			{Sentiment: model.SentimentNeutral},
		},
	}
	if alerting(split) {
		t.Error("an even split is not a majority, should not alert")
	}

	quiet := &model.Analysis{
		News: []model.NewsArticle{
			{Sentiment: model.SentimentNeutral},
			{Sentiment: model.SentimentNeutral},
			{Sentiment: model.SentimentBullish},
		},
	}
	if alerting(quiet) {
		t.Error("minority non-neutral coverage should not alert")
	}
}
