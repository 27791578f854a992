package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ValueScope/internal/cache"
	"ValueScope/internal/collector"
	"ValueScope/internal/model"
	"ValueScope/internal/notifier"
	"ValueScope/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron       *cron.Cron
	Analyzer   *collector.Analyzer
	Industries *cache.IndustryStore
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Watchlist  []string
	Ctx        context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, an *collector.Analyzer, ind *cache.IndustryStore, tn *notifier.TelegramNotifier, rec recorder.Recorder, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Analyzer:   an,
		Industries: ind,
		Notifier:   tn,
		Recorder:   rec,
		Watchlist:  watchlist,
		Ctx:        ctx,
	}
}

// RegisterAll registers the industry refresh and watchlist scan tasks.
func (s *Scheduler) RegisterAll(industryCron, watchlistCron string) error {
	if _, err := s.Cron.AddFunc(industryCron, s.industryRefreshTask); err != nil {
		return fmt.Errorf("register industry refresh: %w", err)
	}
	if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistScanTask); err != nil {
		return fmt.Errorf("register watchlist scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchlistNow executes the watchlist scan immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistScanTask()
}

func (s *Scheduler) industryRefreshTask() {
	log.Println("[INFO] refreshing industry cache")
	sectors, err := s.Industries.Refresh(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] industry refresh: %v", err)
		return
	}
	total := 0
	for _, industries := range sectors {
		total += len(industries)
	}
	log.Printf("[INFO] industry cache refreshed: %d industries across %d sectors", total, len(sectors))
}

func (s *Scheduler) watchlistScanTask() {
	if len(s.Watchlist) == 0 {
		return
	}
	log.Printf("[INFO] scanning watchlist (%d symbols)", len(s.Watchlist))
	for _, symbol := range s.Watchlist {
		analysis, err := s.Analyzer.Analyze(s.Ctx, symbol, nil)
		if err != nil {
			log.Printf("[ERROR] watchlist analyze %s: %v", symbol, err)
			continue
		}
		recorder.Persist(s.Recorder, analysis)
		if alerting(analysis) {
			s.trySend(notifier.FormatWatchlistAlert(analysis))
		}
	}
}

// alerting reports whether a scan result warrants a push alert: any
// non-fair-value signal, or non-neutral sentiment on a majority of the fresh
// headlines. Fair-value and no-data results with quiet news stay quiet.
func alerting(a *model.Analysis) bool {
	for _, d := range []*model.DivergenceResult{a.AnnualDivergence, a.QuarterlyDivergence} {
		if d != nil && d.Signal != model.SignalFairValue {
			return true
		}
	}
	nonNeutral := 0
	for _, n := range a.News {
		if n.Sentiment != model.SentimentNeutral {
			nonNeutral++
		}
	}
	return nonNeutral*2 > len(a.News)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/analyze":
		if len(fields) < 2 {
			return "Usage: /analyze SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		analysis, err := s.Analyzer.Analyze(s.Ctx, symbol, nil)
		if err != nil {
			return fmt.Sprintf("Analysis failed for %s: %v", symbol, err)
		}
		recorder.Persist(s.Recorder, analysis)
		return notifier.FormatAnalysisReport(analysis)
	case "/news":
		if len(fields) < 2 {
			return "Usage: /news STOCK NAME"
		}
		name := strings.Join(fields[1:], " ")
		articles, err := s.Analyzer.ClassifyNews(s.Ctx, name, 0)
		if err != nil {
			return fmt.Sprintf("News fetch failed for %s: %v", name, err)
		}
		return notifier.FormatNewsDigest(name, articles)
	case "/industries":
		sectors, err := s.Industries.Get(s.Ctx)
		if err != nil {
			return fmt.Sprintf("Industry list unavailable: %v", err)
		}
		return notifier.FormatIndustryList(sectors)
	case "/scan":
		go s.watchlistScanTask()
		return "Watchlist scan started"
	default:
		return helpText
	}
}

const helpText = "Commands:\n• /analyze SYMBOL\n• /news STOCK NAME\n• /industries\n• /scan"

func (s *Scheduler) trySend(text string) {
	if text == "" {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
