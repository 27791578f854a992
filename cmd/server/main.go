package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ValueScope/internal/cache"
	"ValueScope/internal/collector"
	"ValueScope/internal/config"
	"ValueScope/internal/lexicon"
	"ValueScope/internal/notifier"
	"ValueScope/internal/recorder"
	"ValueScope/internal/scheduler"
	"ValueScope/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ValueScope starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load lexicon; fall back to the curated word lists when the dictionary
	// file is missing or malformed.
	lex, err := lexicon.Load(cfg.Lexicon.DictionaryPath)
	if err != nil {
		log.Printf("[WARN] load dictionary %s failed, using curated lexicon: %v", cfg.Lexicon.DictionaryPath, err)
		lex = lexicon.Curated()
	}

	// Init fetchers
	screener := collector.NewYahooFetcher(cfg.Screener.Region, cfg.Screener.Exchange, cfg.Proxy)
	news := collector.NewGoogleNewsFetcher(cfg.Proxy)
	log.Printf("[INFO] data sources: %s, %s", screener.Name(), news.Name())

	// Init analyzer
	analyzer := collector.NewAnalyzer(screener, news, lex, cfg.Analysis.MaxPoints)
	analyzer.NewsLimit = cfg.News.Limit

	// Init industry cache
	industries := cache.NewIndustryStore(
		cfg.Cache.IndustriesFile,
		time.Duration(cfg.Cache.TTLDays)*24*time.Hour,
		screener,
	)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, analyzer, industries, tn, rec, cfg.Watchlist.Symbols)
	if err := sched.RegisterAll(cfg.Schedule.IndustryCron, cfg.Schedule.WatchlistCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, scanning watchlist now")
		go sched.RunWatchlistNow()
	}

	// Start HTTP API
	srv := server.New(cfg.Server.Addr, analyzer, industries, rec)
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] ValueScope is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] ValueScope stopped")
}
