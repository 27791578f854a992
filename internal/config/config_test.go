package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Analysis.MaxPoints != 4 {
		t.Errorf("expected default max_points 4, got %d", cfg.Analysis.MaxPoints)
	}
	if cfg.Cache.TTLDays != 7 {
		t.Errorf("expected default ttl_days 7, got %d", cfg.Cache.TTLDays)
	}
	if cfg.Screener.Region != "in" || cfg.Screener.Exchange != "NSI" {
		t.Errorf("unexpected screener defaults: %s/%s", cfg.Screener.Region, cfg.Screener.Exchange)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_YAMLValues(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
analysis:
  max_points: 8
watchlist:
  symbols: ["TCS.NS", "INFY.NS"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Analysis.MaxPoints != 8 {
		t.Errorf("expected max_points 8, got %d", cfg.Analysis.MaxPoints)
	}
	if len(cfg.Watchlist.Symbols) != 2 {
		t.Errorf("expected 2 watchlist symbols, got %d", len(cfg.Watchlist.Symbols))
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("WATCHLIST", "RELIANCE.NS,HDFC.NS")
	t.Setenv("MAX_POINTS", "6")

	path := writeConfig(t, `
server:
  addr: ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("env should override yaml, got %s", cfg.Server.Addr)
	}
	if len(cfg.Watchlist.Symbols) != 2 || cfg.Watchlist.Symbols[0] != "RELIANCE.NS" {
		t.Errorf("unexpected watchlist: %v", cfg.Watchlist.Symbols)
	}
	if cfg.Analysis.MaxPoints != 6 {
		t.Errorf("expected max_points 6, got %d", cfg.Analysis.MaxPoints)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate(t *testing.T) {
	cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	cfg.Analysis.MaxPoints = 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for max_points < 2")
	}
	cfg.Analysis.MaxPoints = 4

	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bot_token without chat_id")
	}
	cfg.Telegram.ChatID = "123"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}
