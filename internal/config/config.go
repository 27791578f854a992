package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Lexicon struct {
		DictionaryPath string `yaml:"dictionary_path"`
	} `yaml:"lexicon"`
	Screener struct {
		Region   string `yaml:"region"`
		Exchange string `yaml:"exchange"`
	} `yaml:"screener"`
	News struct {
		Limit int `yaml:"limit"`
	} `yaml:"news"`
	Cache struct {
		IndustriesFile string `yaml:"industries_file"`
		TTLDays        int    `yaml:"ttl_days"`
	} `yaml:"cache"`
	Analysis struct {
		MaxPoints int `yaml:"max_points"`
	} `yaml:"analysis"`
	Watchlist struct {
		Symbols []string `yaml:"symbols"`
	} `yaml:"watchlist"`
	Schedule struct {
		IndustryCron  string `yaml:"industry_cron"`
		WatchlistCron string `yaml:"watchlist_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LEXICON_PATH"); v != "" {
		cfg.Lexicon.DictionaryPath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Watchlist.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MAX_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxPoints = n
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Lexicon.DictionaryPath == "" {
		cfg.Lexicon.DictionaryPath = "configs/polarity.json"
	}
	if cfg.Screener.Region == "" {
		cfg.Screener.Region = "in"
	}
	if cfg.Screener.Exchange == "" {
		cfg.Screener.Exchange = "NSI"
	}
	if cfg.News.Limit == 0 {
		cfg.News.Limit = 10
	}
	if cfg.Cache.IndustriesFile == "" {
		cfg.Cache.IndustriesFile = "data/industries.json"
	}
	if cfg.Cache.TTLDays == 0 {
		cfg.Cache.TTLDays = 7
	}
	if cfg.Analysis.MaxPoints == 0 {
		cfg.Analysis.MaxPoints = 4
	}
	if cfg.Schedule.IndustryCron == "" {
		cfg.Schedule.IndustryCron = "0 0 6 * * 0"
	}
	if cfg.Schedule.WatchlistCron == "" {
		cfg.Schedule.WatchlistCron = "0 30 17 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/valuescope.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Analysis.MaxPoints < 2 {
		return fmt.Errorf("analysis.max_points must be at least 2")
	}
	if c.Cache.TTLDays <= 0 {
		return fmt.Errorf("cache.ttl_days must be positive")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}
