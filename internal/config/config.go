package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Values come from an optional
// YAML file, overridden by environment variables, then defaulted.
type Config struct {
	Telegram struct {
		BotToken   string `yaml:"bot_token"`
		WebhookURL string `yaml:"webhook_url"`
	} `yaml:"telegram"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Cache struct {
		TTLMinutes   int  `yaml:"ttl_minutes"`
		BusinessDays bool `yaml:"business_days"`
	} `yaml:"cache"`
	Chart struct {
		DefaultDays   int `yaml:"default_days"`
		DefaultWidth  int `yaml:"default_width"`
		DefaultHeight int `yaml:"default_height"`
	} `yaml:"chart"`
	Refresh struct {
		Symbols []string `yaml:"symbols"`
		Cron    string   `yaml:"cron"`
	} `yaml:"refresh"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Cache.BusinessDays = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("WEBHOOK_PUBLIC_URL"); v != "" {
		cfg.Telegram.WebhookURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "9095"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockcharts.db"
	}
	if cfg.Cache.TTLMinutes <= 0 {
		cfg.Cache.TTLMinutes = 5
	}
	if cfg.Chart.DefaultDays <= 0 {
		cfg.Chart.DefaultDays = 30
	}
	if cfg.Chart.DefaultWidth <= 0 {
		cfg.Chart.DefaultWidth = 500
	}
	if cfg.Chart.DefaultHeight <= 0 {
		cfg.Chart.DefaultHeight = 400
	}
	if cfg.Refresh.Cron == "" {
		cfg.Refresh.Cron = "@every 5m"
	}
	return cfg, nil
}

// Validate checks the fields required to run the bot.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.WebhookURL == "" {
		return fmt.Errorf("telegram.webhook_url is required")
	}
	return nil
}
