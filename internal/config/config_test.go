package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "9095", cfg.Server.Port)
	assert.Equal(t, "data/stockcharts.db", cfg.Database.SQLitePath)
	assert.Equal(t, 5, cfg.Cache.TTLMinutes)
	assert.True(t, cfg.Cache.BusinessDays)
	assert.Equal(t, 30, cfg.Chart.DefaultDays)
	assert.Equal(t, 500, cfg.Chart.DefaultWidth)
	assert.Equal(t, 400, cfg.Chart.DefaultHeight)
	assert.Equal(t, "@every 5m", cfg.Refresh.Cron)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: tok
  webhook_url: https://example.com/hook
server:
  port: "8080"
cache:
  ttl_minutes: 10
  business_days: false
chart:
  default_days: 7
refresh:
  symbols: [AAPL, MSFT]
  cron: "@every 1m"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tok", cfg.Telegram.BotToken)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Cache.TTLMinutes)
	assert.False(t, cfg.Cache.BusinessDays)
	assert.Equal(t, 7, cfg.Chart.DefaultDays)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.Refresh.Symbols)
	assert.Equal(t, "@every 1m", cfg.Refresh.Cron)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: file-token
server:
  port: "8080"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("PORT", "9000")
	t.Setenv("CACHE_TTL_MINUTES", "15")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 15, cfg.Cache.TTLMinutes)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cfg.Telegram.BotToken = "tok"
	assert.Error(t, cfg.Validate())

	cfg.Telegram.WebhookURL = "https://example.com/hook"
	assert.NoError(t, cfg.Validate())
}
