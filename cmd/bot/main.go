package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"stockcharts/internal/config"
	"stockcharts/internal/marketdata"
	"stockcharts/internal/scheduler"
	"stockcharts/internal/server"
	"stockcharts/internal/storage"
	"stockcharts/internal/telegram"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	// Ensure parent directory for the DB exists
	_ = os.MkdirAll(filepath.Dir(cfg.Database.SQLitePath), 0o755)
	db, err := storage.OpenSQLite("file:" + cfg.Database.SQLitePath + "?_fk=1")
	if err != nil {
		logger.Fatal("open sqlite", zap.Error(err))
	}
	defer db.Close()
	if err := storage.InitSchema(db); err != nil {
		logger.Fatal("init schema", zap.Error(err))
	}
	logger.Info("sqlite ready", zap.String("path", cfg.Database.SQLitePath))
	store := storage.NewStore(db)

	provider := marketdata.NewYahooClient(logger)
	service := marketdata.NewService(provider, logger,
		marketdata.WithTTL(time.Duration(cfg.Cache.TTLMinutes)*time.Minute),
		marketdata.WithBusinessDays(cfg.Cache.BusinessDays),
		marketdata.WithRecorder(func(s *marketdata.Series, days int, businessDays bool) {
			rec := &storage.FetchRecord{
				Symbol:       s.Symbol,
				Days:         days,
				BusinessDays: businessDays,
				Points:       len(s.Prices),
				LatestPrice:  s.LatestPrice,
				Currency:     s.Currency,
				FetchedAt:    time.Now(),
			}
			if err := store.RecordFetch(rec); err != nil {
				logger.Warn("record fetch", zap.String("symbol", s.Symbol), zap.Error(err))
			}
		}),
	)

	if len(cfg.Refresh.Symbols) > 0 {
		sched := scheduler.New(service, cfg.Refresh.Symbols, cfg.Chart.DefaultDays, logger)
		if err := sched.Register(cfg.Refresh.Cron); err != nil {
			logger.Fatal("register scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	}

	tg, err := telegram.NewBot(cfg.Telegram.BotToken, cfg.Telegram.WebhookURL,
		service, store, cfg.Chart.DefaultDays, cfg.Chart.DefaultWidth, cfg.Chart.DefaultHeight, logger)
	if err != nil {
		logger.Fatal("telegram init", zap.Error(err))
	}

	h := server.NewHandler(service, server.Defaults{
		Days:   cfg.Chart.DefaultDays,
		Width:  cfg.Chart.DefaultWidth,
		Height: cfg.Chart.DefaultHeight,
	}, logger)
	mux := server.NewHTTPMux(h, tg.WebhookHandler)

	addr := ":" + cfg.Server.Port
	logger.Info("http listening", zap.String("addr", addr))
	if err := server.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
