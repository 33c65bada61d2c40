package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stockcharts/internal/marketdata"
)

// Scheduler periodically re-runs the get-or-fetch path for a watch list so
// interactive requests hit a warm cache.
type Scheduler struct {
	cron    *cron.Cron
	service *marketdata.Service
	symbols []string
	days    int
	logger  *zap.Logger
}

func New(service *marketdata.Service, symbols []string, days int, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		symbols: symbols,
		days:    days,
		logger:  logger,
	}
}

// Register schedules the refresh job. spec accepts standard cron syntax or
// descriptors like "@every 5m".
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Strings("symbols", s.symbols))
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) refresh() {
	for _, sym := range s.symbols {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := s.service.GetSeries(ctx, sym, s.days, false); err != nil {
			s.logger.Error("refresh failed", zap.String("symbol", sym), zap.Error(err))
		}
		cancel()
	}
}
