package marketdata

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"stockcharts/internal/calendar"
)

type cacheKey struct {
	symbol       string
	days         int
	businessDays bool
	includeOHLC  bool
}

type cacheEntry struct {
	series    *Series
	fetchedAt time.Time
}

// Service is the key-addressed, TTL-bounded series store. A live entry is
// served without any fetch; a miss runs the full resolve-fetch-normalize
// pipeline and stores the result atomically.
type Service struct {
	mu    sync.Mutex
	cache map[cacheKey]cacheEntry

	provider     Provider
	ttl          time.Duration
	businessDays bool
	loc          *time.Location
	logger       *zap.Logger
	now          func() time.Time
	record       func(series *Series, days int, businessDays bool)
}

// Option configures a Service.
type Option func(*Service)

// WithTTL sets the cache entry lifetime.
func WithTTL(d time.Duration) Option {
	return func(s *Service) { s.ttl = d }
}

// WithBusinessDays sets the initial day-count interpretation mode.
func WithBusinessDays(b bool) Option {
	return func(s *Service) { s.businessDays = b }
}

// WithLocation sets the calendar location used for deduplication and
// window math.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRecorder registers a hook invoked after every successful fetch.
// Cache hits do not trigger it.
func WithRecorder(fn func(series *Series, days int, businessDays bool)) Option {
	return func(s *Service) { s.record = fn }
}

func NewService(provider Provider, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		cache:        make(map[cacheKey]cacheEntry),
		provider:     provider,
		ttl:          5 * time.Minute,
		businessDays: true,
		loc:          time.Local,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSeries returns the cached series for the request, fetching and
// normalizing a fresh one when no live entry exists. Failures leave the
// cache untouched so the next call retries.
func (s *Service) GetSeries(ctx context.Context, symbol string, days int, includeOHLC bool) (*Series, error) {
	clean := strings.ToUpper(strings.TrimSpace(symbol))
	key := cacheKey{symbol: clean, days: days, businessDays: s.businessDays, includeOHLC: includeOHLC}

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && s.now().Sub(entry.fetchedAt) < s.ttl {
		s.mu.Unlock()
		return entry.series, nil
	}
	businessDays := s.businessDays
	s.mu.Unlock()

	series, err := s.fetchAndNormalize(ctx, clean, days, businessDays, includeOHLC)
	if err != nil {
		return nil, &FetchError{Symbol: clean, Err: err}
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{series: series, fetchedAt: s.now()}
	s.mu.Unlock()

	if s.record != nil {
		s.record(series, days, businessDays)
	}
	return series, nil
}

func (s *Service) fetchAndNormalize(ctx context.Context, symbol string, days int, businessDays, includeOHLC bool) (*Series, error) {
	window := calendar.ResolveWindow(days, businessDays, s.now().In(s.loc))

	resp, err := s.provider.FetchChart(ctx, symbol, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	series, err := normalizeSeries(symbol, resp, days, includeOHLC, s.loc)
	if err != nil {
		return nil, err
	}
	series.WindowDescription = calendar.DescribeWindow(days, businessDays, window)

	s.logger.Info("series fetched",
		zap.String("symbol", symbol),
		zap.Int("days", days),
		zap.Int("points", len(series.Prices)),
		zap.Bool("ohlc", series.OHLC != nil))
	return series, nil
}

// ClearCache drops all entries. In-flight fetches are not cancelled; they
// repopulate their key on completion as a fresh miss would.
func (s *Service) ClearCache() {
	s.mu.Lock()
	s.cache = make(map[cacheKey]cacheEntry)
	s.mu.Unlock()
}

// CacheSize reports the number of stored entries, live or expired.
func (s *Service) CacheSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// SetTTL changes the entry lifetime for subsequent reads.
func (s *Service) SetTTL(minutes int) {
	s.mu.Lock()
	s.ttl = time.Duration(minutes) * time.Minute
	s.mu.Unlock()
}

// SetBusinessDays switches the day-count interpretation and flushes the
// cache: the mode is process-wide, so entries fetched under the old mode
// must not be served under the new one.
func (s *Service) SetBusinessDays(b bool) {
	s.mu.Lock()
	s.businessDays = b
	s.cache = make(map[cacheKey]cacheEntry)
	s.mu.Unlock()
}

// BusinessDays reports the current day-count interpretation.
func (s *Service) BusinessDays() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businessDays
}
