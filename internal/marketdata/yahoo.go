package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// Provider fetches a raw chart payload for a symbol over an epoch-second
// window.
type Provider interface {
	FetchChart(ctx context.Context, symbol string, start, end int64) (*chartResponse, error)
}

// YahooClient implements Provider against the Yahoo Finance v8 chart API.
type YahooClient struct {
	client  *http.Client
	hosts   []string
	logger  *zap.Logger
	maxWait time.Duration
}

func NewYahooClient(logger *zap.Logger) *YahooClient {
	return &YahooClient{
		client:  &http.Client{Timeout: 30 * time.Second},
		hosts:   []string{"query1.finance.yahoo.com", "query2.finance.yahoo.com"},
		logger:  logger,
		maxWait: 5 * time.Second,
	}
}

// FetchChart requests daily bars for the window and retries transient
// failures (transport errors, 429, 5xx) with exponential backoff, rotating
// between query hosts.
func (c *YahooClient) FetchChart(ctx context.Context, symbol string, start, end int64) (*chartResponse, error) {
	var resp *chartResponse
	attempt := 0

	op := func() error {
		host := c.hosts[attempt%len(c.hosts)]
		attempt++
		u := fmt.Sprintf("https://%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
			host, url.PathEscape(symbol), start, end)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
		req.Header.Set("Accept", "application/json")

		res, err := c.client.Do(req)
		if err != nil {
			return err
		}
		body, readErr := io.ReadAll(res.Body)
		res.Body.Close()
		if readErr != nil {
			return fmt.Errorf("read body: %w", readErr)
		}

		if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
			c.logger.Warn("retryable provider status",
				zap.String("host", host),
				zap.String("symbol", symbol),
				zap.Int("status", res.StatusCode))
			return fmt.Errorf("%s returned %d", host, res.StatusCode)
		}
		if res.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("%s returned %d: %s", host, res.StatusCode, preview(body)))
		}
		if strings.HasPrefix(string(body), "<") {
			return fmt.Errorf("%w: non-json body: %s", ErrInvalidResponse, preview(body))
		}

		var yc chartResponse
		if err := json.Unmarshal(body, &yc); err != nil {
			return backoff.Permanent(fmt.Errorf("%w: %v", ErrInvalidResponse, err))
		}
		resp = &yc
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = c.maxWait
	bo.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return resp, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}
