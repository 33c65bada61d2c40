package marketdata

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResponse(t *testing.T, payload string) *chartResponse {
	t.Helper()
	var resp chartResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

// payload builds a minimal v8 chart body with daily timestamps starting at
// base. Close values use "null" strings verbatim.
func payload(base int64, step int64, currency string, closes ...string) string {
	ts := make([]string, len(closes))
	for i := range closes {
		ts[i] = fmt.Sprintf("%d", base+int64(i)*step)
	}
	return fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":%q},
		"timestamp":[%s],
		"indicators":{"quote":[{"close":[%s]}]}
	}],"error":null}}`, currency, strings.Join(ts, ","), strings.Join(closes, ","))
}

const day = int64(86400)

func TestNormalizeSeriesDropsNullsAndDerivesSummary(t *testing.T) {
	resp := mustResponse(t, payload(1700000000, day, "USD", "100", "null", "105", "102"))

	s, err := normalizeSeries("AAPL", resp, 3, false, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 105, 102}, s.Prices)
	require.Len(t, s.Timestamps, 3)
	assert.Nil(t, s.OHLC)

	assert.Equal(t, 102.0, s.LatestPrice)
	assert.Equal(t, 2.0, s.PeriodChange)
	assert.Equal(t, 2.0, s.PeriodChangePercent)
	assert.True(t, s.HasIntervalChange)
	assert.Equal(t, -3.0, s.LastIntervalChange)
	assert.Equal(t, -2.86, s.LastIntervalPercent) // -3/105*100 rounded
	assert.Equal(t, "USD", s.Currency)
}

func TestNormalizeSeriesSortsOutOfOrderPoints(t *testing.T) {
	p := fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD"},
		"timestamp":[%d,%d,%d],
		"indicators":{"quote":[{"close":[102,100,101]}]}
	}],"error":null}}`, 1700000000+2*day, 1700000000, 1700000000+day)
	resp := mustResponse(t, p)

	s, err := normalizeSeries("AAPL", resp, 3, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101, 102}, s.Prices)
	assert.True(t, s.Timestamps[0].Before(s.Timestamps[1]))
}

func TestNormalizeSeriesDedupesDenseSampling(t *testing.T) {
	// 12 hourly points across 2 calendar days for a 5-day request: over the
	// requestedDays*2 threshold, so only the last observation of each day
	// survives.
	closes := make([]string, 12)
	for i := range closes {
		closes[i] = fmt.Sprintf("%d", 100+i)
	}
	resp := mustResponse(t, payload(1700000000, 3600*4, "USD", closes...))

	s, err := normalizeSeries("AAPL", resp, 5, false, time.UTC)
	require.NoError(t, err)
	require.Len(t, s.Prices, 3) // 44h span at 4h steps covers 3 UTC dates
	// Latest observation per day wins.
	assert.Equal(t, 111.0, s.Prices[len(s.Prices)-1])
}

func TestNormalizeSeriesSkipsDedupBelowThreshold(t *testing.T) {
	// 9 points for a 5-day request is within requestedDays*2; all kept.
	closes := make([]string, 9)
	for i := range closes {
		closes[i] = fmt.Sprintf("%d", 100+i)
	}
	resp := mustResponse(t, payload(1700000000, 3600, "USD", closes...))

	s, err := normalizeSeries("AAPL", resp, 5, false, time.UTC)
	require.NoError(t, err)
	assert.Len(t, s.Prices, 9)
}

func TestNormalizeSeriesDedupFallback(t *testing.T) {
	// All points on one calendar day would dedupe to a single point; the
	// pre-dedup list is kept instead so a segment can still be drawn.
	closes := []string{"100", "101", "102", "103", "104"}
	resp := mustResponse(t, payload(1700000000, 60, "USD", closes...))

	s, err := normalizeSeries("AAPL", resp, 1, false, time.UTC)
	require.NoError(t, err)
	assert.Len(t, s.Prices, 5)
}

func TestNormalizeSeriesSinglePointHasNoIntervalChange(t *testing.T) {
	resp := mustResponse(t, payload(1700000000, day, "USD", "100"))

	s, err := normalizeSeries("AAPL", resp, 1, false, time.UTC)
	require.NoError(t, err)
	assert.False(t, s.HasIntervalChange)
	assert.Equal(t, 100.0, s.LatestPrice)
	assert.Equal(t, 0.0, s.PeriodChange)
}

func TestNormalizeSeriesErrors(t *testing.T) {
	_, err := normalizeSeries("AAPL", mustResponse(t, `{"chart":{"result":[],"error":null}}`), 5, false, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = normalizeSeries("AAPL", mustResponse(t, payload(1700000000, day, "USD", "null", "null")), 5, false, time.UTC)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestNormalizeSeriesOHLC(t *testing.T) {
	p := fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD"},
		"timestamp":[%d,%d],
		"indicators":{"quote":[{
			"open":[99,101],
			"high":[106,103],
			"low":[98,100],
			"close":[105,102]
		}]}
	}],"error":null}}`, 1700000000, 1700000000+day)

	s, err := normalizeSeries("AAPL", mustResponse(t, p), 2, true, time.UTC)
	require.NoError(t, err)
	require.Len(t, s.OHLC, 2)
	assert.Equal(t, OHLCBar{Open: 99, High: 106, Low: 98, Close: 105}, s.OHLC[0])
	assert.Equal(t, s.Prices[0], s.OHLC[0].Close)
}

func TestNormalizeSeriesOHLCDroppedWhenIncomplete(t *testing.T) {
	// Second bar has a null high: close survives as a line point, but OHLC
	// is withheld entirely to keep it index-aligned with Prices.
	p := fmt.Sprintf(`{"chart":{"result":[{
		"meta":{"currency":"USD"},
		"timestamp":[%d,%d],
		"indicators":{"quote":[{
			"open":[99,101],
			"high":[106,null],
			"low":[98,100],
			"close":[105,102]
		}]}
	}],"error":null}}`, 1700000000, 1700000000+day)

	s, err := normalizeSeries("AAPL", mustResponse(t, p), 2, true, time.UTC)
	require.NoError(t, err)
	assert.Len(t, s.Prices, 2)
	assert.Nil(t, s.OHLC)
}

func TestCurrencyInference(t *testing.T) {
	// Meta currency wins when present.
	resp := mustResponse(t, payload(1700000000, day, "EUR", "100", "101"))
	s, err := normalizeSeries("SHOP.TO", resp, 2, false, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "EUR", s.Currency)

	cases := map[string]string{
		"SHOP.TO": "CAD",
		"AZN.L":   "GBP",
		"BMW.DE":  "EUR",
		"7203.T":  "JPY",
		"BHP.AX":  "AUD",
		"0700.HK": "HKD",
		"AAPL":    "USD",
	}
	for sym, want := range cases {
		resp := mustResponse(t, payload(1700000000, day, "", "100", "101"))
		s, err := normalizeSeries(sym, resp, 2, false, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, want, s.Currency, sym)
	}
}
