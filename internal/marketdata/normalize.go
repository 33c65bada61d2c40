package marketdata

import (
	"math"
	"sort"
	"time"
)

type rawPoint struct {
	ts    int64
	price float64
	bar   *OHLCBar
}

// normalizeSeries turns a raw chart payload into a canonical Series:
// non-finite closes are dropped, points are sorted chronologically,
// densely sampled series are deduplicated to one point per calendar day,
// and summary fields are derived.
func normalizeSeries(symbol string, resp *chartResponse, requestedDays int, includeOHLC bool, loc *time.Location) (*Series, error) {
	if len(resp.Chart.Result) == 0 {
		return nil, ErrInvalidResponse
	}
	result := resp.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, ErrInvalidResponse
	}
	quote := result.Indicators.Quote[0]

	valid := make([]rawPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		cl, ok := quoteAt(quote.Close, i)
		if !ok {
			continue
		}
		p := rawPoint{ts: ts, price: cl}
		if includeOHLC {
			open, okO := quoteAt(quote.Open, i)
			high, okH := quoteAt(quote.High, i)
			low, okL := quoteAt(quote.Low, i)
			if okO && okH && okL {
				p.bar = &OHLCBar{Open: open, High: high, Low: low, Close: cl}
			}
		}
		valid = append(valid, p)
	}
	if len(valid) == 0 {
		return nil, ErrNoData
	}

	// Provider order is expected but not guaranteed.
	sort.Slice(valid, func(i, j int) bool { return valid[i].ts < valid[j].ts })

	final := valid
	if len(valid) > requestedDays*2 {
		final = dedupeByDay(valid, loc)
		// Charting needs two points whenever two valid raw points exist.
		if len(final) < 2 && len(valid) >= 2 {
			final = valid
		}
	}

	s := &Series{
		Symbol:     symbol,
		Prices:     make([]float64, len(final)),
		Timestamps: make([]time.Time, len(final)),
	}
	bars := make([]OHLCBar, 0, len(final))
	for i, p := range final {
		s.Prices[i] = p.price
		s.Timestamps[i] = time.Unix(p.ts, 0).In(loc)
		if p.bar != nil {
			bars = append(bars, *p.bar)
		}
	}
	// OHLC is exposed only when every retained point carries a full bar,
	// keeping it index-aligned with Prices.
	if includeOHLC && len(bars) == len(final) {
		s.OHLC = bars
	}

	first := s.Prices[0]
	last := s.Prices[len(s.Prices)-1]
	s.LatestPrice = round2(last)
	s.PeriodChange = round2(last - first)
	if first != 0 {
		s.PeriodChangePercent = round2((last - first) / first * 100)
	}

	if requestedDays >= 2 && len(s.Prices) >= 2 {
		prev := s.Prices[len(s.Prices)-2]
		s.HasIntervalChange = true
		s.LastIntervalChange = round2(last - prev)
		if prev != 0 {
			s.LastIntervalPercent = round2((last - prev) / prev * 100)
		}
	}

	s.Currency = result.Meta.Currency
	if s.Currency == "" {
		s.Currency = currencyForSymbol(symbol)
	}
	return s, nil
}

// dedupeByDay keeps the latest observation for each local calendar date.
// Input must be sorted by timestamp.
func dedupeByDay(points []rawPoint, loc *time.Location) []rawPoint {
	byDay := make(map[string]rawPoint, len(points))
	keys := make([]string, 0, len(points))
	for _, p := range points {
		key := time.Unix(p.ts, 0).In(loc).Format("2006-01-02")
		if _, seen := byDay[key]; !seen {
			keys = append(keys, key)
		}
		byDay[key] = p
	}
	out := make([]rawPoint, 0, len(keys))
	for _, key := range keys {
		out = append(out, byDay[key])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ts < out[j].ts })
	return out
}

func quoteAt(vals []*float64, i int) (float64, bool) {
	if i >= len(vals) || vals[i] == nil {
		return 0, false
	}
	v := *vals[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
