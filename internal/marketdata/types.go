package marketdata

import "time"

// chartResponse mirrors the Yahoo v8 chart response (trimmed to needed
// fields). Quote arrays use pointers so JSON nulls survive decoding.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency  string `json:"currency"`
				GmtOffset int    `json:"gmtoffset"`
				Timezone  string `json:"timezone"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// OHLCBar holds one trading interval's open/high/low/close.
type OHLCBar struct {
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// Series is the canonical, immutable result of one fetch-and-normalize
// cycle. Prices and Timestamps are always the same length; OHLC, when
// non-nil, is too.
type Series struct {
	Symbol     string
	Prices     []float64
	Timestamps []time.Time
	OHLC       []OHLCBar

	LatestPrice         float64
	PeriodChange        float64
	PeriodChangePercent float64
	HasIntervalChange   bool
	LastIntervalChange  float64
	LastIntervalPercent float64
	Currency            string
	WindowDescription   string
}
