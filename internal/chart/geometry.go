package chart

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Point is one plotted sample of a line or sparkline chart.
type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Price     float64 `json:"price"`
	Timestamp int64   `json:"timestamp"`
	Index     int     `json:"index"`
}

// Candle is one plotted bar of a candlestick chart. Pixel coordinates and
// source prices travel together so hit-testing never recomputes the
// mapping.
type Candle struct {
	X         float64 `json:"x"`
	OpenY     float64 `json:"openY"`
	HighY     float64 `json:"highY"`
	LowY      float64 `json:"lowY"`
	CloseY    float64 `json:"closeY"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Timestamp int64   `json:"timestamp"`
	Index     int     `json:"index"`
}

// Bullish reports whether the bar closed at or above its open. Bars with
// close == open count as bullish.
func (c Candle) Bullish() bool { return c.Close >= c.Open }

// Geometry is the serializable layout descriptor attached to every
// rendered chart. Exactly one of Points or Candles is populated.
type Geometry struct {
	Points  []Point  `json:"points,omitempty"`
	Candles []Candle `json:"candles,omitempty"`

	Padding     float64 `json:"padding"`
	PlotWidth   float64 `json:"plotWidth"`
	PlotHeight  float64 `json:"plotHeight"`
	PriceMin    float64 `json:"priceMin"`
	PriceMax    float64 `json:"priceMax"`
	PriceRange  float64 `json:"priceRange"`
	Currency    string  `json:"currency"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	CandleWidth float64 `json:"candleWidth,omitempty"`
	SinglePoint bool    `json:"isSinglePoint,omitempty"`
}

// Encode serializes the descriptor for embedding at a process or DOM
// boundary.
func (g *Geometry) Encode() (string, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeGeometry parses a descriptor produced by Encode.
func DecodeGeometry(data string) (*Geometry, error) {
	var g Geometry
	if err := json.Unmarshal([]byte(data), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Chart pairs rendered markup with its opaque identifier and the geometry
// the markup was produced from.
type Chart struct {
	ID       string
	SVG      string
	Geometry Geometry
}

func newChartID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
