package chart

import (
	"time"

	"stockcharts/internal/marketdata"
	"stockcharts/internal/mathutil"
)

// candleRegime is one row of the density schedule. Regimes are evaluated
// in order; the first row whose maxBars covers the count wins. Counts past
// the last row use the fixed-minimal-width layout.
type candleRegime struct {
	maxBars  int
	maxWidth float64
	// gapFrac is a fraction of plot width for gap-based rows, or of the
	// per-bar slot for slot-based rows.
	gapFrac  float64
	gapCap   float64
	gapBased bool
}

var candleRegimes = []candleRegime{
	{maxBars: 5, maxWidth: 40, gapFrac: 0.04, gapCap: 20, gapBased: true},
	{maxBars: 12, maxWidth: 28, gapFrac: 0.025, gapCap: 15, gapBased: true},
	{maxBars: 30, maxWidth: 18, gapFrac: 0.7, gapBased: false},
	{maxBars: 60, maxWidth: 10, gapFrac: 0.8, gapBased: false},
}

const (
	candleMinWidth     = 1.0
	candleVeryManyCap  = 6.0
	candleVeryManyFill = 1.2
)

type candleSizing struct {
	width    float64
	spacing  float64
	gap      float64
	gapBased bool
	// edgeAligned places bars on count-1 steps instead of slot centers.
	edgeAligned bool
}

func sizeCandles(count int, plotWidth float64) candleSizing {
	for _, r := range candleRegimes {
		if count > r.maxBars {
			continue
		}
		if r.gapBased {
			gap := plotWidth * r.gapFrac
			if gap > r.gapCap {
				gap = r.gapCap
			}
			avail := plotWidth - float64(count-1)*gap
			width := avail / float64(count)
			if width > r.maxWidth {
				width = r.maxWidth
			}
			return candleSizing{width: width, spacing: width + gap, gap: gap, gapBased: true}
		}
		slot := plotWidth / float64(count)
		width := slot * r.gapFrac
		if width > r.maxWidth {
			width = r.maxWidth
		}
		return candleSizing{width: width, spacing: slot}
	}

	steps := count - 1
	if steps < 1 {
		steps = 1
	}
	spacing := plotWidth / float64(steps)
	width := plotWidth / (float64(count) * candleVeryManyFill)
	if width < candleMinWidth {
		width = candleMinWidth
	}
	if width > candleVeryManyCap {
		width = candleVeryManyCap
	}
	return candleSizing{width: width, spacing: spacing, edgeAligned: true}
}

func (s candleSizing) xAt(index, count int, padding, plotWidth float64) float64 {
	if s.gapBased {
		total := float64(count)*s.width + float64(count-1)*s.gap
		startX := padding + (plotWidth-total)/2
		return startX + float64(index)*s.spacing + s.width/2
	}
	if s.edgeAligned {
		return padding + float64(index)*s.spacing
	}
	return padding + float64(index)*s.spacing + s.spacing/2
}

// CandleGeometry maps OHLC bars into plotted candles using the adaptive
// density schedule.
func CandleGeometry(bars []marketdata.OHLCBar, timestamps []time.Time, width, height float64, showAxes bool, currency string) Geometry {
	padding := chartPadding(showAxes)
	if len(bars) == 0 {
		return Geometry{Width: width, Height: height, Currency: currency, PriceRange: 1}
	}
	if len(bars) == 1 {
		return singleCandleGeometry(bars[0], timestamps, padding, width, height, currency)
	}

	dims := mathutil.CalcChartDimensions(width, height, padding)
	pr := mathutil.CalcOHLCRange(bars)
	sizing := sizeCandles(len(bars), dims.PlotWidth)

	toY := func(price float64) float64 {
		return padding + dims.PlotHeight - (price-pr.Min)/pr.Range*dims.PlotHeight
	}

	candles := make([]Candle, len(bars))
	for i, bar := range bars {
		candles[i] = Candle{
			X:         sizing.xAt(i, len(bars), padding, dims.PlotWidth),
			OpenY:     toY(bar.Open),
			HighY:     toY(bar.High),
			LowY:      toY(bar.Low),
			CloseY:    toY(bar.Close),
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Timestamp: timestamps[i].Unix(),
			Index:     i,
		}
	}
	return Geometry{
		Candles:     candles,
		Padding:     padding,
		PlotWidth:   dims.PlotWidth,
		PlotHeight:  dims.PlotHeight,
		PriceMin:    pr.Min,
		PriceMax:    pr.Max,
		PriceRange:  pr.Range,
		Currency:    currency,
		Width:       width,
		Height:      height,
		CandleWidth: sizing.width,
	}
}

func singleCandleGeometry(bar marketdata.OHLCBar, timestamps []time.Time, padding, width, height float64, currency string) Geometry {
	var ts int64
	if len(timestamps) > 0 {
		ts = timestamps[0].Unix()
	}
	pr := mathutil.CalcOHLCRange([]marketdata.OHLCBar{bar})
	return Geometry{
		Candles: []Candle{{
			X:         width / 2,
			OpenY:     height / 2,
			HighY:     height / 2,
			LowY:      height / 2,
			CloseY:    height / 2,
			Open:      bar.Open,
			High:      bar.High,
			Low:       bar.Low,
			Close:     bar.Close,
			Timestamp: ts,
			Index:     0,
		}},
		Padding:     padding,
		PlotWidth:   width - padding*2,
		PlotHeight:  height - padding*2,
		PriceMin:    pr.Min,
		PriceMax:    pr.Max,
		PriceRange:  pr.Range,
		Currency:    currency,
		Width:       width,
		Height:      height,
		SinglePoint: true,
	}
}
