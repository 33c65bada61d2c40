package chart

import (
	"time"

	"stockcharts/internal/mathutil"
)

const (
	paddingWithAxes = 40.0
	paddingPlain    = 10.0

	bullColor      = "#10b981"
	bearColor      = "#ef4444"
	sparklineColor = "#3b82f6"
)

func chartPadding(showAxes bool) float64 {
	if showAxes {
		return paddingWithAxes
	}
	return paddingPlain
}

// LineGeometry maps a price series into plotted points. The i-th of n
// points lands at x = padding + i/(n-1)*plotWidth; y is the price scaled
// into the plot height with low prices at the bottom.
func LineGeometry(prices []float64, timestamps []time.Time, width, height float64, showAxes bool, currency string) Geometry {
	padding := chartPadding(showAxes)
	if len(prices) == 0 {
		return Geometry{Width: width, Height: height, Currency: currency, PriceRange: 1}
	}
	if len(prices) == 1 {
		return singlePointGeometry(prices[0], timestamps, padding, width, height, currency)
	}

	dims := mathutil.CalcChartDimensions(width, height, padding)
	pr := mathutil.CalcPriceRange(prices)

	points := make([]Point, len(prices))
	for i, price := range prices {
		points[i] = Point{
			X:         padding + float64(i)/float64(len(prices)-1)*dims.PlotWidth,
			Y:         padding + dims.PlotHeight - (price-pr.Min)/pr.Range*dims.PlotHeight,
			Price:     price,
			Timestamp: timestamps[i].Unix(),
			Index:     i,
		}
	}
	return Geometry{
		Points:     points,
		Padding:    padding,
		PlotWidth:  dims.PlotWidth,
		PlotHeight: dims.PlotHeight,
		PriceMin:   pr.Min,
		PriceMax:   pr.Max,
		PriceRange: pr.Range,
		Currency:   currency,
		Width:      width,
		Height:     height,
	}
}

// SparklineGeometry reuses the line mapping with zero padding; the caller
// caps width/height at table-cell scale.
func SparklineGeometry(prices []float64, timestamps []time.Time, width, height float64, currency string) Geometry {
	if len(prices) == 0 {
		return Geometry{Width: width, Height: height, Currency: currency, PriceRange: 1}
	}
	if len(prices) == 1 {
		return singlePointGeometry(prices[0], timestamps, 0, width, height, currency)
	}

	pr := mathutil.CalcPriceRange(prices)
	points := make([]Point, len(prices))
	for i, price := range prices {
		points[i] = Point{
			X:         float64(i) / float64(len(prices)-1) * width,
			Y:         height - (price-pr.Min)/pr.Range*height,
			Price:     price,
			Timestamp: timestamps[i].Unix(),
			Index:     i,
		}
	}
	return Geometry{
		Points:     points,
		Padding:    0,
		PlotWidth:  width,
		PlotHeight: height,
		PriceMin:   pr.Min,
		PriceMax:   pr.Max,
		PriceRange: pr.Range,
		Currency:   currency,
		Width:      width,
		Height:     height,
	}
}

// singlePointGeometry centers a lone sample. PriceRange stays non-zero so
// downstream scaling never divides by zero.
func singlePointGeometry(price float64, timestamps []time.Time, padding, width, height float64, currency string) Geometry {
	var ts int64
	if len(timestamps) > 0 {
		ts = timestamps[0].Unix()
	}
	return Geometry{
		Points: []Point{{
			X:         width / 2,
			Y:         height / 2,
			Price:     price,
			Timestamp: ts,
			Index:     0,
		}},
		Padding:     padding,
		PlotWidth:   width - padding*2,
		PlotHeight:  height - padding*2,
		PriceMin:    price,
		PriceMax:    price,
		PriceRange:  1,
		Currency:    currency,
		Width:       width,
		Height:      height,
		SinglePoint: true,
	}
}
