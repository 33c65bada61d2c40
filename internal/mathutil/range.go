package mathutil

import "stockcharts/internal/marketdata"

// PriceRange holds the vertical extent of a series. Range is floored to 1
// for flat series so downstream pixel mapping never divides by zero.
type PriceRange struct {
	Min   float64
	Max   float64
	Range float64
}

// ChartDimensions describes the plot area derived from outer width/height
// and uniform padding.
type ChartDimensions struct {
	Padding    float64
	PlotWidth  float64
	PlotHeight float64
	RightBound float64
	LowerBound float64
	CenterX    float64
	CenterY    float64
	MidX       float64
	MidY       float64
}

// CalcPriceRange scans a close-price series for its min/max.
func CalcPriceRange(prices []float64) PriceRange {
	if len(prices) == 0 {
		return PriceRange{Min: 0, Max: 0, Range: 1}
	}
	min, max := prices[0], prices[0]
	for _, p := range prices[1:] {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	r := max - min
	if r == 0 {
		r = 1
	}
	return PriceRange{Min: min, Max: max, Range: r}
}

// CalcOHLCRange scans all four fields of each bar so wicks stay inside the
// plot area.
func CalcOHLCRange(bars []marketdata.OHLCBar) PriceRange {
	if len(bars) == 0 {
		return PriceRange{Min: 0, Max: 0, Range: 1}
	}
	min := bars[0].Low
	max := bars[0].High
	for _, b := range bars {
		for _, v := range [4]float64{b.Open, b.High, b.Low, b.Close} {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	r := max - min
	if r == 0 {
		r = 1
	}
	return PriceRange{Min: min, Max: max, Range: r}
}

// CalcChartDimensions derives the plot area from outer size and padding.
func CalcChartDimensions(width, height, padding float64) ChartDimensions {
	plotW := width - padding*2
	plotH := height - padding*2
	return ChartDimensions{
		Padding:    padding,
		PlotWidth:  plotW,
		PlotHeight: plotH,
		RightBound: padding + plotW,
		LowerBound: padding + plotH,
		CenterX:    width / 2,
		CenterY:    height / 2,
		MidX:       padding + plotW/2,
		MidY:       padding + plotH/2,
	}
}
