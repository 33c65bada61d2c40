package chart

import (
	"errors"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"stockcharts/internal/marketdata"
)

// RenderPNG rasterizes a normalized series as a line chart, for delivery
// surfaces that can't embed SVG (e.g. chat photo messages).
func RenderPNG(series *marketdata.Series, width, height int) ([]byte, error) {
	if len(series.Prices) < 2 {
		return nil, errors.New("not enough data points")
	}

	x := make([]string, len(series.Timestamps))
	for i, ts := range series.Timestamps {
		x[i] = ts.Format("Jan 02")
	}

	yMin, yMax := series.Prices[0], series.Prices[0]
	for _, v := range series.Prices[1:] {
		if v < yMin {
			yMin = v
		}
		if v > yMax {
			yMax = v
		}
	}
	pad := (yMax - yMin) * 0.05
	if pad < yMax*0.002 {
		pad = yMax * 0.002
	}
	yMin -= pad
	if yMin < 0 {
		yMin = 0
	}
	yMax += pad

	title := strings.ToUpper(series.Symbol)
	if series.WindowDescription != "" {
		title += " • " + series.WindowDescription
	}

	painter, err := charts.LineRender([][]float64{series.Prices},
		charts.TitleTextOptionFunc(title),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: 10}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.WidthOptionFunc(width),
		charts.HeightOptionFunc(height),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
