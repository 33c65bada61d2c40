package chart

import (
	"fmt"
	"strings"
	"time"
)

// RenderLine produces an interactive line chart: area fill, stroke colored
// by period direction, optional axes, and the geometry descriptor embedded
// on the root element for later hit-testing.
func RenderLine(prices []float64, timestamps []time.Time, width, height float64, showAxes bool, currency string) (Chart, error) {
	id := newChartID("chart")
	g := LineGeometry(prices, timestamps, width, height, showAxes, currency)
	data, err := g.Encode()
	if err != nil {
		return Chart{}, err
	}

	if len(g.Points) == 0 {
		return Chart{
			ID:       id,
			SVG:      fmt.Sprintf(`<svg width="%g" height="%g" viewBox="0 0 %g %g" data-chart-id="%s"></svg>`, width, height, width, height, id),
			Geometry: g,
		}, nil
	}

	if g.SinglePoint {
		p := g.Points[0]
		var b strings.Builder
		fmt.Fprintf(&b, `<svg width="%g" height="%g" viewBox="0 0 %g %g" class="stock-chart interactive-chart" data-chart-id="%s" data-chart-data='%s'>`, width, height, width, height, id, data)
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="5" fill="%s" stroke="white" stroke-width="2" />`, p.X, p.Y, sparklineColor)
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" font-size="12">%s</text>`, p.X, p.Y-15, FormatPrice(p.Price, currency))
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" font-size="10">Single trading day</text>`, p.X, p.Y+25)
		b.WriteString(`</svg>`)
		return Chart{ID: id, SVG: b.String(), Geometry: g}, nil
	}

	color := bullColor
	if prices[len(prices)-1] < prices[0] {
		color = bearColor
	}

	var path strings.Builder
	for i, p := range g.Points {
		if i == 0 {
			fmt.Fprintf(&path, "M %g %g", p.X, p.Y)
		} else {
			fmt.Fprintf(&path, " L %g %g", p.X, p.Y)
		}
	}
	rightBound := g.Padding + g.PlotWidth
	lowerBound := g.Padding + g.PlotHeight
	area := fmt.Sprintf("%s L %g %g L %g %g Z", path.String(), rightBound, lowerBound, g.Padding, lowerBound)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%g" height="%g" viewBox="0 0 %g %g" class="stock-chart interactive-chart" data-chart-id="%s" data-chart-data='%s'>`, width, height, width, height, id, data)
	fmt.Fprintf(&b, `<defs><linearGradient id="gradient-%s" x1="0%%" y1="0%%" x2="0%%" y2="100%%"><stop offset="0%%" style="stop-color:%s;stop-opacity:0.3" /><stop offset="100%%" style="stop-color:%s;stop-opacity:0.05" /></linearGradient></defs>`, id, color, color)
	if showAxes {
		writeAxes(&b, &g, timestamps)
	}
	fmt.Fprintf(&b, `<path d="%s" fill="url(#gradient-%s)" />`, area, id)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" class="chart-line" />`, path.String(), color)
	fmt.Fprintf(&b, `<line x1="0" y1="%g" x2="0" y2="%g" stroke="#666" stroke-width="1" stroke-dasharray="2,2" class="hover-line" style="opacity: 0" />`, g.Padding, lowerBound)
	fmt.Fprintf(&b, `<circle r="4" fill="%s" stroke="white" stroke-width="2" class="hover-dot" style="opacity: 0" />`, color)
	fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="transparent" class="chart-overlay" style="cursor: crosshair" />`, g.Padding, g.Padding, g.PlotWidth, g.PlotHeight)
	b.WriteString(`</svg>`)
	return Chart{ID: id, SVG: b.String(), Geometry: g}, nil
}

// RenderSparkline produces a compact axis-less polyline chart.
func RenderSparkline(prices []float64, timestamps []time.Time, width, height float64, currency string) (Chart, error) {
	id := newChartID("sparkline")
	g := SparklineGeometry(prices, timestamps, width, height, currency)
	data, err := g.Encode()
	if err != nil {
		return Chart{}, err
	}

	if len(g.Points) == 0 {
		return Chart{
			ID:       id,
			SVG:      fmt.Sprintf(`<svg width="%g" height="%g" viewBox="0 0 %g %g" data-chart-id="%s"></svg>`, width, height, width, height, id),
			Geometry: g,
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%g" height="%g" viewBox="0 0 %g %g" class="stock-sparkline interactive-sparkline" data-chart-id="%s" data-chart-data='%s'>`, width, height, width, height, id, data)
	if g.SinglePoint {
		p := g.Points[0]
		fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="3" fill="%s" stroke="white" stroke-width="1" />`, p.X, p.Y, sparklineColor)
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" font-size="10">Single day</text>`, p.X, p.Y-10)
	} else {
		coords := make([]string, len(g.Points))
		for i, p := range g.Points {
			coords[i] = fmt.Sprintf("%g,%g", p.X, p.Y)
		}
		fmt.Fprintf(&b, `<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s" class="sparkline-line" />`, sparklineColor, strings.Join(coords, " "))
		fmt.Fprintf(&b, `<circle r="3" fill="%s" stroke="white" stroke-width="1" class="hover-dot" style="opacity: 0" />`, sparklineColor)
	}
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%g" height="%g" fill="transparent" class="sparkline-overlay" style="cursor: crosshair" />`, width, height)
	b.WriteString(`</svg>`)
	return Chart{ID: id, SVG: b.String(), Geometry: g}, nil
}

// RenderCandles produces an interactive candlestick chart. Body bounds are
// min(openY, closeY) with height floored to 1px; the wick spans the
// high/low pixel range.
func RenderCandles(g Geometry, timestamps []time.Time, showAxes bool) (Chart, error) {
	id := newChartID("candles")
	data, err := g.Encode()
	if err != nil {
		return Chart{}, err
	}

	if len(g.Candles) == 0 {
		return Chart{
			ID:       id,
			SVG:      fmt.Sprintf(`<svg width="%g" height="%g" viewBox="0 0 %g %g" data-chart-id="%s"></svg>`, g.Width, g.Height, g.Width, g.Height, id),
			Geometry: g,
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%g" height="%g" viewBox="0 0 %g %g" class="stock-chart interactive-chart candlestick-chart" data-chart-id="%s" data-chart-data='%s'>`, g.Width, g.Height, g.Width, g.Height, id, data)

	if g.SinglePoint {
		c := g.Candles[0]
		color := bearColor
		if c.Bullish() {
			color = bullColor
		}
		fmt.Fprintf(&b, `<rect x="%g" y="%g" width="10" height="10" fill="%s" stroke="white" stroke-width="1" />`, c.X-5, g.Height/2-5, color)
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" font-size="12">%s</text>`, c.X, g.Height/2-15, FormatPrice(c.Close, g.Currency))
		fmt.Fprintf(&b, `<text x="%g" y="%g" text-anchor="middle" font-size="10">Single trading day</text>`, c.X, g.Height/2+25)
		b.WriteString(`</svg>`)
		return Chart{ID: id, SVG: b.String(), Geometry: g}, nil
	}

	if showAxes {
		writeAxes(&b, &g, timestamps)
	}

	for _, c := range g.Candles {
		color := bearColor
		if c.Bullish() {
			color = bullColor
		}
		bodyTop := c.OpenY
		if c.CloseY < bodyTop {
			bodyTop = c.CloseY
		}
		bodyHeight := dist(c.OpenY, c.CloseY)
		if bodyHeight < 1 {
			bodyHeight = 1
		}
		fmt.Fprintf(&b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="1" class="candle-wick" />`, c.X, c.HighY, c.X, c.LowY, color)
		fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s" stroke="%s" stroke-width="1" class="candle-body" data-candle-index="%d" />`, c.X-g.CandleWidth/2, bodyTop, g.CandleWidth, bodyHeight, color, color, c.Index)
	}

	lowerBound := g.Padding + g.PlotHeight
	fmt.Fprintf(&b, `<line x1="0" y1="%g" x2="0" y2="%g" stroke="#666" stroke-width="1" stroke-dasharray="2,2" class="hover-line" style="opacity: 0" />`, g.Padding, lowerBound)
	b.WriteString(`<circle r="4" fill="#666" stroke="white" stroke-width="2" class="hover-dot" style="opacity: 0" />`)
	fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="transparent" class="chart-overlay" style="cursor: crosshair" />`, g.Padding, g.Padding, g.PlotWidth, g.PlotHeight)
	b.WriteString(`</svg>`)
	return Chart{ID: id, SVG: b.String(), Geometry: g}, nil
}

// writeAxes emits min/mid/max y labels, first/mid/last x labels, and the
// three horizontal grid lines. Presentational only.
func writeAxes(b *strings.Builder, g *Geometry, timestamps []time.Time) {
	rightBound := g.Padding + g.PlotWidth
	lowerBound := g.Padding + g.PlotHeight
	midY := g.Padding + g.PlotHeight/2
	midX := g.Padding + g.PlotWidth/2
	midPrice := (g.PriceMin + g.PriceMax) / 2

	fmt.Fprintf(b, `<text x="5" y="%g" font-size="10" text-anchor="start">%s</text>`, g.Padding+5, FormatPrice(g.PriceMax, g.Currency))
	fmt.Fprintf(b, `<text x="5" y="%g" font-size="10" text-anchor="start">%s</text>`, midY+3, FormatPrice(midPrice, g.Currency))
	fmt.Fprintf(b, `<text x="5" y="%g" font-size="10" text-anchor="start">%s</text>`, lowerBound, FormatPrice(g.PriceMin, g.Currency))

	if len(timestamps) > 0 {
		start := timestamps[0].Format("Jan 2")
		end := timestamps[len(timestamps)-1].Format("Jan 2")
		mid := timestamps[len(timestamps)/2].Format("Jan 2")
		fmt.Fprintf(b, `<text x="%g" y="%g" font-size="10" text-anchor="start">%s</text>`, g.Padding, g.Height-5, start)
		fmt.Fprintf(b, `<text x="%g" y="%g" font-size="10" text-anchor="middle">%s</text>`, midX, g.Height-5, mid)
		fmt.Fprintf(b, `<text x="%g" y="%g" font-size="10" text-anchor="end">%s</text>`, rightBound, g.Height-5, end)
	}

	for _, y := range [3]float64{g.Padding, midY, lowerBound} {
		fmt.Fprintf(b, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="#e5e7eb" stroke-width="0.5"/>`, g.Padding, y, rightBound, y)
	}
}
