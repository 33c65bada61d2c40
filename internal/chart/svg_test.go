package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLine(t *testing.T) {
	c, err := RenderLine([]float64{100, 105, 102, 110}, testTimestamps(4), 500, 400, true, "USD")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.ID, "chart-"))
	assert.Contains(t, c.SVG, `data-chart-id="`+c.ID+`"`)
	assert.Contains(t, c.SVG, "data-chart-data=")
	assert.Contains(t, c.SVG, "linearGradient")
	assert.Contains(t, c.SVG, bullColor) // period ended up
	assert.Contains(t, c.SVG, "chart-overlay")
	assert.Contains(t, c.SVG, "hover-line")

	// The embedded descriptor round-trips.
	start := strings.Index(c.SVG, "data-chart-data='") + len("data-chart-data='")
	end := strings.Index(c.SVG[start:], "'")
	g, err := DecodeGeometry(c.SVG[start : start+end])
	require.NoError(t, err)
	assert.Len(t, g.Points, 4)
}

func TestRenderLineDownPeriodUsesBearColor(t *testing.T) {
	c, err := RenderLine([]float64{110, 100}, testTimestamps(2), 500, 400, true, "USD")
	require.NoError(t, err)
	assert.Contains(t, c.SVG, bearColor)
}

func TestRenderLineSinglePoint(t *testing.T) {
	c, err := RenderLine([]float64{42}, testTimestamps(1), 500, 400, true, "USD")
	require.NoError(t, err)
	assert.Contains(t, c.SVG, "Single trading day")
	assert.Contains(t, c.SVG, "$42.00")
}

func TestRenderLineEmpty(t *testing.T) {
	c, err := RenderLine(nil, nil, 500, 400, true, "USD")
	require.NoError(t, err)
	assert.Contains(t, c.SVG, "<svg")
	assert.NotContains(t, c.SVG, "path")
}

func TestRenderSparkline(t *testing.T) {
	c, err := RenderSparkline([]float64{10, 12, 11}, testTimestamps(3), 120, 32, "USD")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.ID, "sparkline-"))
	assert.Contains(t, c.SVG, "polyline")
	assert.Contains(t, c.SVG, sparklineColor)
	assert.Contains(t, c.SVG, "sparkline-overlay")
}

func TestRenderCandles(t *testing.T) {
	g := CandleGeometry(testBars(10), testTimestamps(10), 500, 400, true, "USD")
	c, err := RenderCandles(g, testTimestamps(10), true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(c.ID, "candles-"))
	assert.Equal(t, 10, strings.Count(c.SVG, "candle-wick"))
	assert.Equal(t, 10, strings.Count(c.SVG, "candle-body"))
	assert.Contains(t, c.SVG, bullColor) // all test bars close above open
}

func TestRenderCandlesAxes(t *testing.T) {
	g := CandleGeometry(testBars(10), testTimestamps(10), 500, 400, true, "USD")

	with, err := RenderCandles(g, testTimestamps(10), true)
	require.NoError(t, err)
	without, err := RenderCandles(g, testTimestamps(10), false)
	require.NoError(t, err)

	assert.Greater(t, strings.Count(with.SVG, "<text"), strings.Count(without.SVG, "<text"))
}

func TestChartIDsAreUnique(t *testing.T) {
	a, err := RenderSparkline([]float64{1, 2}, testTimestamps(2), 120, 32, "USD")
	require.NoError(t, err)
	b, err := RenderSparkline([]float64{1, 2}, testTimestamps(2), 120, 32, "USD")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$102.50", FormatPrice(102.5, "USD"))
	assert.Equal(t, "CA$99.99", FormatPrice(99.99, "CAD"))
	assert.Equal(t, "£1.00", FormatPrice(1, "GBP"))
	assert.Equal(t, "102.50 SEK", FormatPrice(102.5, "SEK"))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+2.00%", FormatPercent(2))
	assert.Equal(t, "-2.86%", FormatPercent(-2.86))
	assert.Equal(t, "+0.00%", FormatPercent(0))
}
