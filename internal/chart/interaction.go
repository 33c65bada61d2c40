package chart

// snapTolerance is the pixel distance within which a pointer snaps to an
// existing sample instead of interpolating, avoiding jitter at vertices.
const snapTolerance = 3.0

// tooltip placement offsets, matching the rendered hover style.
const (
	tooltipOffset     = 15.0
	tooltipEdgeMargin = 10.0
)

// HoverPoint is the value under the pointer for line and sparkline charts.
type HoverPoint struct {
	Price     float64
	Timestamp int64
	X         float64
}

// ResolveAtX locates the price under pointerX on a line chart. Pointers
// within snapTolerance of a sample return that sample exactly; otherwise
// price and timestamp are linearly interpolated within the bracketing
// segment. Returns false outside the plot bounds.
func ResolveAtX(pointerX float64, g *Geometry) (HoverPoint, bool) {
	if len(g.Points) == 0 {
		return HoverPoint{}, false
	}
	if pointerX < g.Padding || pointerX > g.Padding+g.PlotWidth {
		return HoverPoint{}, false
	}

	for _, p := range g.Points {
		d := p.X - pointerX
		if d < 0 {
			d = -d
		}
		if d <= snapTolerance {
			return HoverPoint{Price: p.Price, Timestamp: p.Timestamp, X: p.X}, true
		}
	}

	left := g.Points[0]
	right := g.Points[len(g.Points)-1]
	for i := 0; i < len(g.Points)-1; i++ {
		if pointerX >= g.Points[i].X && pointerX <= g.Points[i+1].X {
			left = g.Points[i]
			right = g.Points[i+1]
			break
		}
	}

	if left.X == right.X {
		return HoverPoint{Price: left.Price, Timestamp: left.Timestamp, X: left.X}, true
	}

	ratio := (pointerX - left.X) / (right.X - left.X)
	return HoverPoint{
		Price:     left.Price + (right.Price-left.Price)*ratio,
		Timestamp: left.Timestamp + int64(float64(right.Timestamp-left.Timestamp)*ratio),
		X:         pointerX,
	}, true
}

// NearestPoint returns the sample whose x is closest to pointerX.
// Sparklines use this instead of interpolation; at table-cell scale
// blended values carry no meaning.
func NearestPoint(pointerX float64, g *Geometry) (Point, bool) {
	if len(g.Points) == 0 {
		return Point{}, false
	}
	if pointerX < g.Padding || pointerX > g.Padding+g.PlotWidth {
		return Point{}, false
	}
	best := g.Points[0]
	bestDist := dist(best.X, pointerX)
	for _, p := range g.Points[1:] {
		if d := dist(p.X, pointerX); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best, true
}

// NearestCandle returns the bar whose x is closest to pointerX. OHLC
// values are never blended between bars.
func NearestCandle(pointerX float64, g *Geometry) (Candle, bool) {
	if len(g.Candles) == 0 {
		return Candle{}, false
	}
	if pointerX < g.Padding || pointerX > g.Padding+g.PlotWidth {
		return Candle{}, false
	}
	best := g.Candles[0]
	bestDist := dist(best.X, pointerX)
	for _, c := range g.Candles[1:] {
		if d := dist(c.X, pointerX); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, true
}

// PlaceTooltip computes an on-screen tooltip position for a pointer at
// (x, y). The default placement is above-right of the pointer; it flips
// left when it would overflow the right viewport edge, below the pointer
// when it would overflow the top, and clamps to the bottom edge.
func PlaceTooltip(x, y, tooltipWidth, tooltipHeight, viewportWidth, viewportHeight float64) (left, top float64) {
	left = x + tooltipOffset
	top = y - tooltipHeight - tooltipOffset

	if left+tooltipWidth > viewportWidth-tooltipEdgeMargin {
		left = x - tooltipWidth - tooltipOffset
	}
	if top < tooltipEdgeMargin {
		top = y + tooltipOffset
	}
	if top+tooltipHeight > viewportHeight-tooltipEdgeMargin {
		top = viewportHeight - tooltipHeight - tooltipEdgeMargin
	}
	return left, top
}

func dist(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
