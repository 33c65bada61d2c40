package server

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"stockcharts/internal/chart"
	"stockcharts/internal/marketdata"
)

// Defaults are applied to chart requests that omit dimensions or day count.
type Defaults struct {
	Days   int
	Width  int
	Height int
}

// Handler serves rendered charts over HTTP. The SVG response carries the
// chart id and the JSON geometry descriptor on its root element, so a
// client can hit-test pointer events without recomputing the layout.
type Handler struct {
	service  *marketdata.Service
	defaults Defaults
	logger   *zap.Logger
}

func NewHandler(service *marketdata.Service, defaults Defaults, logger *zap.Logger) *Handler {
	return &Handler{service: service, defaults: defaults, logger: logger}
}

func NewHTTPMux(h *Handler, webhook http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()
	if webhook != nil {
		mux.HandleFunc("/telegram/webhook", webhook)
	}
	mux.HandleFunc("/chart.svg", h.handleChart)
	mux.HandleFunc("/sparkline.svg", h.handleSparkline)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	return mux
}

func ListenAndServe(addr string, mux *http.ServeMux) error {
	return http.ListenAndServe(addr, mux)
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol := q.Get("symbol")
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}
	days := intParam(q.Get("days"), h.defaults.Days)
	width := float64(intParam(q.Get("width"), h.defaults.Width))
	height := float64(intParam(q.Get("height"), h.defaults.Height))
	showAxes := q.Get("axes") != "false"
	useCandles := q.Get("candles") == "true"

	series, err := h.service.GetSeries(r.Context(), symbol, days, useCandles)
	if err != nil {
		h.logger.Error("chart request failed", zap.String("symbol", symbol), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	var c chart.Chart
	if useCandles && series.OHLC != nil {
		g := chart.CandleGeometry(series.OHLC, series.Timestamps, width, height, showAxes, series.Currency)
		c, err = chart.RenderCandles(g, series.Timestamps, showAxes)
	} else {
		c, err = chart.RenderLine(series.Prices, series.Timestamps, width, height, showAxes, series.Currency)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Chart-ID", c.ID)
	fmt.Fprint(w, c.SVG)
}

func (h *Handler) handleSparkline(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol := q.Get("symbol")
	if symbol == "" {
		http.Error(w, "symbol is required", http.StatusBadRequest)
		return
	}
	days := intParam(q.Get("days"), h.defaults.Days)
	width := float64(intParam(q.Get("width"), 120))
	height := float64(intParam(q.Get("height"), 32))

	series, err := h.service.GetSeries(r.Context(), symbol, days, false)
	if err != nil {
		h.logger.Error("sparkline request failed", zap.String("symbol", symbol), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	c, err := chart.RenderSparkline(series.Prices, series.Timestamps, width, height, series.Currency)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("X-Chart-ID", c.ID)
	fmt.Fprint(w, c.SVG)
}

func intParam(v string, fallback int) int {
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
