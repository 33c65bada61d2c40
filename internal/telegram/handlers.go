package telegram

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"stockcharts/internal/chart"
	"stockcharts/internal/marketdata"
	"stockcharts/internal/storage"
)

var (
	// /chart SYMBOL [days]
	reChart = regexp.MustCompile(`^/chart(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d+))?$`)
	// /candles SYMBOL [days]
	reCandles = regexp.MustCompile(`^/candles(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d+))?$`)
	// /spark SYMBOL [days]
	reSpark = regexp.MustCompile(`^/spark(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)(?:\s+(\d+))?$`)
	// /price SYMBOL
	rePrice = regexp.MustCompile(`^/price(?:@[\w_]+)?\s+([A-Za-z0-9\.^_=+-]+)$`)
	// /history [n]
	reHistory = regexp.MustCompile(`^/history(?:@[\w_]+)?(?:\s+(\d+))?$`)
	// /help or /start
	reHelp = regexp.MustCompile(`^/(help|start)(?:@[\w_]+)?$`)
)

type Handlers struct {
	api         *tgbotapi.BotAPI
	service     *marketdata.Service
	store       *storage.Store
	defaultDays int
	width       int
	height      int
	logger      *zap.Logger
}

func NewHandlers(api *tgbotapi.BotAPI, service *marketdata.Service, store *storage.Store, defaultDays, width, height int, logger *zap.Logger) *Handlers {
	return &Handlers{
		api:         api,
		service:     service,
		store:       store,
		defaultDays: defaultDays,
		width:       width,
		height:      height,
		logger:      logger,
	}
}

func (h *Handlers) HandleMessage(m *tgbotapi.Message) {
	txt := strings.TrimSpace(m.Text)
	switch {
	case reChart.MatchString(txt):
		g := reChart.FindStringSubmatch(txt)
		h.handleChart(m.Chat.ID, g[1], h.parseDays(g[2]))

	case reCandles.MatchString(txt):
		g := reCandles.FindStringSubmatch(txt)
		h.handleCandles(m.Chat.ID, g[1], h.parseDays(g[2]))

	case reSpark.MatchString(txt):
		g := reSpark.FindStringSubmatch(txt)
		h.handleSpark(m.Chat.ID, g[1], h.parseDays(g[2]))

	case rePrice.MatchString(txt):
		g := rePrice.FindStringSubmatch(txt)
		h.handlePrice(m.Chat.ID, g[1])

	case reHistory.MatchString(txt):
		limit := 10
		if g := reHistory.FindStringSubmatch(txt); len(g) == 2 && g[1] != "" {
			fmt.Sscanf(g[1], "%d", &limit)
			if limit < 1 {
				limit = 1
			}
			if limit > 50 {
				limit = 50
			}
		}
		h.handleHistory(m.Chat.ID, limit)

	case reHelp.MatchString(txt):
		h.handleHelp(m.Chat.ID)
	}
}

func (h *Handlers) parseDays(field string) int {
	if field == "" {
		return h.defaultDays
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 1 {
		return h.defaultDays
	}
	if n > 365 {
		n = 365
	}
	return n
}

func (h *Handlers) handleChart(chatID int64, sym string, days int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	series, err := h.service.GetSeries(ctx, sym, days, false)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("Couldn't fetch %s: %v", strings.ToUpper(sym), err))
		return
	}
	img, err := chart.RenderPNG(series, h.width, h.height)
	if err != nil {
		h.reply(chatID, "Chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: series.Symbol + ".png", Bytes: img})
	photo.Caption = h.caption(series)
	h.api.Send(photo)
}

func (h *Handlers) handleCandles(chatID int64, sym string, days int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	series, err := h.service.GetSeries(ctx, sym, days, true)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("Couldn't fetch %s: %v", strings.ToUpper(sym), err))
		return
	}
	if series.OHLC == nil {
		h.reply(chatID, fmt.Sprintf("No OHLC data for %s; try /chart instead.", series.Symbol))
		return
	}
	// Photo delivery has no SVG support, so candle requests fall back to the
	// PNG line render with an OHLC summary caption.
	img, err := chart.RenderPNG(series, h.width, h.height)
	if err != nil {
		h.reply(chatID, "Chart failed: "+err.Error())
		return
	}
	last := series.OHLC[len(series.OHLC)-1]
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: series.Symbol + "_ohlc.png", Bytes: img})
	photo.Caption = h.caption(series) + fmt.Sprintf("\nO %s  H %s  L %s  C %s",
		chart.FormatPrice(last.Open, series.Currency),
		chart.FormatPrice(last.High, series.Currency),
		chart.FormatPrice(last.Low, series.Currency),
		chart.FormatPrice(last.Close, series.Currency))
	h.api.Send(photo)
}

func (h *Handlers) handleSpark(chatID int64, sym string, days int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	series, err := h.service.GetSeries(ctx, sym, days, false)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("Couldn't fetch %s: %v", strings.ToUpper(sym), err))
		return
	}
	img, err := chart.RenderPNG(series, h.width/2, h.height/3)
	if err != nil {
		h.reply(chatID, "Chart failed: "+err.Error())
		return
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: series.Symbol + "_spark.png", Bytes: img})
	photo.Caption = series.Symbol + " " + chart.FormatPercent(series.PeriodChangePercent)
	h.api.Send(photo)
}

func (h *Handlers) handlePrice(chatID int64, sym string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	series, err := h.service.GetSeries(ctx, sym, 1, false)
	if err != nil {
		h.reply(chatID, fmt.Sprintf("Couldn't fetch %s: %v", strings.ToUpper(sym), err))
		return
	}
	text := fmt.Sprintf("%s: %s", series.Symbol, chart.FormatPrice(series.LatestPrice, series.Currency))
	if series.HasIntervalChange {
		text += fmt.Sprintf(" (%s since previous close)", chart.FormatPercent(series.LastIntervalPercent))
	}
	h.reply(chatID, text)
}

func (h *Handlers) handleHistory(chatID int64, limit int) {
	records, err := h.store.RecentFetches(limit)
	if err != nil {
		h.reply(chatID, "History failed: "+err.Error())
		return
	}
	if len(records) == 0 {
		h.reply(chatID, "No fetches recorded yet.")
		return
	}
	var b strings.Builder
	b.WriteString("Recent fetches:\n")
	for _, r := range records {
		fmt.Fprintf(&b, "- %s %dd: %d pts, %s at %s\n",
			r.Symbol, r.Days, r.Points,
			chart.FormatPrice(r.LatestPrice, r.Currency),
			r.FetchedAt.Format("Jan 2 15:04"))
	}
	h.reply(chatID, b.String())
}

func (h *Handlers) handleHelp(chatID int64) {
	help := "Commands\n\n" +
		"- /chart SYMBOL [days] - Price line chart over the last N days (default: " + strconv.Itoa(h.defaultDays) + ")\n" +
		"- /candles SYMBOL [days] - Same window with the latest OHLC values\n" +
		"- /spark SYMBOL [days] - Compact trend chart\n" +
		"- /price SYMBOL - Latest price and change since previous close\n" +
		"- /history [n] - Recent fetches (default: 10, max: 50)\n" +
		"\nDay counts follow the trading calendar; weekends and US market holidays are skipped."
	h.reply(chatID, help)
}

func (h *Handlers) caption(s *marketdata.Series) string {
	c := s.Symbol + " • " + chart.FormatPrice(s.LatestPrice, s.Currency) +
		" • " + chart.FormatPercent(s.PeriodChangePercent)
	if s.WindowDescription != "" {
		c += "\n" + s.WindowDescription
	}
	return c
}

func (h *Handlers) reply(chatID int64, text string) {
	h.api.Send(tgbotapi.NewMessage(chatID, text))
}
