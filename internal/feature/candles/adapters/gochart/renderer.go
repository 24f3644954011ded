// Package gochart draws candle series with go-chart.
package gochart

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

const (
	defaultWidth  = 1200
	defaultHeight = 600
	maxSMAPeriod  = 20
)

// ErrTooFewBars is returned when a series has fewer than two bars.
// go-chart cannot compute an x range from a single point.
var ErrTooFewBars = errors.New("gochart: at least two bars are required")

// ErrUnknownFormat is returned for formats other than "svg" and "png".
var ErrUnknownFormat = errors.New("gochart: unknown image format")

type themeColors struct {
	background drawing.Color
	text       drawing.Color
	wick       drawing.Color
	average    drawing.Color
}

var themes = map[entity.Theme]themeColors{
	entity.Light: {
		background: drawing.ColorFromHex("ffffff"),
		text:       drawing.ColorFromHex("333333"),
		wick:       drawing.ColorFromHex("000000"),
		average:    drawing.ColorFromHex("e377c2"),
	},
	entity.Dark: {
		background: drawing.ColorFromHex("2e2e2e"),
		text:       drawing.ColorFromHex("eeeeee"),
		wick:       drawing.ColorFromHex("cccccc"),
		average:    drawing.ColorFromHex("ffbf00"),
	},
}

// Renderer renders price charts as SVG or PNG.
type Renderer struct {
	width  int
	height int
}

// NewRenderer returns a Renderer producing width x height images.
// Non-positive sizes fall back to 1200 x 600.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Render draws one candle per bar (wick plus a green or red body), a thin
// close line in the palette color and a simple moving average of the close,
// then writes the image to w.
func (r *Renderer) Render(w io.Writer, s entity.Series, style entity.ChartStyle, format string) error {
	var provider chart.RendererProvider
	switch strings.ToLower(format) {
	case "svg":
		provider = chart.SVG
	case "png":
		provider = chart.PNG
	default:
		return ErrUnknownFormat
	}
	if len(s.Candles) < 2 {
		return ErrTooFewBars
	}

	colors, ok := themes[style.Theme]
	if !ok {
		colors = themes[entity.Light]
	}
	lineColor := drawing.ColorFromHex(strings.TrimPrefix(style.Color(), "#"))

	n := len(s.Candles)
	xs := make([]time.Time, n)
	closes := make([]float64, n)
	for i, c := range s.Candles {
		xs[i] = c.Time
		closes[i] = c.Close
	}

	closeSeries := chart.TimeSeries{
		Name:    "Close",
		Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 1},
		XValues: xs,
		YValues: closes,
	}
	series := []chart.Series{
		candleSeries{
			Name:    "OHLC",
			Style:   chart.Style{StrokeColor: upColor, StrokeWidth: 2},
			Wick:    colors.wick,
			Candles: s.Candles,
			Span:    bodySpan(s.Timeframe),
		},
		closeSeries,
	}
	if period := smaPeriod(n); period > 1 {
		series = append(series, chart.SMASeries{
			Name:        fmt.Sprintf("SMA(%d)", period),
			Style:       chart.Style{StrokeColor: colors.average, StrokeWidth: 1.5},
			Period:      period,
			InnerSeries: closeSeries,
		})
	}

	textStyle := chart.Style{FontColor: colors.text, StrokeColor: colors.text}
	ch := chart.Chart{
		Title:      chartTitle(s, strings.EqualFold(format, "svg")),
		TitleStyle: chart.Style{FontColor: colors.text, FontSize: 14},
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{FillColor: colors.background, Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: colors.background},
		XAxis: chart.XAxis{
			Name:           "Date",
			NameStyle:      textStyle,
			Style:          textStyle,
			ValueFormatter: chart.TimeValueFormatterWithFormat(axisLayout(s.Timeframe)),
		},
		YAxis: chart.YAxis{
			Name:      "Price ($)",
			NameStyle: textStyle,
			Style:     textStyle,
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("gochart: render %s: %w", format, err)
	}
	return nil
}

// chartTitle builds the title text. go-chart writes SVG text nodes as-is,
// so the symbol is escaped for SVG output.
func chartTitle(s entity.Series, svg bool) string {
	symbol := s.Symbol
	if svg {
		symbol = html.EscapeString(symbol)
	}
	return fmt.Sprintf("%s Stock Price - Candlestick Chart - %s View", symbol, s.Timeframe)
}

// smaPeriod picks a moving-average window that fits the series length.
func smaPeriod(n int) int {
	p := n / 4
	if p > maxSMAPeriod {
		p = maxSMAPeriod
	}
	return p
}

func axisLayout(tf entity.Timeframe) string {
	switch tf {
	case entity.Monthly:
		return "2006-01"
	case entity.Yearly:
		return "2006"
	default:
		return "2006-01-02"
	}
}
