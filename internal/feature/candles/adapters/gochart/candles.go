package gochart

import (
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

var (
	upColor   = drawing.ColorFromHex("008000")
	downColor = drawing.ColorFromHex("ff0000")
)

var (
	_ chart.Series                = candleSeries{}
	_ chart.BoundedValuesProvider = candleSeries{}
)

// candleSeries draws one wick and one filled body per bar.
// close >= open uses upColor, otherwise downColor.
type candleSeries struct {
	Name    string
	Style   chart.Style
	Wick    drawing.Color
	Candles []entity.Candle
	// Span is the body width in time units, centered on the bar date.
	Span time.Duration
}

func (cs candleSeries) GetName() string           { return cs.Name }
func (cs candleSeries) GetStyle() chart.Style     { return cs.Style }
func (cs candleSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (cs candleSeries) Len() int                  { return len(cs.Candles) }

func (cs candleSeries) GetBoundedValues(i int) (x, high, low float64) {
	c := cs.Candles[i]
	return chart.TimeToFloat64(c.Time), c.High, c.Low
}

func (cs candleSeries) Validate() error {
	if len(cs.Candles) == 0 {
		return ErrTooFewBars
	}
	return nil
}

func (cs candleSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, _ chart.Style) {
	half := float64(cs.Span) / 2
	for _, c := range cs.Candles {
		x := chart.TimeToFloat64(c.Time)
		cx := canvasBox.Left + xrange.Translate(x)
		left := canvasBox.Left + xrange.Translate(x-half)
		right := canvasBox.Left + xrange.Translate(x+half)
		if right-left < 1 {
			left, right = cx, cx+1
		}

		chart.Style{StrokeColor: cs.Wick, StrokeWidth: 1}.WriteDrawingOptionsToRenderer(r)
		r.MoveTo(cx, canvasBox.Bottom-yrange.Translate(c.High))
		r.LineTo(cx, canvasBox.Bottom-yrange.Translate(c.Low))
		r.Stroke()

		color := upColor
		if c.Close < c.Open {
			color = downColor
		}
		top := canvasBox.Bottom - yrange.Translate(math.Max(c.Open, c.Close))
		bottom := canvasBox.Bottom - yrange.Translate(math.Min(c.Open, c.Close))
		if bottom == top {
			bottom = top + 1
		}

		chart.Style{FillColor: color.WithAlpha(204), StrokeColor: cs.Wick, StrokeWidth: 1}.WriteDrawingOptionsToRenderer(r)
		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.Close()
		r.FillStroke()
	}
}

// bodySpan は時間軸に合わせてローソク足の幅を広げる。
func bodySpan(tf entity.Timeframe) time.Duration {
	const day = 24 * time.Hour
	switch tf {
	case entity.Monthly:
		return 25 * day
	case entity.Yearly:
		return 200 * day
	default:
		return day * 6 / 10
	}
}
