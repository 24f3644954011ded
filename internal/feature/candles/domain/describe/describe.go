// Package describe builds screen-reader descriptions and sonification data
// for candle series.
package describe

import (
	"fmt"
	"math"
	"strings"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

const (
	// ToneMin and ToneMax bound the sonification pitch range in Hz.
	ToneMin = 220.0
	ToneMax = 880.0
)

// Stats summarizes a series.
type Stats struct {
	Bars        int
	FirstOpen   float64
	LastClose   float64
	Change      float64
	ChangePct   float64
	HighestHigh float64
	LowestLow   float64
	UpBars      int
	DownBars    int
	TotalVolume int64
}

// Point is the spoken form of one bar plus its tone.
type Point struct {
	Label string
	Text  string
	Tone  float64
}

// Description is the accessible rendering of a candlestick chart.
type Description struct {
	Title   string
	XLabel  string
	YLabel  string
	Summary string
	Stats   Stats
	Points  []Point
}

// Summarize computes Stats for s. An empty series yields zero Stats.
func Summarize(s entity.Series) Stats {
	if s.Empty() {
		return Stats{}
	}
	first, last := s.Candles[0], s.Candles[len(s.Candles)-1]
	st := Stats{
		Bars:        len(s.Candles),
		FirstOpen:   first.Open,
		LastClose:   last.Close,
		HighestHigh: first.High,
		LowestLow:   first.Low,
	}
	for _, c := range s.Candles {
		st.HighestHigh = math.Max(st.HighestHigh, c.High)
		st.LowestLow = math.Min(st.LowestLow, c.Low)
		st.TotalVolume += c.Volume
		switch {
		case c.Close > c.Open:
			st.UpBars++
		case c.Close < c.Open:
			st.DownBars++
		}
	}
	st.Change = st.LastClose - st.FirstOpen
	if st.FirstOpen != 0 {
		st.ChangePct = st.Change / st.FirstOpen * 100
	}
	return st
}

// Tones maps each close onto [ToneMin, ToneMax] linearly between the lowest
// and highest close. A flat series sits in the middle of the range.
func Tones(s entity.Series) []float64 {
	out := make([]float64, len(s.Candles))
	if s.Empty() {
		return out
	}
	lo, hi := s.Candles[0].Close, s.Candles[0].Close
	for _, c := range s.Candles {
		lo = math.Min(lo, c.Close)
		hi = math.Max(hi, c.Close)
	}
	for i, c := range s.Candles {
		if hi == lo {
			out[i] = (ToneMin + ToneMax) / 2
			continue
		}
		out[i] = ToneMin + (c.Close-lo)/(hi-lo)*(ToneMax-ToneMin)
	}
	return out
}

// Describe builds the full Description for s.
func Describe(s entity.Series) Description {
	d := Description{
		Title:  fmt.Sprintf("%s Stock Price - Candlestick Chart - %s View", s.Symbol, s.Timeframe),
		XLabel: "Date",
		YLabel: "Price ($)",
		Stats:  Summarize(s),
		Points: make([]Point, 0, len(s.Candles)),
	}

	if s.Empty() {
		d.Summary = fmt.Sprintf("%s has no %s bars in the selected range.", s.Symbol, strings.ToLower(string(s.Timeframe)))
		return d
	}

	layout := dateLayout(s.Timeframe)
	first, last := s.Candles[0].Time.Format(layout), s.Candles[len(s.Candles)-1].Time.Format(layout)
	st := d.Stats
	direction := "rose"
	if st.Change < 0 {
		direction = "fell"
	} else if st.Change == 0 {
		direction = "was unchanged"
	}
	d.Summary = fmt.Sprintf(
		"%s %s bars from %s to %s. Price %s from %.2f to %.2f (%+.2f%%). %d up bars, %d down bars. Highest high %.2f, lowest low %.2f. Total volume %d.",
		s.Symbol, strings.ToLower(string(s.Timeframe)), first, last,
		direction, st.FirstOpen, st.LastClose, st.ChangePct,
		st.UpBars, st.DownBars, st.HighestHigh, st.LowestLow, st.TotalVolume,
	)

	tones := Tones(s)
	for i, c := range s.Candles {
		label := c.Time.Format(layout)
		d.Points = append(d.Points, Point{
			Label: label,
			Text: fmt.Sprintf("%s: open %.2f, high %.2f, low %.2f, close %.2f, volume %d",
				label, c.Open, c.High, c.Low, c.Close, c.Volume),
			Tone: tones[i],
		})
	}
	return d
}

func dateLayout(tf entity.Timeframe) string {
	switch tf {
	case entity.Monthly:
		return "2006-01"
	case entity.Yearly:
		return "2006"
	default:
		return "2006-01-02"
	}
}
