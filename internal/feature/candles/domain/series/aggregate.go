package series

import (
	"math"
	"time"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

// Aggregate rolls s up into tf bars grouped by calendar month or year.
//
// Each output bar is dated on the last calendar day of its period and takes
// the first open, the highest high, the lowest low, the last close and the
// summed volume of the bars in that period. Partial periods at either end
// still produce a bar. A Daily target returns s unchanged.
func Aggregate(s entity.Series, tf entity.Timeframe) (entity.Series, error) {
	var key func(time.Time) int
	var end func(time.Time) time.Time
	switch tf {
	case entity.Daily:
		return s, nil
	case entity.Monthly:
		key = func(t time.Time) int { return t.Year()*12 + int(t.Month()) - 1 }
		end = func(t time.Time) time.Time {
			return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		}
	case entity.Yearly:
		key = func(t time.Time) int { return t.Year() }
		end = func(t time.Time) time.Time {
			return time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		}
	default:
		return entity.Series{}, entity.ErrInvalidTimeframe
	}

	out := entity.Series{Symbol: s.Symbol, Timeframe: tf, Candles: []entity.Candle{}}
	if s.Empty() {
		return out, nil
	}

	var cur *entity.Candle
	curKey := 0
	for _, c := range s.Candles {
		k := key(c.Time)
		if cur == nil || k != curKey {
			out.Candles = append(out.Candles, entity.Candle{
				Symbol:   s.Symbol,
				Interval: string(tf),
				Time:     end(c.Time),
				Open:     c.Open,
				High:     c.High,
				Low:      c.Low,
				Close:    c.Close,
				Volume:   c.Volume,
			})
			cur = &out.Candles[len(out.Candles)-1]
			curKey = k
			continue
		}
		cur.High = math.Max(cur.High, c.High)
		cur.Low = math.Min(cur.Low, c.Low)
		cur.Close = c.Close
		cur.Volume += c.Volume
	}
	return out, nil
}
