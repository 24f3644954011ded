// Package synthetic serves generated series through the market data
// interface used by the ingest usecase.
package synthetic

import (
	"context"
	"math/rand/v2"

	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/domain/series"
	"candle_dashboard/internal/feature/candles/usecase"
)

// Market generates each requested series over the timeframe's default window.
type Market struct {
	gen  *series.Generator
	seed *int64
}

var _ usecase.MarketRepository = (*Market)(nil)

// NewMarket returns a Market. With a nil seed every call draws a new series.
func NewMarket(gen *series.Generator, seed *int64) *Market {
	return &Market{gen: gen, seed: seed}
}

// GetTimeSeries generates the daily series for symbol, aggregates it to
// interval and returns the most recent outputsize bars in chronological
// order. A non-positive outputsize returns every bar.
func (m *Market) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tf, err := entity.ParseTimeframe(interval)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if m.seed != nil {
		rng = series.NewRand(*m.seed)
	}
	start, end := series.DefaultWindow(tf)
	s, err := series.Aggregate(m.gen.Generate(symbol, start, end, rng), tf)
	if err != nil {
		return nil, err
	}

	cs := s.Candles
	if outputsize > 0 && len(cs) > outputsize {
		cs = cs[len(cs)-outputsize:]
	}
	return cs, nil
}
