package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

const epsilon = 1e-9

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_TeslaFirstWeek(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	start, end := date(2023, 1, 2), date(2023, 1, 6)

	first := g.Generate("Tesla", start, end, NewRand(42))
	second := g.Generate("Tesla", start, end, NewRand(42))

	require.Len(t, first.Candles, 5, "Mon-Fri should produce 5 bars")
	assert.Equal(t, 200.0, first.Candles[0].Open, "first open must be the starting price")
	assert.Equal(t, entity.Daily, first.Timeframe)
	assert.Equal(t, "Tesla", first.Symbol)
	assert.Equal(t, first, second, "same seed must reproduce the series")

	for i, c := range first.Candles {
		assert.Equal(t, start.AddDate(0, 0, i), c.Time)
	}
}

func TestGenerate_Invariants(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	for _, p := range g.Catalog().Profiles() {
		t.Run(p.Name, func(t *testing.T) {
			t.Parallel()

			s := g.Generate(p.Name, date(2018, 1, 1), date(2023, 12, 31), NewRand(7))
			require.NotEmpty(t, s.Candles)
			assert.Equal(t, p.StartingPrice, s.Candles[0].Open)

			for i, c := range s.Candles {
				assert.LessOrEqual(t, c.Low, c.Open+epsilon, "bar %d: low > open", i)
				assert.LessOrEqual(t, c.Low, c.Close+epsilon, "bar %d: low > close", i)
				assert.GreaterOrEqual(t, c.High, c.Open-epsilon, "bar %d: high < open", i)
				assert.GreaterOrEqual(t, c.High, c.Close-epsilon, "bar %d: high < close", i)
				assert.Greater(t, c.Low, 0.0, "bar %d: non-positive low", i)
				assert.Greater(t, c.Volume, int64(0), "bar %d: non-positive volume", i)
				assert.NotEqual(t, time.Saturday, c.Time.Weekday(), "bar %d on Saturday", i)
				assert.NotEqual(t, time.Sunday, c.Time.Weekday(), "bar %d on Sunday", i)
				if i > 0 {
					prev := s.Candles[i-1]
					assert.True(t, c.Time.After(prev.Time), "bar %d: dates not increasing", i)
					assert.Equal(t, prev.Close, c.Open, "bar %d: open must equal previous close", i)
				}
			}
		})
	}
}

func TestGenerate_EmptyRange(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	s := g.Generate("Apple", date(2023, 2, 1), date(2023, 1, 1), NewRand(1))

	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Candles)
}

func TestGenerate_WeekendOnlyRange(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	// 2023-01-07 is a Saturday.
	s := g.Generate("Apple", date(2023, 1, 7), date(2023, 1, 8), NewRand(1))

	assert.True(t, s.Empty())
}

func TestGenerate_UnknownInstrumentFallsBack(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	s := g.Generate("Acme", date(2023, 1, 2), date(2023, 1, 3), NewRand(3))

	require.Len(t, s.Candles, 2)
	assert.Equal(t, 200.0, s.Candles[0].Open)
	assert.Equal(t, "Tesla", s.Symbol)
	assert.Equal(t, "Tesla", s.Candles[0].Symbol)
}

func TestGenerate_UnknownNameIsNotEchoed(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	s := g.Generate("<script>alert(1)</script>", date(2023, 1, 2), date(2023, 1, 3), NewRand(3))

	require.Len(t, s.Candles, 2)
	assert.Equal(t, DefaultInstrument, s.Symbol)
	for _, c := range s.Candles {
		assert.Equal(t, DefaultInstrument, c.Symbol)
	}
}

func TestGenerate_CaseInsensitiveName(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	s := g.Generate("nvidia", date(2023, 1, 2), date(2023, 1, 2), NewRand(3))

	require.Len(t, s.Candles, 1)
	assert.Equal(t, "NVIDIA", s.Symbol)
	assert.Equal(t, 400.0, s.Candles[0].Open)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	a := g.Generate("Tesla", date(2023, 1, 2), date(2023, 3, 31), NewRand(1))
	b := g.Generate("Tesla", date(2023, 1, 2), date(2023, 3, 31), NewRand(2))

	assert.NotEqual(t, a.Candles, b.Candles)
}

func TestGenerate_NilRandStillProducesBars(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	s := g.Generate("Tesla", date(2023, 1, 2), date(2023, 1, 6), nil)

	require.Len(t, s.Candles, 5)
	assert.Equal(t, 200.0, s.Candles[0].Open)
}

func TestGenerate_StrongDampingPullsDown(t *testing.T) {
	t.Parallel()

	// UpperBound 0 means every open is "above" the band, so each bar is
	// pushed down by 10 * volatility * open, far beyond the noise.
	g := NewGenerator(nil, WithMeanReversion(MeanReversion{UpperBound: 0, LowerBound: -1, Damping: 10}))
	s := g.Generate("Tesla", date(2023, 1, 2), date(2023, 1, 13), NewRand(5))

	require.Len(t, s.Candles, 10)
	for i, c := range s.Candles {
		assert.Less(t, c.Close, c.Open, "bar %d should close lower", i)
	}
}

func TestGenerate_StrongDampingPullsUp(t *testing.T) {
	t.Parallel()

	// open が常に LowerBound*start を下回るので、毎回 10 * volatility * open 押し上げられる。
	g := NewGenerator(nil, WithMeanReversion(MeanReversion{UpperBound: 20, LowerBound: 10, Damping: 10}))
	s := g.Generate("Tesla", date(2023, 1, 2), date(2023, 1, 13), NewRand(5))

	require.Len(t, s.Candles, 10)
	for i, c := range s.Candles {
		assert.Greater(t, c.Close, c.Open, "bar %d should close higher", i)
	}
}

func TestGenerate_ZeroDampingDisablesReversion(t *testing.T) {
	t.Parallel()

	off := NewGenerator(nil, WithMeanReversion(MeanReversion{UpperBound: 0, LowerBound: -1, Damping: 0}))
	plain := NewGenerator(nil, WithMeanReversion(MeanReversion{UpperBound: 1e9, LowerBound: -1, Damping: 0.1}))

	a := off.Generate("Tesla", date(2023, 1, 2), date(2023, 3, 31), NewRand(9))
	b := plain.Generate("Tesla", date(2023, 1, 2), date(2023, 3, 31), NewRand(9))

	assert.Equal(t, b.Candles, a.Candles)
}

type mondaysOnly struct{}

func (mondaysOnly) IsTradingDay(day time.Time) bool { return day.Weekday() == time.Monday }

func TestGenerate_CustomDayFilter(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil, WithDayFilter(mondaysOnly{}))
	s := g.Generate("Tesla", date(2023, 1, 1), date(2023, 1, 31), NewRand(5))

	require.Len(t, s.Candles, 5)
	for _, c := range s.Candles {
		assert.Equal(t, time.Monday, c.Time.Weekday())
	}
}

func TestGenerate_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	g := NewGenerator(nil)
	start := time.Date(2023, 1, 2, 23, 30, 0, 0, time.UTC)
	end := time.Date(2023, 1, 3, 1, 0, 0, 0, time.UTC)
	s := g.Generate("Tesla", start, end, NewRand(5))

	require.Len(t, s.Candles, 2)
	assert.Equal(t, date(2023, 1, 2), s.Candles[0].Time)
}

func TestRoundCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.23, roundCents(1.234))
	assert.Equal(t, 1.24, roundCents(1.235))
	assert.Equal(t, 200.0, roundCents(200))
}
