package series

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

const (
	baseVolume = 1_000_000
	// minPrice keeps generated prices strictly positive.
	minPrice = 0.01
	// pcgStream is the fixed second PCG word; only the seed varies.
	pcgStream = 0x9e3779b97f4a7c15
)

// MeanReversion pulls the walk back toward the starting price once it has
// drifted outside [LowerBound, UpperBound] times that price.
type MeanReversion struct {
	UpperBound float64 // e.g. 1.2 = 120% of the starting price
	LowerBound float64 // e.g. 0.8 = 80% of the starting price
	Damping    float64 // fraction of volatility*open added or removed
}

// DefaultMeanReversion returns the 120% / 80% / 0.1 parameters.
func DefaultMeanReversion() MeanReversion {
	return MeanReversion{UpperBound: 1.2, LowerBound: 0.8, Damping: 0.1}
}

// DayFilter decides which calendar days get a daily bar.
type DayFilter interface {
	IsTradingDay(day time.Time) bool
}

// WeekdayFilter accepts Monday through Friday.
type WeekdayFilter struct{}

func (WeekdayFilter) IsTradingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Generator synthesizes daily series from catalog profiles.
// A Generator holds no mutable state; randomness comes only from the
// *rand.Rand passed to Generate.
type Generator struct {
	catalog   *Catalog
	reversion MeanReversion
	days      DayFilter
}

// Option configures a Generator.
type Option func(*Generator)

// WithMeanReversion overrides the mean-reversion parameters.
func WithMeanReversion(m MeanReversion) Option {
	return func(g *Generator) { g.reversion = m }
}

// WithDayFilter replaces the weekday filter, e.g. with an exchange calendar.
func WithDayFilter(f DayFilter) Option {
	return func(g *Generator) {
		if f != nil {
			g.days = f
		}
	}
}

// NewGenerator returns a Generator reading profiles from catalog.
// A nil catalog means the built-in profiles.
func NewGenerator(catalog *Catalog, opts ...Option) *Generator {
	if catalog == nil {
		catalog = NewCatalog()
	}
	g := &Generator{
		catalog:   catalog,
		reversion: DefaultMeanReversion(),
		days:      WeekdayFilter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Catalog returns the profile table the generator reads from.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// NewRand returns a random source that reproduces the same draws for the
// same seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// Generate produces a daily series for instrument covering every trading day
// in [start, end]. Only the calendar date of start and end is used.
// Unknown instruments use the DefaultInstrument profile, name included, and
// end before start
// yields an empty series. A nil rng draws from a freshly seeded source, so
// callers that need reproducible output must pass NewRand(seed).
func (g *Generator) Generate(instrument string, start, end time.Time, rng *rand.Rand) entity.Series {
	profile := g.catalog.Resolve(instrument)
	// 未登録の名前は既定プロファイルの名前で返す。入力文字列は出力に流さない。
	symbol := profile.Name

	out := entity.Series{Symbol: symbol, Timeframe: entity.Daily, Candles: []entity.Candle{}}

	start, end = truncateDay(start), truncateDay(end)
	if end.Before(start) {
		return out
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	vol := profile.Volatility
	open := profile.StartingPrice
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !g.days.IsTradingDay(day) {
			continue
		}

		change := rng.NormFloat64() * vol * open
		switch {
		case open > profile.StartingPrice*g.reversion.UpperBound:
			change -= g.reversion.Damping * vol * open
		case open < profile.StartingPrice*g.reversion.LowerBound:
			change += g.reversion.Damping * vol * open
		}
		rawClose := open + change

		dailyRange := math.Abs(change) + vol*open
		rawHigh := math.Max(open, rawClose) + math.Abs(rng.NormFloat64()*dailyRange/3)
		rawLow := math.Min(open, rawClose) - math.Abs(rng.NormFloat64()*dailyRange/3)

		factor := 1.0 + 2.0*(math.Abs(change)/(vol*open))
		volume := math.Round(baseVolume * factor * (0.7 + 0.6*rng.Float64()))

		bar := entity.Candle{
			Symbol:   symbol,
			Interval: string(entity.Daily),
			Time:     day,
			Open:     open,
			High:     roundCents(rawHigh),
			Low:      roundCents(rawLow),
			Close:    math.Max(roundCents(rawClose), minPrice),
			Volume:   int64(volume),
		}
		clampBar(&bar)
		out.Candles = append(out.Candles, bar)

		open = bar.Close
	}
	return out
}

// clampBar restores low <= min(open, close) <= max(open, close) <= high
// after rounding.
func clampBar(c *entity.Candle) {
	c.High = math.Max(c.High, math.Max(c.Open, c.Close))
	c.Low = math.Min(c.Low, math.Min(c.Open, c.Close))
	if c.Low < minPrice {
		c.Low = minPrice
	}
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
