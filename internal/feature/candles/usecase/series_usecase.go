package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"candle_dashboard/internal/feature/candles/domain/describe"
	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/domain/series"
)

const dateLayout = "2006-01-02"

// DefaultMaxSpanDays は1リクエストで生成できる日数の上限です（約20年）。
const DefaultMaxSpanDays = 7320

// SeriesGenerator は日足の合成系列を生成します。
type SeriesGenerator interface {
	Generate(instrument string, start, end time.Time, rng *rand.Rand) entity.Series
}

// SeriesQuery はクエリパラメータをそのまま保持します。空文字は既定値を意味します。
type SeriesQuery struct {
	Instrument string
	Timeframe  string // Daily / Monthly / Yearly
	Start      string // YYYY-MM-DD
	End        string // YYYY-MM-DD
	Seed       string // 整数 または "random"
}

// SeriesResult は生成・集約済みの系列と、実際に使われたパラメータです。
type SeriesResult struct {
	Series entity.Series
	Seed   int64
	Start  time.Time
	End    time.Time
}

// SeriesUsecase はリクエストごとに系列を生成して時間足へ集約します。
// 結果は保存もキャッシュもしません。
type SeriesUsecase struct {
	gen         SeriesGenerator
	defaultSeed *int64
	maxSpanDays int
}

// SeriesOption はSeriesUsecaseの設定を変更します。
type SeriesOption func(*SeriesUsecase)

// WithMaxSpanDays は start から end までの日数の上限を変更します。0以下は既定値のままです。
func WithMaxSpanDays(days int) SeriesOption {
	return func(su *SeriesUsecase) {
		if days > 0 {
			su.maxSpanDays = days
		}
	}
}

// NewSeriesUsecase は新しいSeriesUsecaseを生成します。
// defaultSeedがnilの場合、seed未指定のリクエストは毎回ランダムになります。
func NewSeriesUsecase(gen SeriesGenerator, defaultSeed *int64, opts ...SeriesOption) *SeriesUsecase {
	su := &SeriesUsecase{gen: gen, defaultSeed: defaultSeed, maxSpanDays: DefaultMaxSpanDays}
	for _, opt := range opts {
		opt(su)
	}
	return su
}

// GetSeries は日足を生成し、指定の時間足へ集約して返します。
// end < start の場合はエラーではなく空の系列を返します。
func (su *SeriesUsecase) GetSeries(ctx context.Context, q SeriesQuery) (SeriesResult, error) {
	if err := ctx.Err(); err != nil {
		return SeriesResult{}, err
	}

	tf := entity.Daily
	if strings.TrimSpace(q.Timeframe) != "" {
		parsed, err := entity.ParseTimeframe(q.Timeframe)
		if err != nil {
			return SeriesResult{}, err
		}
		tf = parsed
	}

	start, end := series.DefaultWindow(tf)
	var err error
	if start, err = parseDate(q.Start, start); err != nil {
		return SeriesResult{}, fmt.Errorf("%w: start %q", ErrInvalidDate, q.Start)
	}
	if end, err = parseDate(q.End, end); err != nil {
		return SeriesResult{}, fmt.Errorf("%w: end %q", ErrInvalidDate, q.End)
	}
	if days := spanDays(start, end); days > su.maxSpanDays {
		return SeriesResult{}, fmt.Errorf("%w: range of %d days exceeds %d", ErrInvalidDate, days, su.maxSpanDays)
	}

	seed, err := su.resolveSeed(q.Seed)
	if err != nil {
		return SeriesResult{}, err
	}

	daily := su.gen.Generate(q.Instrument, start, end, series.NewRand(seed))
	out, err := series.Aggregate(daily, tf)
	if err != nil {
		return SeriesResult{}, err
	}

	slog.Debug("series generated",
		"instrument", q.Instrument, "timeframe", tf, "start", start.Format(dateLayout),
		"end", end.Format(dateLayout), "seed", seed, "daily_bars", daily.Len(), "bars", out.Len())

	return SeriesResult{Series: out, Seed: seed, Start: start, End: end}, nil
}

// Describe は系列のスクリーンリーダー向け説明を返します。
func (su *SeriesUsecase) Describe(ctx context.Context, q SeriesQuery) (describe.Description, SeriesResult, error) {
	res, err := su.GetSeries(ctx, q)
	if err != nil {
		return describe.Description{}, SeriesResult{}, err
	}
	return describe.Describe(res.Series), res, nil
}

func (su *SeriesUsecase) resolveSeed(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "" && su.defaultSeed != nil:
		return *su.defaultSeed, nil
	case raw == "" || strings.EqualFold(raw, "random"):
		return rand.Int64(), nil
	}
	seed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeed, raw)
	}
	return seed, nil
}

// spanDays は両端を含む日数を返します。end < start は0です。
func spanDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	// Duration は約292年で飽和するので Unix 秒で数える
	return int((end.Unix()-start.Unix())/86400) + 1
}

func parseDate(raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseInLocation(dateLayout, raw, time.UTC)
}
