// Package di はアプリケーションの依存関係を組み立てます。
package di

import (
	"log/slog"

	"candle_dashboard/internal/app/config"
	"candle_dashboard/internal/feature/candles/adapters/tradingcal"
	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/domain/series"
)

// NewGenerator は設定から銘柄カタログ・平均回帰・取引日フィルタを組み立てます。
func NewGenerator(cfg *config.Config) (*series.Generator, error) {
	overrides := make([]entity.InstrumentProfile, 0, len(cfg.Instruments))
	for _, in := range cfg.Instruments {
		overrides = append(overrides, entity.InstrumentProfile{
			Name:          in.Name,
			StartingPrice: in.StartingPrice,
			Volatility:    in.Volatility,
		})
	}

	reversion := series.DefaultMeanReversion()
	if v := cfg.Generator.UpperBound; v != nil {
		reversion.UpperBound = *v
	}
	if v := cfg.Generator.LowerBound; v != nil {
		reversion.LowerBound = *v
	}
	if v := cfg.Generator.Damping; v != nil {
		reversion.Damping = *v
	}

	opts := []series.Option{series.WithMeanReversion(reversion)}
	if cfg.Generator.CalendarMIC != "" {
		cal, err := tradingcal.New(cfg.Generator.CalendarMIC)
		if err != nil {
			return nil, err
		}
		slog.Info("using exchange calendar", "mic", cal.MIC())
		opts = append(opts, series.WithDayFilter(cal))
	}

	return series.NewGenerator(series.NewCatalog(overrides...), opts...), nil
}
