package di

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"candle_dashboard/internal/app/config"
	"candle_dashboard/internal/app/router"
	candleadapters "candle_dashboard/internal/feature/candles/adapters"
	"candle_dashboard/internal/feature/candles/adapters/csvexport"
	"candle_dashboard/internal/feature/candles/adapters/gochart"
	"candle_dashboard/internal/feature/candles/adapters/webexport"
	"candle_dashboard/internal/feature/candles/domain/series"
	candleshandler "candle_dashboard/internal/feature/candles/transport/handler"
	candlesusecase "candle_dashboard/internal/feature/candles/usecase"
	instrumentadapters "candle_dashboard/internal/feature/instruments/adapters"
	instrumentshandler "candle_dashboard/internal/feature/instruments/transport/handler"
	instrumentsusecase "candle_dashboard/internal/feature/instruments/usecase"
	"candle_dashboard/internal/platform/cache"
	platformhandler "candle_dashboard/internal/platform/http/handler"
	platformredis "candle_dashboard/internal/platform/redis"
)

// NewCandleStore はスナップショット用リポジトリを返します。
// rdbがnilの場合はキャッシュなしで動作します。
func NewCandleStore(cfg *config.Config, db *gorm.DB, rdb redis.Cmdable) candlesusecase.CandleRepository {
	repo := candleadapters.NewCandleRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingCandleRepository(rdb, repo,
		cache.WithTTL(cfg.Redis.TTL),
		cache.WithRefreshAt(cfg.Redis.RefreshHour, cfg.RefreshLocation()),
	)
}

// NewHandlers はHTTPハンドラー一式を組み立てます。
func NewHandlers(cfg *config.Config, gen *series.Generator, db *gorm.DB, rdb redis.Cmdable) router.Handlers {
	seriesUC := candlesusecase.NewSeriesUsecase(gen, cfg.Generator.DefaultSeed,
		candlesusecase.WithMaxSpanDays(cfg.Generator.MaxSpanDays))
	exportUC := candlesusecase.NewExportUsecase(seriesUC,
		gochart.NewRenderer(0, 0), csvexport.NewWriter(), webexport.NewWriter())
	candlesUC := candlesusecase.NewCandlesUsecase(NewCandleStore(cfg, db, rdb),
		candlesusecase.WithSymbolResolver(gen.Catalog()))
	instrumentUC := instrumentsusecase.NewInstrumentUsecase(instrumentadapters.NewCatalogRepository(gen.Catalog()))

	return router.Handlers{
		Health:      platformhandler.NewHealth(healthChecks(db, rdb)...),
		Candles:     candleshandler.NewCandlesHandler(candlesUC),
		Series:      candleshandler.NewSeriesHandler(seriesUC, exportUC),
		Instruments: instrumentshandler.NewInstrumentHandler(instrumentUC),
	}
}

func healthChecks(db *gorm.DB, rdb redis.Cmdable) []platformhandler.Check {
	checks := []platformhandler.Check{{
		Name:     "db",
		Required: true,
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return platformredis.Ping(ctx, rdb) },
		})
	}
	return checks
}
