// Package router はHTTPルーティングを組み立てます。
package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	candleshandler "candle_dashboard/internal/feature/candles/transport/handler"
	instrumentshandler "candle_dashboard/internal/feature/instruments/transport/handler"
	platformhandler "candle_dashboard/internal/platform/http/handler"
	"candle_dashboard/internal/platform/http/middleware"
)

// Handlers はルーターに登録するハンドラー一式です。
type Handlers struct {
	Health      *platformhandler.Health
	Candles     *candleshandler.CandlesHandler
	Series      *candleshandler.SeriesHandler
	Instruments *instrumentshandler.InstrumentHandler
}

// Options はルーターの設定です。
type Options struct {
	// CORSOrigins が空の場合はすべてのオリジンを許可します。
	CORSOrigins []string
	Logger      *slog.Logger
	// ExportLimiter が設定されていれば画像エクスポートに適用します。
	ExportLimiter middleware.Limiter
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(opts.Logger), cors.New(corsConfig(opts.CORSOrigins)))

	// 導通確認用
	r.GET("/healthz", h.Health.Handle)
	r.HEAD("/healthz", h.Health.Handle)
	r.OPTIONS("/healthz", h.Health.Handle)

	r.GET("/instruments", h.Instruments.List)

	// リクエストごとに生成する系列
	series := r.Group("/series/:instrument")
	{
		series.GET("", h.Series.GetSeriesHandler)
		series.GET("/description", h.Series.DescribeHandler)
		if opts.ExportLimiter != nil {
			series.GET("/export", middleware.RateLimit(opts.ExportLimiter), h.Series.ExportHandler)
		} else {
			series.GET("/export", h.Series.ExportHandler)
		}
	}

	// ingestで保存したスナップショット
	r.GET("/candles/:code", h.Candles.GetCandlesHandler)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	cfg.ExposeHeaders = []string{candleshandler.SeedHeader, middleware.RequestIDHeader, "Content-Disposition"}
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
