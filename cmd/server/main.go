package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"candle_dashboard/internal/app/config"
	"candle_dashboard/internal/app/di"
	"candle_dashboard/internal/app/router"
	candleadapters "candle_dashboard/internal/feature/candles/adapters"
	platformdb "candle_dashboard/internal/platform/db"
	platformhttp "candle_dashboard/internal/platform/http"
	"candle_dashboard/internal/platform/logger"
	platformredis "candle_dashboard/internal/platform/redis"
	"candle_dashboard/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	l := logger.Setup(cfg.Log.Level, cfg.Log.Format)
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := platformdb.Open(ctx, platformdb.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		Migrate: cfg.Database.Migrate,
	}, &candleadapters.CandleModel{})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Redis（なくても動く）
	var rdb redis.Cmdable
	if cfg.Redis.Enabled {
		client, err := platformredis.NewRedisClient(ctx, platformredis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = client
			defer func() {
				if err := client.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	gen, err := di.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("failed to build generator: %v", err)
	}

	opts := router.Options{CORSOrigins: cfg.Server.CORSOrigins, Logger: l}
	if n := cfg.Server.ExportRatePerMinute; n > 0 {
		opts.ExportLimiter = ratelimiter.NewRateLimiter(n, time.Minute)
	}
	r := router.NewRouter(di.NewHandlers(cfg, gen, db, rdb), opts)

	if err := platformhttp.Serve(ctx, platformhttp.NewServer(cfg.Server.Addr, r), 10*time.Second); err != nil {
		log.Fatal(err)
	}
}
