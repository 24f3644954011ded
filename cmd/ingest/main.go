package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"candle_dashboard/internal/app/config"
	"candle_dashboard/internal/app/di"
	candleadapters "candle_dashboard/internal/feature/candles/adapters"
	"candle_dashboard/internal/feature/candles/adapters/synthetic"
	candlesusecase "candle_dashboard/internal/feature/candles/usecase"
	instrumentadapters "candle_dashboard/internal/feature/instruments/adapters"
	instrumentsusecase "candle_dashboard/internal/feature/instruments/usecase"
	platformdb "candle_dashboard/internal/platform/db"
	"candle_dashboard/internal/platform/logger"
	platformredis "candle_dashboard/internal/platform/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single ingest even if ingest.cron is set")
	flag.Parse()

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
	logger.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := platformdb.Open(ctx, platformdb.Config{
		Driver:  cfg.Database.Driver,
		DSN:     cfg.Database.DSN,
		Migrate: cfg.Database.Migrate,
	}, &candleadapters.CandleModel{})
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	gen, err := di.NewGenerator(cfg)
	if err != nil {
		log.Fatalf("failed to build generator: %v", err)
	}

	// 書き込み時にキャッシュの世代を進めるため、Redisがあれば経由する
	var store candlesusecase.CandleRepository = candleadapters.NewCandleRepository(db)
	if cfg.Redis.Enabled {
		client, err := platformredis.NewRedisClient(ctx, platformredis.Options{
			Addr: cfg.RedisAddr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB,
		})
		if err != nil {
			slog.Warn("Redis unavailable. Cached snapshots expire by TTL only.")
		} else {
			defer client.Close()
			store = di.NewCandleStore(cfg, db, client)
		}
	}

	uc := candlesusecase.NewIngestUsecase(synthetic.NewMarket(gen, cfg.Generator.DefaultSeed), store, cfg.Ingest.OutputSize)
	instruments := instrumentsusecase.NewInstrumentUsecase(instrumentadapters.NewCatalogRepository(gen.Catalog()))

	run := func() {
		runCtx, cancel := context.WithTimeout(ctx, cfg.Ingest.Timeout)
		defer cancel()

		names, err := instruments.ListNames(runCtx)
		if err != nil {
			slog.Error("failed to load instruments", "error", err)
			return
		}
		n, err := uc.IngestAll(runCtx, names)
		if err != nil {
			slog.Error("ingest finished with errors", "candles", n, "error", err)
			return
		}
		slog.Info("ingest ok", "candles", n)
	}

	if cfg.Ingest.Cron == "" || *once {
		run()
		return
	}

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Ingest.Cron, run); err != nil {
		log.Fatalf("invalid ingest.cron %q: %v", cfg.Ingest.Cron, err)
	}
	c.Start()
	slog.Info("ingest scheduled", "cron", cfg.Ingest.Cron)

	<-ctx.Done()
	<-c.Stop().Done()
	slog.Info("ingest scheduler stopped")
}
