package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

// ingestIntervals はスナップショットを作成する時間足のリストです。
var ingestIntervals = entity.Timeframes

// MarketRepository は時系列データの取得元を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// IngestUsecase は合成系列を生成し、データベースに永続化するユースケースです。
type IngestUsecase struct {
	market     MarketRepository
	candle     CandleRepository
	outputsize int
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
// outputsizeが0以下の場合はウィンドウ内の全件を保存します。
func NewIngestUsecase(market MarketRepository, candle CandleRepository, outputsize int) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, outputsize: outputsize}
}

// ingestOne は1銘柄・1時間足分のデータを取得して一括でupsertし、件数を返します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string) (int, error) {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, interval, iu.outputsize)
	if err != nil {
		return 0, fmt.Errorf("fetch %s %s: %w", symbol, interval, err)
	}
	if len(cs) == 0 {
		return 0, nil
	}

	for i := range cs {
		cs[i].Symbol = symbol
		cs[i].Interval = interval
	}
	if err := iu.candle.UpsertBatch(ctx, cs); err != nil {
		return 0, fmt.Errorf("upsert %s %s: %w", symbol, interval, err)
	}
	return len(cs), nil
}

// IngestAll は全銘柄を全時間足で保存します。
// 1件の失敗で処理は止めず、最後にまとめてエラーを返します。
// コンテキストがキャンセルされた場合は即座に中断します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) (int, error) {
	var (
		total int
		errs  []error
	)
	for _, s := range symbols {
		for _, tf := range ingestIntervals {
			if err := ctx.Err(); err != nil {
				return total, err
			}
			n, err := iu.ingestOne(ctx, s, string(tf))
			if err != nil {
				slog.Error("failed to ingest data", "symbol", s, "interval", tf, "error", err)
				errs = append(errs, err)
				continue
			}
			total += n
		}
	}
	slog.Info("ingest finished", "symbols", len(symbols), "candles", total, "failures", len(errs))
	return total, errors.Join(errs...)
}
