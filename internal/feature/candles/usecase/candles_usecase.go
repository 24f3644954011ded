// Package usecase はローソク足データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

const (
	// DefaultInterval はローソク足クエリのデフォルト時間足です。
	DefaultInterval = entity.Daily
	// DefaultOutputSize はデフォルトのローソク足返却件数です。
	DefaultOutputSize = 200
	// MaxOutputSize はローソク足の最大返却件数です。
	MaxOutputSize = 5000
)

// CandleRepository は保存済みローソク足の読み書きを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleRepository interface {
	// Find は新しい順に最大outputsize件のローソク足を返します。
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	// UpsertBatch は (symbol, interval, time) をキーに挿入または更新します。
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// SymbolResolver は銘柄名を大文字小文字を区別せずに正規の名前へ解決します。
type SymbolResolver interface {
	Lookup(name string) (entity.InstrumentProfile, bool)
}

// candlesUsecase は保存済みスナップショットを返すユースケースです。
type candlesUsecase struct {
	candle  CandleRepository
	symbols SymbolResolver
}

// CandlesOption はcandlesUsecaseの設定を変更します。
type CandlesOption func(*candlesUsecase)

// WithSymbolResolver は検索前に銘柄コードをカタログの名前へ揃えます。
func WithSymbolResolver(r SymbolResolver) CandlesOption {
	return func(cu *candlesUsecase) { cu.symbols = r }
}

// NewCandlesUsecase はcandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(candle CandleRepository, opts ...CandlesOption) *candlesUsecase {
	cu := &candlesUsecase{candle: candle}
	for _, opt := range opts {
		opt(cu)
	}
	return cu
}

// GetCandles は指定された銘柄と時間足の直近outputsize件を新しい順で返します。
// intervalが空ならDaily、outputsizeが範囲外ならDefaultOutputSizeを使います。
// カタログにない銘柄はそのまま検索します（保存されていなければ空）。
func (cu *candlesUsecase) GetCandles(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	tf := DefaultInterval
	if interval != "" {
		parsed, err := entity.ParseTimeframe(interval)
		if err != nil {
			return nil, err
		}
		tf = parsed
	}
	if outputsize <= 0 || outputsize > MaxOutputSize {
		outputsize = DefaultOutputSize
	}

	if cu.symbols != nil {
		if p, ok := cu.symbols.Lookup(symbol); ok {
			symbol = p.Name
		}
	}

	return cu.candle.Find(ctx, symbol, string(tf), outputsize)
}
