// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/transport/http/dto"
	"candle_dashboard/internal/feature/candles/usecase"
)

const dateLayout = "2006-01-02"

// CandlesUsecase は保存済みローソク足のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
}

// CandlesHandler は保存済みローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandlesHandler は銘柄と時間足を受け取り、保存済みローソク足をJSONで返します。
//
// エンドポイント例:
// GET /candles/:code?interval=Daily&outputsize=200
func (h *CandlesHandler) GetCandlesHandler(c *gin.Context) {
	code := c.Param("code")
	interval := c.Query("interval")
	// 数値でない場合は0を渡し、デフォルト値への変換はusecaseに任せる
	outputsize, _ := strconv.Atoi(c.DefaultQuery("outputsize", "200"))

	candles, err := h.uc.GetCandles(c.Request.Context(), code, interval, outputsize)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCandleResponses(candles))
}

func toCandleResponses(candles []entity.Candle) []dto.CandleResponse {
	out := make([]dto.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, dto.CandleResponse{
			Time:   x.Time.UTC().Format(dateLayout),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	return out
}

// statusFor はusecaseのエラーをHTTPステータスに変換します。
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidTimeframe),
		errors.Is(err, entity.ErrInvalidTheme),
		errors.Is(err, entity.ErrInvalidPalette),
		errors.Is(err, usecase.ErrInvalidDate),
		errors.Is(err, usecase.ErrInvalidSeed),
		errors.Is(err, usecase.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrNotEnoughData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}
