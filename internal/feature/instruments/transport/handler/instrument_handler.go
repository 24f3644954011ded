// Package handler はinstrumentsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"candle_dashboard/internal/feature/instruments/domain/entity"
	"candle_dashboard/internal/feature/instruments/transport/http/dto"
)

// InstrumentUsecase は銘柄プロファイルに関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type InstrumentUsecase interface {
	ListInstruments(ctx context.Context) ([]entity.Instrument, error)
}

// InstrumentHandler は銘柄プロファイルに関するHTTPリクエストを処理します。
type InstrumentHandler struct {
	uc InstrumentUsecase
}

// NewInstrumentHandler は新しい InstrumentHandler を作成します。
func NewInstrumentHandler(uc InstrumentUsecase) *InstrumentHandler {
	return &InstrumentHandler{uc: uc}
}

// List は選択可能な銘柄の一覧を返すAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *InstrumentHandler) List(c *gin.Context) {
	ins, err := h.uc.ListInstruments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.InstrumentItem, 0, len(ins))
	for _, in := range ins {
		out = append(out, dto.InstrumentItem{
			Name:          in.Name,
			StartingPrice: in.StartingPrice,
			Volatility:    in.Volatility,
			Default:       in.IsDefault,
		})
	}
	c.JSON(http.StatusOK, out)
}
