package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"candle_dashboard/internal/feature/candles/domain/describe"
	"candle_dashboard/internal/feature/candles/transport/http/dto"
	"candle_dashboard/internal/feature/candles/usecase"
)

// SeedHeader は実際に使われたseedを返すレスポンスヘッダーです。
const SeedHeader = "X-Series-Seed"

// SeriesUsecase はリクエストごとの系列生成を扱います。
type SeriesUsecase interface {
	GetSeries(ctx context.Context, q usecase.SeriesQuery) (usecase.SeriesResult, error)
	Describe(ctx context.Context, q usecase.SeriesQuery) (describe.Description, usecase.SeriesResult, error)
}

// ExportUsecase は系列のファイル出力を扱います。
type ExportUsecase interface {
	Export(ctx context.Context, req usecase.ExportRequest) (usecase.ExportResult, error)
}

// SeriesHandler は /series 配下のエンドポイントを処理します。
type SeriesHandler struct {
	series SeriesUsecase
	export ExportUsecase
}

// NewSeriesHandler は新しいSeriesHandlerを生成します。
func NewSeriesHandler(series SeriesUsecase, export ExportUsecase) *SeriesHandler {
	return &SeriesHandler{series: series, export: export}
}

// GetSeriesHandler は系列を生成してJSONで返します。
//
// エンドポイント例:
// GET /series/Tesla?timeframe=Monthly&start=2023-01-01&end=2023-12-31&seed=42
func (h *SeriesHandler) GetSeriesHandler(c *gin.Context) {
	res, err := h.series.GetSeries(c.Request.Context(), seriesQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(SeedHeader, strconv.FormatInt(res.Seed, 10))
	c.JSON(http.StatusOK, dto.SeriesResponse{
		Symbol:    res.Series.Symbol,
		Timeframe: string(res.Series.Timeframe),
		Start:     res.Start.Format(dateLayout),
		End:       res.End.Format(dateLayout),
		Seed:      res.Seed,
		Candles:   toCandleResponses(res.Series.Candles),
	})
}

// DescribeHandler はスクリーンリーダー向けの説明と音の高さを返します。
//
// エンドポイント例:
// GET /series/Tesla/description?timeframe=Yearly
func (h *SeriesHandler) DescribeHandler(c *gin.Context) {
	d, res, err := h.series.Describe(c.Request.Context(), seriesQuery(c))
	if err != nil {
		writeError(c, err)
		return
	}

	points := make([]dto.DescriptionPoint, 0, len(d.Points))
	for _, p := range d.Points {
		points = append(points, dto.DescriptionPoint{Label: p.Label, Text: p.Text, Tone: p.Tone})
	}
	c.Header(SeedHeader, strconv.FormatInt(res.Seed, 10))
	c.JSON(http.StatusOK, dto.DescriptionResponse{
		Title:   d.Title,
		XLabel:  d.XLabel,
		YLabel:  d.YLabel,
		Summary: d.Summary,
		Seed:    res.Seed,
		Points:  points,
	})
}

// ExportHandler は系列をsvg / png / csv / html / embed で返します。
//
// エンドポイント例:
// GET /series/Tesla/export?format=png&theme=Dark&palette=Green
func (h *SeriesHandler) ExportHandler(c *gin.Context) {
	res, err := h.export.Export(c.Request.Context(), usecase.ExportRequest{
		SeriesQuery: seriesQuery(c),
		Format:      c.Query("format"),
		Theme:       c.Query("theme"),
		Palette:     c.Query("palette"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header(SeedHeader, strconv.FormatInt(res.Seed, 10))
	if c.Query("download") != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	}
	c.Data(http.StatusOK, res.ContentType, res.Body)
}

func seriesQuery(c *gin.Context) usecase.SeriesQuery {
	return usecase.SeriesQuery{
		Instrument: c.Param("instrument"),
		Timeframe:  c.Query("timeframe"),
		Start:      c.Query("start"),
		End:        c.Query("end"),
		Seed:       c.Query("seed"),
	}
}
