package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"candle_dashboard/internal/feature/candles/domain/describe"
	"candle_dashboard/internal/feature/candles/domain/entity"
)

// 対応するエクスポート形式
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatCSV   = "csv"
	FormatHTML  = "html"
	FormatEmbed = "embed"
)

var contentTypes = map[string]string{
	FormatSVG:   "image/svg+xml",
	FormatPNG:   "image/png",
	FormatCSV:   "text/csv; charset=utf-8",
	FormatHTML:  "text/html; charset=utf-8",
	FormatEmbed: "text/html; charset=utf-8",
}

// SeriesSource は集約済み系列を返します。SeriesUsecaseが実装します。
type SeriesSource interface {
	GetSeries(ctx context.Context, q SeriesQuery) (SeriesResult, error)
}

// ChartRenderer は系列を画像（svg / png）として描画します。
type ChartRenderer interface {
	Render(w io.Writer, s entity.Series, style entity.ChartStyle, format string) error
}

// TableWriter は系列を表形式で書き出します。
type TableWriter interface {
	WriteSeries(w io.Writer, s entity.Series) error
}

// PageWriter はSVGと説明文をHTMLに埋め込みます。
type PageWriter interface {
	WritePage(w io.Writer, svg []byte, d describe.Description, style entity.ChartStyle) error
	WriteEmbed(w io.Writer, svg []byte, d describe.Description, style entity.ChartStyle) error
}

// ExportRequest はエクスポート要求です。
type ExportRequest struct {
	SeriesQuery
	Format  string
	Theme   string
	Palette string
}

// ExportResult はエクスポート結果です。
type ExportResult struct {
	Body        []byte
	ContentType string
	Filename    string
	Seed        int64
}

// ExportUsecase は系列をファイル形式に変換します。
type ExportUsecase struct {
	series SeriesSource
	chart  ChartRenderer
	table  TableWriter
	page   PageWriter
}

// NewExportUsecase は新しいExportUsecaseを生成します。
func NewExportUsecase(series SeriesSource, chart ChartRenderer, table TableWriter, page PageWriter) *ExportUsecase {
	return &ExportUsecase{series: series, chart: chart, table: table, page: page}
}

// Export は系列を生成し、指定の形式で書き出します。
// 画像を含む形式で2本未満の場合は ErrNotEnoughData を返します。
func (eu *ExportUsecase) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = FormatSVG
	}
	contentType, ok := contentTypes[format]
	if !ok {
		return ExportResult{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	theme, err := entity.ParseTheme(req.Theme)
	if err != nil {
		return ExportResult{}, err
	}
	palette, err := entity.ParsePalette(req.Palette)
	if err != nil {
		return ExportResult{}, err
	}
	style := entity.ChartStyle{Theme: theme, Palette: palette}

	res, err := eu.series.GetSeries(ctx, req.SeriesQuery)
	if err != nil {
		return ExportResult{}, err
	}
	s := res.Series

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		err = eu.table.WriteSeries(&buf, s)
	case FormatSVG, FormatPNG:
		if s.Len() < 2 {
			return ExportResult{}, ErrNotEnoughData
		}
		err = eu.chart.Render(&buf, s, style, format)
	case FormatHTML, FormatEmbed:
		if s.Len() < 2 {
			return ExportResult{}, ErrNotEnoughData
		}
		var svg bytes.Buffer
		if err = eu.chart.Render(&svg, s, style, FormatSVG); err != nil {
			break
		}
		d := describe.Describe(s)
		if format == FormatHTML {
			err = eu.page.WritePage(&buf, svg.Bytes(), d, style)
		} else {
			err = eu.page.WriteEmbed(&buf, svg.Bytes(), d, style)
		}
	}
	if err != nil {
		return ExportResult{}, fmt.Errorf("export %s: %w", format, err)
	}

	return ExportResult{
		Body:        buf.Bytes(),
		ContentType: contentType,
		Filename:    exportFilename(s, format),
		Seed:        res.Seed,
	}, nil
}

// exportFilename は "tesla_monthly.svg" のようなファイル名を返します。
func exportFilename(s entity.Series, format string) string {
	ext := format
	if format == FormatEmbed {
		ext = FormatHTML
	}
	name := strings.ToLower(strings.Join(strings.Fields(s.Symbol), "_"))
	if name == "" {
		name = "series"
	}
	return fmt.Sprintf("%s_%s.%s", name, strings.ToLower(string(s.Timeframe)), ext)
}
