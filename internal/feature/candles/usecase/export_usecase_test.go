package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_dashboard/internal/feature/candles/domain/describe"
	"candle_dashboard/internal/feature/candles/domain/entity"
	"candle_dashboard/internal/feature/candles/usecase"
)

type mockSeriesSource struct {
	GetSeriesFunc func(ctx context.Context, q usecase.SeriesQuery) (usecase.SeriesResult, error)
}

func (m *mockSeriesSource) GetSeries(ctx context.Context, q usecase.SeriesQuery) (usecase.SeriesResult, error) {
	return m.GetSeriesFunc(ctx, q)
}

type mockChartRenderer struct {
	formats []string
	style   entity.ChartStyle
}

func (m *mockChartRenderer) Render(w io.Writer, _ entity.Series, style entity.ChartStyle, format string) error {
	m.formats = append(m.formats, format)
	m.style = style
	_, err := io.WriteString(w, "<svg/>")
	return err
}

type mockTableWriter struct{}

func (mockTableWriter) WriteSeries(w io.Writer, _ entity.Series) error {
	_, err := io.WriteString(w, "Date,Open,High,Low,Close,Volume\n")
	return err
}

type mockPageWriter struct {
	err error
}

func (m mockPageWriter) WritePage(w io.Writer, svg []byte, d describe.Description, _ entity.ChartStyle) error {
	if m.err != nil {
		return m.err
	}
	_, err := io.WriteString(w, "<html>"+string(svg)+d.Title+"</html>")
	return err
}

func (m mockPageWriter) WriteEmbed(w io.Writer, svg []byte, _ describe.Description, _ entity.ChartStyle) error {
	_, err := io.WriteString(w, "<figure>"+string(svg)+"</figure>")
	return err
}

func fixedSeries(n int) usecase.SeriesResult {
	s := entity.Series{Symbol: "Tesla", Timeframe: entity.Monthly}
	for i := range n {
		s.Candles = append(s.Candles, entity.Candle{
			Time: time.Date(2023, time.Month(i+1), 28, 0, 0, 0, 0, time.UTC),
			Open: 200, High: 210, Low: 190, Close: 205, Volume: 1000,
		})
	}
	return usecase.SeriesResult{Series: s, Seed: 7}
}

func TestExportUsecase_Export(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		format          string
		wantContentType string
		wantFilename    string
		wantBody        string
	}{
		{name: "default is svg", format: "", wantContentType: "image/svg+xml", wantFilename: "tesla_monthly.svg", wantBody: "<svg/>"},
		{name: "png", format: "PNG", wantContentType: "image/png", wantFilename: "tesla_monthly.png", wantBody: "<svg/>"},
		{name: "csv", format: "csv", wantContentType: "text/csv; charset=utf-8", wantFilename: "tesla_monthly.csv", wantBody: "Date,Open,High,Low,Close,Volume\n"},
		{name: "html", format: "html", wantContentType: "text/html; charset=utf-8", wantFilename: "tesla_monthly.html", wantBody: "<html><svg/>Tesla Stock Price - Candlestick Chart - Monthly View</html>"},
		{name: "embed", format: "embed", wantContentType: "text/html; charset=utf-8", wantFilename: "tesla_monthly.html", wantBody: "<figure><svg/></figure>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &mockSeriesSource{GetSeriesFunc: func(context.Context, usecase.SeriesQuery) (usecase.SeriesResult, error) {
				return fixedSeries(3), nil
			}}
			chart := &mockChartRenderer{}
			uc := usecase.NewExportUsecase(src, chart, mockTableWriter{}, mockPageWriter{})

			res, err := uc.Export(context.Background(), usecase.ExportRequest{Format: tt.format, Theme: "dark", Palette: "green"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantContentType, res.ContentType)
			assert.Equal(t, tt.wantFilename, res.Filename)
			assert.Equal(t, tt.wantBody, string(res.Body))
			assert.Equal(t, int64(7), res.Seed)
			if len(chart.formats) > 0 {
				assert.Equal(t, entity.ChartStyle{Theme: entity.Dark, Palette: "Green"}, chart.style)
			}
		})
	}
}

func TestExportUsecase_Export_Errors(t *testing.T) {
	t.Parallel()

	errGen := errors.New("boom")
	errPage := errors.New("template failure")

	tests := []struct {
		name    string
		req     usecase.ExportRequest
		bars    int
		srcErr  error
		pageErr error
		wantErr error
	}{
		{name: "unknown format", req: usecase.ExportRequest{Format: "pdf"}, bars: 3, wantErr: usecase.ErrUnsupportedFormat},
		{name: "unknown theme", req: usecase.ExportRequest{Theme: "sepia"}, bars: 3, wantErr: entity.ErrInvalidTheme},
		{name: "unknown palette", req: usecase.ExportRequest{Palette: "Pink"}, bars: 3, wantErr: entity.ErrInvalidPalette},
		{name: "one bar svg", req: usecase.ExportRequest{Format: "svg"}, bars: 1, wantErr: usecase.ErrNotEnoughData},
		{name: "empty html", req: usecase.ExportRequest{Format: "html"}, bars: 0, wantErr: usecase.ErrNotEnoughData},
		{name: "source error", req: usecase.ExportRequest{}, srcErr: errGen, wantErr: errGen},
		{name: "page error", req: usecase.ExportRequest{Format: "html"}, bars: 3, pageErr: errPage, wantErr: errPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &mockSeriesSource{GetSeriesFunc: func(context.Context, usecase.SeriesQuery) (usecase.SeriesResult, error) {
				if tt.srcErr != nil {
					return usecase.SeriesResult{}, tt.srcErr
				}
				return fixedSeries(tt.bars), nil
			}}
			uc := usecase.NewExportUsecase(src, &mockChartRenderer{}, mockTableWriter{}, mockPageWriter{err: tt.pageErr})

			_, err := uc.Export(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExportUsecase_CSVAllowsEmpty(t *testing.T) {
	t.Parallel()

	src := &mockSeriesSource{GetSeriesFunc: func(context.Context, usecase.SeriesQuery) (usecase.SeriesResult, error) {
		return fixedSeries(0), nil
	}}
	res, err := usecase.NewExportUsecase(src, &mockChartRenderer{}, mockTableWriter{}, mockPageWriter{}).
		Export(context.Background(), usecase.ExportRequest{Format: "csv"})

	require.NoError(t, err)
	assert.Equal(t, "Date,Open,High,Low,Close,Volume\n", string(res.Body))
}
