package csvexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

func TestWriter_WriteSeries(t *testing.T) {
	t.Parallel()

	s := entity.Series{Symbol: "Tesla", Timeframe: entity.Daily, Candles: []entity.Candle{
		{Time: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Open: 200, High: 204.5, Low: 198.25, Close: 203.1, Volume: 1234567},
		{Time: time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), Open: 203.1, High: 205, Low: 201, Close: 202, Volume: 987654},
	}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteSeries(&buf, s))

	want := "Date,Open,High,Low,Close,Volume\n" +
		"2023-01-02,200,204.5,198.25,203.1,1234567\n" +
		"2023-01-03,203.1,205,201,202,987654\n"
	assert.Equal(t, want, buf.String())
}

func TestWriter_EmptySeries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, NewWriter().WriteSeries(&buf, entity.Series{}))
	assert.Equal(t, "Date,Open,High,Low,Close,Volume\n", buf.String())
}
