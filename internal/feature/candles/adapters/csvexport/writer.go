// Package csvexport writes candle series as CSV.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

var header = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Writer writes the Date,Open,High,Low,Close,Volume table.
type Writer struct{}

// NewWriter returns a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteSeries writes a header row followed by one row per bar.
func (Writer) WriteSeries(w io.Writer, s entity.Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range s.Candles {
		record := []string{
			c.Time.Format("2006-01-02"),
			strconv.FormatFloat(c.Open, 'f', -1, 64),
			strconv.FormatFloat(c.High, 'f', -1, 64),
			strconv.FormatFloat(c.Low, 'f', -1, 64),
			strconv.FormatFloat(c.Close, 'f', -1, 64),
			strconv.FormatInt(c.Volume, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
