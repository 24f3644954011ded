package series

import (
	"time"

	"candle_dashboard/internal/feature/candles/domain/entity"
)

// DefaultWindow returns the date range the dashboard shows when none is
// given: one year for Daily and Monthly, six years for Yearly.
func DefaultWindow(tf entity.Timeframe) (start, end time.Time) {
	end = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	if tf == entity.Yearly {
		return time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), end
	}
	return time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), end
}
