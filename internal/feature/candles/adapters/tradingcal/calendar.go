// Package tradingcal restricts generated bars to an exchange's business days.
package tradingcal

import (
	"fmt"
	"strings"
	"time"

	"github.com/scmhub/calendar"

	"candle_dashboard/internal/feature/candles/domain/series"
)

// TradingCalendar is a series.DayFilter backed by an exchange calendar.
type TradingCalendar struct {
	mic string
	cal *calendar.Calendar
}

var _ series.DayFilter = (*TradingCalendar)(nil)

// New loads the calendar for the exchange identified by mic (ISO 10383,
// e.g. "xnys", "xtks").
func New(mic string) (*TradingCalendar, error) {
	mic = strings.ToLower(strings.TrimSpace(mic))
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		return nil, fmt.Errorf("calendar: unknown exchange %q", mic)
	}
	return &TradingCalendar{mic: mic, cal: cal}, nil
}

// MIC returns the exchange code the calendar was loaded for.
func (tc *TradingCalendar) MIC() string {
	return tc.mic
}

// IsTradingDay reports whether the exchange is open on the calendar date of
// day. The date is re-anchored at noon in the exchange's time zone so that a
// UTC midnight never slides onto the previous local day.
func (tc *TradingCalendar) IsTradingDay(day time.Time) bool {
	y, m, d := day.Date()
	loc := tc.cal.Loc
	if loc == nil {
		loc = time.UTC
	}
	return tc.cal.IsBusinessDay(time.Date(y, m, d, 12, 0, 0, 0, loc))
}
