package entity

import (
	"errors"
	"strings"
)

// ErrInvalidTimeframe is returned when a timeframe string cannot be parsed.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// Timeframe is the granularity of a Series.
type Timeframe string

const (
	Daily   Timeframe = "Daily"
	Monthly Timeframe = "Monthly"
	Yearly  Timeframe = "Yearly"
)

// Timeframes lists every supported timeframe from finest to coarsest.
var Timeframes = []Timeframe{Daily, Monthly, Yearly}

// ParseTimeframe accepts the canonical names case-insensitively and the
// interval aliases used by market data APIs ("1day", "1month", "1year").
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "1day", "d":
		return Daily, nil
	case "monthly", "month", "1month", "m":
		return Monthly, nil
	case "yearly", "year", "1year", "y":
		return Yearly, nil
	}
	return "", ErrInvalidTimeframe
}

func (tf Timeframe) String() string {
	return string(tf)
}
