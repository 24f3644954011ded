// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle represents one OHLCV (Open, High, Low, Close, Volume) bar
// for an instrument over a single period.
type Candle struct {
	Symbol   string    // Instrument name (e.g., "Tesla", "Apple")
	Interval string    // Timeframe of the bar ("Daily", "Monthly", "Yearly")
	Time     time.Time // Date of the bar; period end for aggregated bars
	Open     float64   // Opening price
	High     float64   // Highest price during this period
	Low      float64   // Lowest price during this period
	Close    float64   // Closing price
	Volume   int64     // Trading volume
}

// Series is an ordered run of candles sharing one timeframe.
// Dates are strictly increasing.
type Series struct {
	Symbol    string
	Timeframe Timeframe
	Candles   []Candle
}

// Len returns the number of bars in the series.
func (s Series) Len() int {
	return len(s.Candles)
}

// Empty reports whether the series has no bars.
func (s Series) Empty() bool {
	return len(s.Candles) == 0
}
