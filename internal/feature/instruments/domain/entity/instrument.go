// Package entity defines the domain models for the instruments feature.
package entity

// Instrument is a tradable name the dashboard can chart, with the
// parameters its synthetic series is drawn from.
type Instrument struct {
	Name          string
	StartingPrice float64
	Volatility    float64
	// IsDefault marks the profile used for unknown names.
	IsDefault bool
	SortKey   int
}
