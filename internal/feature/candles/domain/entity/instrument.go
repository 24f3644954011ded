package entity

// InstrumentProfile holds the per-instrument parameters consumed once at the
// start of series generation.
type InstrumentProfile struct {
	Name          string
	StartingPrice float64
	// Volatility is relative to the current price, not absolute.
	Volatility float64
}
