// Package dto defines data transfer objects for the instruments HTTP API.
package dto

// InstrumentItem represents an instrument in the API response.
type InstrumentItem struct {
	Name          string  `json:"name"`
	StartingPrice float64 `json:"starting_price"`
	Volatility    float64 `json:"volatility"`
	Default       bool    `json:"default"`
}
