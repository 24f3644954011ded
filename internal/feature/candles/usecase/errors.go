package usecase

import "errors"

var (
	// ErrInvalidDate is returned when a start or end date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidSeed is returned when a seed is neither an integer nor "random".
	ErrInvalidSeed = errors.New("invalid seed")

	// ErrUnsupportedFormat is returned for an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrNotEnoughData is returned when a chart is requested for fewer than two bars.
	ErrNotEnoughData = errors.New("not enough bars to draw a chart")
)
