package filter

import "errors"

var (
	// ErrInvalidDimension is returned when a grid has no rows, no columns or ragged rows
	ErrInvalidDimension = errors.New("invalid dimension")
	// ErrDimensionMismatch is returned when the world and belief grid dimensions differ
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDegenerateDistribution is returned when a grid can not be normalized
	ErrDegenerateDistribution = errors.New("degenerate distribution")
	// ErrInvalidParameter is returned when a sensor or motion parameter is out of range
	ErrInvalidParameter = errors.New("invalid parameter")
)
