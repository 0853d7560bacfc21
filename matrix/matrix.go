package matrix

import (
	"fmt"
	"math"

	filter "github.com/omarmustafa130/go-histogram"
	"gonum.org/v1/gonum/mat"
)

// Marginals returns row and column sums of m.
// For a belief grid these are the marginal distributions of the robot row and column.
// It returns error if m has no rows or no columns.
func Marginals(m mat.Matrix) ([]float64, []float64, error) {
	rows, cols, err := Dims(m)
	if err != nil {
		return nil, nil, err
	}

	rowSums := make([]float64, rows)
	colSums := make([]float64, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			rowSums[r] += v
			colSums[c] += v
		}
	}

	return rowSums, colSums, nil
}

// Mod returns x modulo n mapped into [0, n) regardless of the sign of x.
// It panics if n is zero.
func Mod(x, n int) int {
	return ((x % n) + n) % n
}

// Dims returns dimensions of m.
// It returns error if m is nil or if it has no rows or no columns.
func Dims(m mat.Matrix) (int, int, error) {
	if m == nil {
		return 0, 0, fmt.Errorf("%w: nil grid", filter.ErrInvalidDimension)
	}

	rows, cols := m.Dims()
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("%w: [%d x %d]", filter.ErrInvalidDimension, rows, cols)
	}

	return rows, cols, nil
}

// Validate checks that every entry of m is a finite non-negative number.
func Validate(m mat.Matrix) error {
	rows, cols, err := Dims(m)
	if err != nil {
		return err
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: entry [%d, %d] is %v", filter.ErrDegenerateDistribution, r, c, v)
			}
		}
	}

	return nil
}

// Normalize scales the entries of m by the reciprocal of their sum and returns the result in a new matrix.
// It returns error if m contains negative or non-finite entries or if its entries sum up to zero.
func Normalize(m mat.Matrix) (*mat.Dense, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}

	sum := mat.Sum(m)
	if sum <= 0 || math.IsInf(sum, 0) {
		return nil, fmt.Errorf("%w: grid sums up to %v", filter.ErrDegenerateDistribution, sum)
	}

	// divide rather than scale: 1/sum overflows when sum is subnormal
	out := &mat.Dense{}
	out.Apply(func(_, _ int, v float64) float64 { return v / sum }, m)

	if err := Validate(out); err != nil {
		return nil, fmt.Errorf("normalized grid: %w", err)
	}

	return out, nil
}

// SumNormalizer implements filter.Normalizer by rescaling grid entries to sum up to 1
type SumNormalizer struct{}

// Normalize normalizes m using Normalize
func (SumNormalizer) Normalize(m mat.Matrix) (*mat.Dense, error) {
	return Normalize(m)
}

// Shift moves every entry of m by dy rows and dx columns, wrapping around the edges.
// The result is stored in a newly allocated matrix; m is left untouched.
// It returns error if m has no rows or no columns.
func Shift(m mat.Matrix, dy, dx int) (*mat.Dense, error) {
	rows, cols, err := Dims(m)
	if err != nil {
		return nil, err
	}

	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		newR := Mod(r+dy, rows)
		for c := 0; c < cols; c++ {
			out.Set(newR, Mod(c+dx, cols), m.At(r, c))
		}
	}

	return out, nil
}
