package estimate

import (
	"fmt"

	"github.com/milosgajdos/matrix"
	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	hmatrix "github.com/omarmustafa130/go-histogram/matrix"
	"github.com/omarmustafa130/go-histogram/rand"
)

// Base is maximum a posteriori estimate of the robot position.
// It implements filter.Estimate.
type Base struct {
	// row and col locate the most likely cell
	row int
	col int
	// prob is belief held in the most likely cell
	prob float64
	// entropy is entropy of the whole belief grid in nats
	entropy float64
	// rowMarg and colMarg are marginal beliefs of the robot row and column
	rowMarg []float64
	colMarg []float64
}

// New returns estimate of the most likely cell in belief grid b.
// Ties are broken in favour of the first cell in row-major order.
// It returns error if b is not a valid probability grid.
func New(b mat.Matrix) (*Base, error) {
	err := hmatrix.Validate(b)
	if err != nil {
		return nil, err
	}

	rows, cols := b.Dims()
	p := make([]float64, 0, rows*cols)
	best := &Base{prob: -1}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := b.At(r, c)
			if v > best.prob {
				best.row, best.col, best.prob = r, c, v
			}
			p = append(p, v)
		}
	}
	best.entropy = stat.Entropy(p)

	best.rowMarg, best.colMarg, err = hmatrix.Marginals(b)
	if err != nil {
		return nil, err
	}

	return best, nil
}

// Cell returns row and column of the estimated cell
func (b *Base) Cell() (int, int) {
	return b.row, b.col
}

// Prob returns belief held in the estimated cell
func (b *Base) Prob() float64 {
	return b.prob
}

// Entropy returns entropy of the belief grid in nats
func (b *Base) Entropy() float64 {
	return b.entropy
}

// RowMarginal returns a copy of the belief summed over every grid row
func (b *Base) RowMarginal() []float64 {
	m := make([]float64, len(b.rowMarg))
	copy(m, b.rowMarg)

	return m
}

// ColMarginal returns a copy of the belief summed over every grid column
func (b *Base) ColMarginal() []float64 {
	m := make([]float64, len(b.colMarg))
	copy(m, b.colMarg)

	return m
}

// String implements the Stringer interface.
func (b *Base) String() string {
	return fmt.Sprintf("Base{Cell=[%d, %d] Prob=%.4f Entropy=%.4f}", b.row, b.col, b.prob, b.entropy)
}

// Spread draws n cells from belief grid b and returns the 2x2 covariance of their row and column indices.
// Cell indices are treated as plain coordinates: wraparound is ignored, so the result
// is only meaningful as a measure of how concentrated the beliefs are.
// Random numbers are drawn from src; the global source is used if src is nil.
// It returns error if n is smaller than 2 or if b is not a valid probability grid.
func Spread(b mat.Matrix, n int, src exprand.Source) (mat.Symmetric, error) {
	if n < 2 {
		return nil, fmt.Errorf("invalid sample count: %d", n)
	}

	if err := hmatrix.Validate(b); err != nil {
		return nil, err
	}

	rows, cols := b.Dims()
	w := make([]float64, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			w = append(w, b.At(r, c))
		}
	}

	indices, err := rand.RouletteDrawN(w, n, src)
	if err != nil {
		return nil, fmt.Errorf("failed to sample cells: %w", err)
	}

	// samples are stored in columns: row index in the first row, column index in the second
	x := mat.NewDense(2, n, nil)
	for i, idx := range indices {
		x.Set(0, i, float64(idx/cols))
		x.Set(1, i, float64(idx%cols))
	}

	cov, err := matrix.Cov(x, "cols")
	if err != nil {
		return nil, fmt.Errorf("failed to calculate covariance matrix: %v", err)
	}

	return cov, nil
}
