// Package histogram implements a discrete Bayes filter over the cells of a toroidal color world.
// Beliefs are stored in gonum dense matrices: every update allocates a new matrix
// and never modifies the matrix it was given.
package histogram

import (
	"fmt"
	"math"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/matrix"
	"github.com/omarmustafa130/go-histogram/noise"
	"gonum.org/v1/gonum/mat"
)

// Uniform returns a rows x cols belief grid with equal probability in every cell.
// It returns error if rows or cols is not positive.
func Uniform(rows, cols int) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: [%d x %d]", filter.ErrInvalidDimension, rows, cols)
	}

	p := 1.0 / float64(rows*cols)
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = p
	}

	return mat.NewDense(rows, cols, data), nil
}

// InitializeBeliefs returns uniform beliefs over the cells of world w.
// It returns error if w is nil or has no cells.
func InitializeBeliefs(w filter.World) (*mat.Dense, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil world", filter.ErrInvalidDimension)
	}

	return Uniform(w.Dims())
}

// Sense updates prior beliefs given the observed color and returns the posterior.
// Cells painted with color are weighted by pHit, all other cells by pMiss;
// the weighted grid is then normalized with matrix.Normalize.
// See SenseWith for the list of errors.
func Sense(color rune, w filter.World, prior mat.Matrix, pHit, pMiss float64) (*mat.Dense, error) {
	return SenseWith(matrix.SumNormalizer{}, color, w, prior, pHit, pMiss)
}

// SenseWith works like Sense but normalizes the posterior with n.
// It returns error if:
// * world or prior have no cells or their dimensions differ
// * pHit or pMiss is negative or not finite
// * the weighted grid can not be normalized
func SenseWith(n filter.Normalizer, color rune, w filter.World, prior mat.Matrix, pHit, pMiss float64) (*mat.Dense, error) {
	if err := checkWeight("pHit", pHit); err != nil {
		return nil, err
	}

	if err := checkWeight("pMiss", pMiss); err != nil {
		return nil, err
	}

	if w == nil {
		return nil, fmt.Errorf("%w: nil world", filter.ErrInvalidDimension)
	}

	wr, wc := w.Dims()
	if wr <= 0 || wc <= 0 {
		return nil, fmt.Errorf("%w: world [%d x %d]", filter.ErrInvalidDimension, wr, wc)
	}

	rows, cols, err := matrix.Dims(prior)
	if err != nil {
		return nil, err
	}

	if rows != wr || cols != wc {
		return nil, fmt.Errorf("%w: world [%d x %d], beliefs [%d x %d]", filter.ErrDimensionMismatch, wr, wc, rows, cols)
	}

	post := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			weight := pMiss
			if w.At(r, c) == color {
				weight = pHit
			}
			post.Set(r, c, prior.At(r, c)*weight)
		}
	}

	if n == nil {
		n = matrix.SumNormalizer{}
	}

	out, err := n.Normalize(post)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize posterior: %w", err)
	}

	return out, nil
}

// Move shifts prior beliefs by dy rows and dx columns, wrapping around the world edges,
// and blurs the result by blur amount with noise.Kernel.
// See MoveWith for the list of errors.
func Move(dy, dx int, prior mat.Matrix, blur float64) (*mat.Dense, error) {
	return MoveWith(&noise.Kernel{}, dy, dx, prior, blur)
}

// MoveWith works like Move but blurs the shifted beliefs with b.
// Any displacement is valid: it is applied modulo the grid dimensions.
// It returns error if prior has no cells, if blur is negative or NaN or if b fails to blur the grid.
func MoveWith(b filter.Blurrer, dy, dx int, prior mat.Matrix, blur float64) (*mat.Dense, error) {
	if math.IsNaN(blur) || blur < 0 {
		return nil, fmt.Errorf("%w: blur amount %v", filter.ErrInvalidParameter, blur)
	}

	shifted, err := matrix.Shift(prior, dy, dx)
	if err != nil {
		return nil, err
	}

	if b == nil {
		b = &noise.Kernel{}
	}

	out, err := b.Blur(shifted, blur)
	if err != nil {
		return nil, fmt.Errorf("failed to blur beliefs: %w", err)
	}

	return out, nil
}

func checkWeight(name string, p float64) error {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("%w: %s %v", filter.ErrInvalidParameter, name, p)
	}

	return nil
}
