package noise

import (
	"fmt"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/matrix"
	"gonum.org/v1/gonum/mat"
)

// Kernel blurs grids with a 3x3 window wrapping around the grid edges.
// Blurring by amount a keeps 1-a of the mass in the cell, moves a/6 into
// each of the four edge-adjacent cells and a/12 into each of the four diagonal cells.
type Kernel struct {
	// Normalizer normalizes the blurred grid; SumNormalizer is used if nil
	Normalizer filter.Normalizer
}

// NewKernel creates new Kernel blur which normalizes its output with n and returns it.
func NewKernel(n filter.Normalizer) *Kernel {
	return &Kernel{Normalizer: n}
}

// Window returns the 3x3 blur window for blur amount a
func Window(a float64) *mat.Dense {
	center := 1.0 - a
	corner := a / 12.0
	adjacent := a / 6.0

	return mat.NewDense(3, 3, []float64{
		corner, adjacent, corner,
		adjacent, center, adjacent,
		corner, adjacent, corner,
	})
}

// Blur blurs grid g by amount a and returns the normalized result.
// It returns error if a is outside [0, 1] or if g is not a valid probability grid.
func (k *Kernel) Blur(g mat.Matrix, a float64) (*mat.Dense, error) {
	if err := checkAmount(a); err != nil {
		return nil, err
	}

	if err := matrix.Validate(g); err != nil {
		return nil, err
	}

	if a == 0 {
		return mat.DenseCopyOf(g), nil
	}

	rows, cols := g.Dims()
	w := Window(a)
	out := mat.NewDense(rows, cols, nil)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := g.At(r, c)
			if v == 0 {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					newR := matrix.Mod(r+dy, rows)
					newC := matrix.Mod(c+dx, cols)
					out.Set(newR, newC, out.At(newR, newC)+w.At(dy+1, dx+1)*v)
				}
			}
		}
	}

	res, err := normalizer(k.Normalizer).Normalize(out)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize blurred grid: %w", err)
	}

	return res, nil
}
