package noise

import (
	"github.com/omarmustafa130/go-histogram/matrix"
	"gonum.org/v1/gonum/mat"
)

// None is noiseless motion: it never blurs.
type None struct{}

// NewNone creates new None blur and returns it
func NewNone() *None {
	return &None{}
}

// Blur ignores the amount and returns a copy of g.
// It returns error if g is not a valid probability grid.
func (n *None) Blur(g mat.Matrix, _ float64) (*mat.Dense, error) {
	if err := matrix.Validate(g); err != nil {
		return nil, err
	}

	return mat.DenseCopyOf(g), nil
}
