package noise

import (
	"fmt"
	"math"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian blurs grids with a separable Gaussian kernel wrapping around the grid edges.
// Blurring by amount a mixes 1-a of the original grid with a of the fully blurred one.
type Gaussian struct {
	// sigma is standard deviation of the kernel in cells
	sigma float64
	// taps stores kernel weights for offsets -radius..radius
	taps []float64
	// norm normalizes the blurred grid
	norm filter.Normalizer
}

// NewGaussian creates new Gaussian blur with kernel standard deviation sigma and returns it.
// The kernel is truncated at three standard deviations. Blurred grids are normalized by n
// or by SumNormalizer if n is nil.
// It returns error if sigma is not positive.
func NewGaussian(sigma float64, n filter.Normalizer) (*Gaussian, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: gaussian sigma %v", filter.ErrInvalidParameter, sigma)
	}

	radius := int(math.Ceil(3 * sigma))
	dist := distuv.Normal{Mu: 0, Sigma: sigma}

	taps := make([]float64, 2*radius+1)
	for i := range taps {
		taps[i] = dist.Prob(float64(i - radius))
	}
	floats.Scale(1/floats.Sum(taps), taps)

	return &Gaussian{
		sigma: sigma,
		taps:  taps,
		norm:  normalizer(n),
	}, nil
}

// Sigma returns kernel standard deviation
func (g *Gaussian) Sigma() float64 {
	return g.sigma
}

// Taps returns a copy of kernel weights
func (g *Gaussian) Taps() []float64 {
	taps := make([]float64, len(g.taps))
	copy(taps, g.taps)

	return taps
}

// Blur blurs grid m by amount a and returns the normalized result.
// It returns error if a is outside [0, 1] or if m is not a valid probability grid.
func (g *Gaussian) Blur(m mat.Matrix, a float64) (*mat.Dense, error) {
	if err := checkAmount(a); err != nil {
		return nil, err
	}

	if err := matrix.Validate(m); err != nil {
		return nil, err
	}

	if a == 0 {
		return mat.DenseCopyOf(m), nil
	}

	rows, cols := m.Dims()
	radius := len(g.taps) / 2

	// horizontal pass
	h := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := m.At(r, c)
			if v == 0 {
				continue
			}
			for i, w := range g.taps {
				newC := matrix.Mod(c+i-radius, cols)
				h.Set(r, newC, h.At(r, newC)+w*v)
			}
		}
	}

	// vertical pass
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := h.At(r, c)
			if v == 0 {
				continue
			}
			for i, w := range g.taps {
				newR := matrix.Mod(r+i-radius, rows)
				out.Set(newR, c, out.At(newR, c)+w*v)
			}
		}
	}

	out.Scale(a, out)
	keep := mat.DenseCopyOf(m)
	keep.Scale(1-a, keep)
	out.Add(out, keep)

	res, err := g.norm.Normalize(out)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize blurred grid: %w", err)
	}

	return res, nil
}

// String implements the Stringer interface.
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian{Sigma=%v Taps=%v}", g.sigma, g.taps)
}
