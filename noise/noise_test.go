package noise

import (
	"errors"
	"math"
	"testing"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var errNorm = errors.New("normalizer failure")

type failingNormalizer struct{}

func (failingNormalizer) Normalize(mat.Matrix) (*mat.Dense, error) {
	return nil, errNorm
}

func peak(rows, cols, r, c int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	m.Set(r, c, 1.0)

	return m
}

func TestWindow(t *testing.T) {
	assert := assert.New(t)

	w := Window(0.12)
	assert.InDelta(1.0, mat.Sum(w), 1e-12)
	assert.InDelta(0.88, w.At(1, 1), 1e-12)
	assert.InDelta(0.02, w.At(0, 1), 1e-12)
	assert.InDelta(0.01, w.At(2, 2), 1e-12)
}

func TestKernelBlur(t *testing.T) {
	assert := assert.New(t)

	var b filter.Blurrer = NewKernel(nil)

	g := peak(3, 3, 1, 1)
	out, err := b.Blur(g, 0.12)
	assert.NoError(err)
	assert.InDelta(1.0, mat.Sum(out), 1e-12)
	assert.InDelta(0.88, out.At(1, 1), 1e-12)
	for _, cell := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}} {
		assert.InDelta(0.02, out.At(cell[0], cell[1]), 1e-12)
	}
	for _, cell := range [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}} {
		assert.InDelta(0.01, out.At(cell[0], cell[1]), 1e-12)
	}
	// input is untouched
	assert.Equal(1.0, g.At(1, 1))
	assert.Equal(0.0, g.At(0, 0))
}

func TestKernelBlurWraps(t *testing.T) {
	assert := assert.New(t)

	k := &Kernel{}
	out, err := k.Blur(peak(4, 4, 0, 0), 0.6)
	assert.NoError(err)
	assert.InDelta(1.0, mat.Sum(out), 1e-12)
	assert.InDelta(0.1, out.At(3, 0), 1e-12)
	assert.InDelta(0.1, out.At(0, 3), 1e-12)
	assert.InDelta(0.05, out.At(3, 3), 1e-12)
	assert.InDelta(0.0, out.At(2, 2), 1e-12)

	// on a single cell all mass folds back into the cell
	out, err = k.Blur(peak(1, 1, 0, 0), 1.0)
	assert.NoError(err)
	assert.InDelta(1.0, out.At(0, 0), 1e-12)
}

func TestKernelBlurIdentity(t *testing.T) {
	assert := assert.New(t)

	g := mat.NewDense(2, 3, []float64{0.1, 0.2, 0.3, 0.05, 0.15, 0.2})
	out, err := NewKernel(nil).Blur(g, 0)
	assert.NoError(err)
	assert.Equal(g.RawMatrix().Data, out.RawMatrix().Data)
	assert.NotSame(g, out)
}

func TestKernelBlurErrors(t *testing.T) {
	assert := assert.New(t)

	k := NewKernel(nil)
	for _, a := range []float64{-0.1, 1.1, math.NaN()} {
		out, err := k.Blur(peak(3, 3, 1, 1), a)
		assert.Nil(out)
		assert.True(errors.Is(err, filter.ErrInvalidParameter), "amount %v", a)
	}

	out, err := k.Blur(&mat.Dense{}, 0.1)
	assert.Nil(out)
	assert.True(errors.Is(err, filter.ErrInvalidDimension))

	out, err = k.Blur(mat.NewDense(1, 2, []float64{-1, 2}), 0.1)
	assert.Nil(out)
	assert.True(errors.Is(err, filter.ErrDegenerateDistribution))

	out, err = NewKernel(failingNormalizer{}).Blur(peak(3, 3, 1, 1), 0.1)
	assert.Nil(out)
	assert.True(errors.Is(err, errNorm))
}

func TestNewGaussian(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(1.0, nil)
	assert.NoError(err)
	assert.Equal(1.0, g.Sigma())

	taps := g.Taps()
	assert.Len(taps, 7)
	assert.InDelta(1.0, floats.Sum(taps), 1e-12)
	for i := range taps {
		assert.InDelta(taps[i], taps[len(taps)-1-i], 1e-15)
	}
	assert.True(taps[3] > taps[2])
	assert.Contains(g.String(), "Sigma=1")

	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		g, err := NewGaussian(sigma, nil)
		assert.Nil(g)
		assert.True(errors.Is(err, filter.ErrInvalidParameter), "sigma %v", sigma)
	}
}

func TestGaussianBlur(t *testing.T) {
	assert := assert.New(t)

	g, err := NewGaussian(0.8, nil)
	assert.NoError(err)

	in := peak(9, 9, 4, 4)
	out, err := g.Blur(in, 0.5)
	assert.NoError(err)
	assert.InDelta(1.0, mat.Sum(out), 1e-12)
	assert.True(out.At(4, 4) > 0.5)
	assert.True(out.At(4, 4) < 1.0)
	// mass spreads symmetrically
	assert.InDelta(out.At(3, 4), out.At(5, 4), 1e-12)
	assert.InDelta(out.At(4, 3), out.At(4, 5), 1e-12)
	assert.InDelta(out.At(3, 4), out.At(4, 3), 1e-12)

	// zero amount is identity
	out, err = g.Blur(in, 0)
	assert.NoError(err)
	assert.Equal(in.RawMatrix().Data, out.RawMatrix().Data)

	// kernel wider than the grid still conserves mass
	out, err = g.Blur(peak(2, 1, 0, 0), 1.0)
	assert.NoError(err)
	assert.InDelta(1.0, mat.Sum(out), 1e-12)

	out, err = g.Blur(in, 2.0)
	assert.Nil(out)
	assert.True(errors.Is(err, filter.ErrInvalidParameter))

	failing, err := NewGaussian(1.0, failingNormalizer{})
	assert.NoError(err)
	out, err = failing.Blur(in, 0.5)
	assert.Nil(out)
	assert.True(errors.Is(err, errNorm))
}

func TestNone(t *testing.T) {
	assert := assert.New(t)

	var b filter.Blurrer = NewNone()
	in := peak(2, 2, 0, 1)
	out, err := b.Blur(in, 0.9)
	assert.NoError(err)
	assert.Equal(in.RawMatrix().Data, out.RawMatrix().Data)

	out, err = b.Blur(nil, 0.1)
	assert.Nil(out)
	assert.True(errors.Is(err, filter.ErrInvalidDimension))
}
