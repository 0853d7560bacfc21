package estimate

import (
	"errors"
	"math"
	"testing"

	exprand "golang.org/x/exp/rand"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	assert := assert.New(t)

	b := mat.NewDense(2, 3, []float64{0.1, 0.1, 0.4, 0.2, 0.1, 0.1})
	est, err := New(b)
	assert.NotNil(est)
	assert.NoError(err)

	var e filter.Estimate = est
	r, c := e.Cell()
	assert.Equal(0, r)
	assert.Equal(2, c)
	assert.InDelta(0.4, e.Prob(), 1e-12)
	assert.True(e.Entropy() > 0)
	assert.Contains(est.String(), "Cell=[0, 2]")
	assert.InDeltaSlice([]float64{0.6, 0.4}, est.RowMarginal(), 1e-12)
	assert.InDeltaSlice([]float64{0.3, 0.2, 0.5}, est.ColMarginal(), 1e-12)

	// marginals are copies
	est.RowMarginal()[0] = 0
	assert.InDelta(0.6, est.RowMarginal()[0], 1e-12)

	est, err = New(&mat.Dense{})
	assert.Nil(est)
	assert.True(errors.Is(err, filter.ErrInvalidDimension))

	est, err = New(mat.NewDense(1, 2, []float64{math.NaN(), 1}))
	assert.Nil(est)
	assert.True(errors.Is(err, filter.ErrDegenerateDistribution))
}

func TestNewTiesAndEntropy(t *testing.T) {
	assert := assert.New(t)

	// uniform beliefs: first cell wins, entropy is maximal
	est, err := New(mat.NewDense(2, 2, []float64{0.25, 0.25, 0.25, 0.25}))
	assert.NoError(err)
	r, c := est.Cell()
	assert.Equal(0, r)
	assert.Equal(0, c)
	assert.InDelta(math.Log(4), est.Entropy(), 1e-12)

	// localized beliefs carry no uncertainty
	est, err = New(mat.NewDense(2, 2, []float64{0, 0, 0, 1}))
	assert.NoError(err)
	r, c = est.Cell()
	assert.Equal(1, r)
	assert.Equal(1, c)
	assert.InDelta(0.0, est.Entropy(), 1e-12)
}

func TestSpread(t *testing.T) {
	assert := assert.New(t)

	src := exprand.NewSource(1)

	// all mass in a single cell: zero covariance
	b := mat.NewDense(3, 3, nil)
	b.Set(1, 2, 1.0)
	cov, err := Spread(b, 50, src)
	assert.NoError(err)
	assert.Equal(2, cov.SymmetricDim())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(0.0, cov.At(i, j), 1e-12)
		}
	}

	// mass split along a row: variance only in columns
	b = mat.NewDense(3, 3, nil)
	b.Set(0, 0, 0.5)
	b.Set(0, 2, 0.5)
	cov, err = Spread(b, 200, src)
	assert.NoError(err)
	assert.InDelta(0.0, cov.At(0, 0), 1e-12)
	assert.True(cov.At(1, 1) > 0)

	cov, err = Spread(b, 1, src)
	assert.Nil(cov)
	assert.Error(err)

	cov, err = Spread(mat.NewDense(2, 2, nil), 10, src)
	assert.Nil(cov)
	assert.True(errors.Is(err, filter.ErrDegenerateDistribution))
}
