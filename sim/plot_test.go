package sim

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

func TestNewBeliefPlot(t *testing.T) {
	assert := assert.New(t)

	b := mat.NewDense(2, 3, []float64{0.1, 0.2, 0.1, 0.3, 0.2, 0.1})
	plt, err := NewBeliefPlot(b, Pose{Row: 1, Col: 0})
	assert.NotNil(plt)
	assert.NoError(err)
	assert.NoError(plt.Save(4*vg.Inch, 4*vg.Inch, filepath.Join(t.TempDir(), "beliefs.png")))

	plt, err = NewBeliefPlot(b, Pose{Row: 2, Col: 0})
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewBeliefPlot(&mat.Dense{}, Pose{})
	assert.Nil(plt)
	assert.Error(err)
}

func TestBeliefGrid(t *testing.T) {
	assert := assert.New(t)

	g := beliefGrid{m: mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})}
	c, r := g.Dims()
	assert.Equal(3, c)
	assert.Equal(2, r)
	// bottom plot row is the last grid row
	assert.Equal(4.0, g.Z(0, 0))
	assert.Equal(3.0, g.Z(2, 1))
	assert.Equal(2.0, g.X(2))
	assert.Equal(1.0, g.Y(1))
}

func TestNewTracePlot(t *testing.T) {
	assert := assert.New(t)

	recs := []Record{
		{Step: 1, Truth: Pose{0, 0}, Estimate: Pose{1, 1}, Prob: 0.2, TruthBelief: 0.1},
		{Step: 2, Truth: Pose{0, 1}, Estimate: Pose{0, 1}, Prob: 0.5, TruthBelief: 0.5},
		{Step: 3, Truth: Pose{0, 2}, Estimate: Pose{0, 2}, Prob: 0.7, TruthBelief: 0.7},
	}

	plt, err := NewTracePlot(recs)
	assert.NotNil(plt)
	assert.NoError(err)
	assert.NoError(plt.Save(4*vg.Inch, 4*vg.Inch, filepath.Join(t.TempDir(), "trace.png")))

	plt, err = NewTracePlot(recs[:1])
	assert.Nil(plt)
	assert.Error(err)

	plt, err = NewTracePlot(nil)
	assert.Nil(plt)
	assert.Error(err)
}
