package rand

import (
	"fmt"
	"math"
	"sort"

	exprand "golang.org/x/exp/rand"

	filter "github.com/omarmustafa130/go-histogram"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// RouletteDrawN draws n numbers randomly from a probability mass function (PMF) defined by weights in p.
// RouletteDrawN implements the Roulette Wheel Draw a.k.a. Fitness Proportionate Selection:
// - https://en.wikipedia.org/wiki/Fitness_proportionate_selection
// - http://www.keithschwarz.com/darts-dice-coins/
// Random numbers are drawn from src; the global source is used if src is nil.
// It returns a slice of n indices into the slice p.
// It fails with error if p is empty, contains negative or non-finite weights, sums up to zero or if n is negative.
func RouletteDrawN(p []float64, n int, src exprand.Source) ([]int, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: empty probability weights", filter.ErrInvalidParameter)
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: invalid number of draws: %d", filter.ErrInvalidParameter, n)
	}

	for i, w := range p {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is %v", filter.ErrDegenerateDistribution, i, w)
		}
	}

	// Initialization: create the discrete CDF
	// We know that cdf is sorted in ascending order
	cdf := make([]float64, len(p))
	floats.CumSum(cdf, p)

	total := cdf[len(cdf)-1]
	if total <= 0 || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: weights sum up to %v", filter.ErrDegenerateDistribution, total)
	}

	unit := distuv.Uniform{Min: 0, Max: 1, Src: src}

	// Generation:
	// 1. Generate a uniformly-random value x in the range [0,1)
	// 2. Using a binary search, find the index of the smallest element in cdf larger than x
	var val float64
	indices := make([]int, n)
	for i := range indices {
		// multiply the sample with the largest CDF value; easier than normalizing to [0,1)
		val = unit.Rand() * total
		// Search returns the smallest index i such that cdf[i] > val
		indices[i] = sort.Search(len(cdf), func(i int) bool { return cdf[i] > val })
	}

	return indices, nil
}
