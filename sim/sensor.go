package sim

import (
	"fmt"
	"math"

	exprand "golang.org/x/exp/rand"

	filter "github.com/omarmustafa130/go-histogram"
)

// Sensor is a noisy color sensor
type Sensor struct {
	// miss is probability of reporting a wrong color
	miss float64
	// colors stores all colors the sensor can report
	colors []rune
}

// NewSensor creates new color sensor which reports one of colors and returns it.
// The sensor reports a wrong color with probability pMiss/(pHit+pMiss).
// It returns error if the weights are negative, non-finite or both zero, or if colors is empty.
func NewSensor(pHit, pMiss float64, colors []rune) (*Sensor, error) {
	for _, p := range []float64{pHit, pMiss} {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: sensor weight %v", filter.ErrInvalidParameter, p)
		}
	}

	if pHit+pMiss == 0 {
		return nil, fmt.Errorf("%w: sensor weights are both zero", filter.ErrInvalidParameter)
	}

	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: sensor has no colors", filter.ErrInvalidParameter)
	}

	c := make([]rune, len(colors))
	copy(c, colors)

	return &Sensor{
		miss:   pMiss / (pHit + pMiss),
		colors: c,
	}, nil
}

// MissProb returns probability of reporting a wrong color
func (s *Sensor) MissProb() float64 {
	return s.miss
}

// Read returns the color sensed in a cell painted with truth.
// With probability MissProb it returns a uniformly chosen color other than truth,
// unless there are no other colors to choose from.
func (s *Sensor) Read(truth rune, r *exprand.Rand) rune {
	if r.Float64() >= s.miss {
		return truth
	}

	others := make([]rune, 0, len(s.colors))
	for _, c := range s.colors {
		if c != truth {
			others = append(others, c)
		}
	}

	if len(others) == 0 {
		return truth
	}

	return others[r.Intn(len(others))]
}
