package histogram

import (
	"fmt"
	"math"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/estimate"
	"github.com/omarmustafa130/go-histogram/matrix"
	"github.com/omarmustafa130/go-histogram/noise"
	"gonum.org/v1/gonum/mat"
)

// Config configures histogram filter
type Config struct {
	// PHit is relative likelihood of sensing the true cell color
	PHit float64
	// PMiss is relative likelihood of sensing any other color
	PMiss float64
	// Blur is blur amount applied after every move
	Blur float64
	// Blurrer models motion noise; noise.Kernel is used if nil
	Blurrer filter.Blurrer
	// Normalizer normalizes posterior beliefs; matrix.SumNormalizer is used if nil
	Normalizer filter.Normalizer
}

// Validate returns error if the sensor weights or blur amount are invalid.
func (c Config) Validate() error {
	if err := checkWeight("pHit", c.PHit); err != nil {
		return err
	}

	if err := checkWeight("pMiss", c.PMiss); err != nil {
		return err
	}

	if c.PHit+c.PMiss == 0 {
		return fmt.Errorf("%w: pHit and pMiss are both zero", filter.ErrInvalidParameter)
	}

	if math.IsNaN(c.Blur) || c.Blur < 0 {
		return fmt.Errorf("%w: blur amount %v", filter.ErrInvalidParameter, c.Blur)
	}

	return nil
}

// HF is a histogram filter.
// It keeps beliefs about the robot position in world cells and updates them
// on every call to Sense or Move. HF is not safe for concurrent use.
type HF struct {
	// world is a static map of the robot world
	world filter.World
	// beliefs stores the current belief grid
	beliefs *mat.Dense
	// pHit and pMiss are sensor weights
	pHit  float64
	pMiss float64
	// blur is blur amount applied after every move
	blur float64
	// blurrer models motion noise
	blurrer filter.Blurrer
	// norm normalizes posterior beliefs
	norm filter.Normalizer
}

// New creates new histogram filter for world w with config c and returns it.
// The filter starts with uniform beliefs.
// It returns error if c is invalid or if w has no cells.
func New(w filter.World, c Config) (*HF, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	beliefs, err := InitializeBeliefs(w)
	if err != nil {
		return nil, err
	}

	blurrer := c.Blurrer
	if blurrer == nil {
		blurrer = &noise.Kernel{}
	}

	norm := c.Normalizer
	if norm == nil {
		norm = matrix.SumNormalizer{}
	}

	return &HF{
		world:   w,
		beliefs: beliefs,
		pHit:    c.PHit,
		pMiss:   c.PMiss,
		blur:    c.Blur,
		blurrer: blurrer,
		norm:    norm,
	}, nil
}

// Sense updates filter beliefs given the observed color and returns a copy of them.
// Beliefs are left unchanged if the update fails.
func (h *HF) Sense(color rune) (*mat.Dense, error) {
	post, err := SenseWith(h.norm, color, h.world, h.beliefs, h.pHit, h.pMiss)
	if err != nil {
		return nil, fmt.Errorf("sensing update failed: %w", err)
	}
	h.beliefs = post

	return h.Beliefs(), nil
}

// Move updates filter beliefs given the intended displacement and returns a copy of them.
// Beliefs are left unchanged if the update fails.
func (h *HF) Move(dy, dx int) (*mat.Dense, error) {
	next, err := MoveWith(h.blurrer, dy, dx, h.beliefs, h.blur)
	if err != nil {
		return nil, fmt.Errorf("motion update failed: %w", err)
	}
	h.beliefs = next

	return h.Beliefs(), nil
}

// Run runs one filter cycle: it moves the beliefs by dy and dx and then senses color.
// It returns the most likely robot position after the cycle.
// It returns error if either of the updates fails, in which case the beliefs are left unchanged.
func (h *HF) Run(dy, dx int, color rune) (filter.Estimate, error) {
	prev := h.beliefs

	if _, err := h.Move(dy, dx); err != nil {
		return nil, err
	}

	if _, err := h.Sense(color); err != nil {
		h.beliefs = prev
		return nil, err
	}

	return h.Estimate()
}

// Estimate returns the most likely robot position given current beliefs.
func (h *HF) Estimate() (filter.Estimate, error) {
	est, err := estimate.New(h.beliefs)
	if err != nil {
		return nil, err
	}

	return est, nil
}

// Beliefs returns a copy of current filter beliefs
func (h *HF) Beliefs() *mat.Dense {
	b := &mat.Dense{}
	b.CloneFrom(h.beliefs)

	return b
}

// Reset resets filter beliefs to uniform distribution.
func (h *HF) Reset() error {
	beliefs, err := InitializeBeliefs(h.world)
	if err != nil {
		return err
	}
	h.beliefs = beliefs

	return nil
}

// compile-time check
var _ filter.Filter = (*HF)(nil)
