package sim

import (
	"fmt"

	exprand "golang.org/x/exp/rand"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/grid"
	"github.com/omarmustafa130/go-histogram/histogram"
	"github.com/omarmustafa130/go-histogram/matrix"
	"gonum.org/v1/gonum/mat"
)

// Pose is a robot position in the world
type Pose struct {
	Row int
	Col int
}

// Config configures simulation
type Config struct {
	// PHit and PMiss are sensor weights shared by the simulated sensor and the filter
	PHit  float64
	PMiss float64
	// Blur is filter blur amount
	Blur float64
	// Blurrer is filter motion noise model; noise.Kernel is used if nil
	Blurrer filter.Blurrer
	// Seed seeds the simulation random number generator
	Seed uint64
	// Start is initial robot pose; it is drawn uniformly at random if nil
	Start *Pose
}

// Record is an outcome of a single simulation step
type Record struct {
	// Step is step number starting from 1
	Step int
	// DY and DX is commanded displacement
	DY int
	DX int
	// Observed is the color reported by the sensor
	Observed rune
	// Truth is the true robot pose after the step
	Truth Pose
	// Estimate is the most likely pose after the step
	Estimate Pose
	// Prob is belief held in the most likely cell
	Prob float64
	// Entropy is entropy of the beliefs in nats
	Entropy float64
	// TruthBelief is belief held in the true robot cell
	TruthBelief float64
}

// Hit returns true if the estimated pose matches the true pose
func (r Record) Hit() bool {
	return r.Truth == r.Estimate
}

// Simulation simulates a robot moving in a toroidal color world and localizing itself with a histogram filter.
type Simulation struct {
	// world is the world the robot lives in
	world *grid.Colors
	// hf tracks robot beliefs
	hf *histogram.HF
	// sensor simulates color readings
	sensor *Sensor
	// pose is the true robot pose
	pose Pose
	// rng drives random moves and sensor errors
	rng *exprand.Rand
	// step counts completed steps
	step int
}

// NewSimulation creates new simulation of a robot living in world w and returns it.
// It returns error if the config is invalid or if the start pose lies outside the world.
func NewSimulation(w *grid.Colors, c Config) (*Simulation, error) {
	if w == nil {
		return nil, fmt.Errorf("%w: nil world", filter.ErrInvalidDimension)
	}

	hf, err := histogram.New(w, histogram.Config{
		PHit:    c.PHit,
		PMiss:   c.PMiss,
		Blur:    c.Blur,
		Blurrer: c.Blurrer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram filter: %w", err)
	}

	sensor, err := NewSensor(c.PHit, c.PMiss, w.Palette())
	if err != nil {
		return nil, err
	}

	rng := exprand.New(exprand.NewSource(c.Seed))
	rows, cols := w.Dims()

	pose := Pose{Row: rng.Intn(rows), Col: rng.Intn(cols)}
	if c.Start != nil {
		if c.Start.Row < 0 || c.Start.Row >= rows || c.Start.Col < 0 || c.Start.Col >= cols {
			return nil, fmt.Errorf("%w: start pose %v outside [%d x %d] world", filter.ErrInvalidParameter, *c.Start, rows, cols)
		}
		pose = *c.Start
	}

	return &Simulation{
		world:  w,
		hf:     hf,
		sensor: sensor,
		pose:   pose,
		rng:    rng,
	}, nil
}

// Pose returns the true robot pose
func (s *Simulation) Pose() Pose {
	return s.pose
}

// Beliefs returns a copy of current filter beliefs
func (s *Simulation) Beliefs() *mat.Dense {
	return s.hf.Beliefs()
}

// Step moves the robot by dy rows and dx columns, reads the sensor and updates the filter.
// It returns error if the filter update fails.
func (s *Simulation) Step(dy, dx int) (Record, error) {
	rows, cols := s.world.Dims()
	next := Pose{
		Row: matrix.Mod(s.pose.Row+dy, rows),
		Col: matrix.Mod(s.pose.Col+dx, cols),
	}

	color := s.sensor.Read(s.world.At(next.Row, next.Col), s.rng)

	est, err := s.hf.Run(dy, dx, color)
	if err != nil {
		return Record{}, fmt.Errorf("step %d failed: %w", s.step+1, err)
	}

	s.pose = next
	s.step++

	er, ec := est.Cell()

	return Record{
		Step:        s.step,
		DY:          dy,
		DX:          dx,
		Observed:    color,
		Truth:       next,
		Estimate:    Pose{Row: er, Col: ec},
		Prob:        est.Prob(),
		Entropy:     est.Entropy(),
		TruthBelief: s.hf.Beliefs().At(next.Row, next.Col),
	}, nil
}

// RandomStep moves the robot by a random displacement in {-1, 0, 1} along both axes.
func (s *Simulation) RandomStep() (Record, error) {
	return s.Step(s.rng.Intn(3)-1, s.rng.Intn(3)-1)
}

// Run runs the given number of random steps and returns their records.
// It returns error if steps is negative or if any of the steps fails.
func (s *Simulation) Run(steps int) ([]Record, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: invalid step count: %d", filter.ErrInvalidParameter, steps)
	}

	recs := make([]Record, 0, steps)
	for i := 0; i < steps; i++ {
		rec, err := s.RandomStep()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, nil
}
