package filter

import "gonum.org/v1/gonum/mat"

// World is a static map of a toroidal color world
type World interface {
	// Dims returns the number of rows and columns of the world
	Dims() (rows, cols int)
	// At returns the color of the cell in row r and column c
	At(r, c int) rune
}

// Filter is a discrete belief filter over the cells of a World
type Filter interface {
	// Sense updates the beliefs given an observed color
	Sense(rune) (*mat.Dense, error)
	// Move updates the beliefs given an intended displacement
	Move(int, int) (*mat.Dense, error)
}

// Blurrer spreads probability mass to model imperfect motion
type Blurrer interface {
	// Blur blurs the grid by the given amount and returns a new normalized grid.
	// Zero amount must return an exact copy of the grid.
	Blur(mat.Matrix, float64) (*mat.Dense, error)
}

// Normalizer rescales a grid into a probability distribution
type Normalizer interface {
	// Normalize returns a new grid whose entries sum up to 1
	Normalize(mat.Matrix) (*mat.Dense, error)
}

// Estimate is a point estimate of the robot position
type Estimate interface {
	// Cell returns the row and column of the estimated cell
	Cell() (row, col int)
	// Prob returns the belief held in the estimated cell
	Prob() float64
	// Entropy returns the entropy of the belief distribution in nats
	Entropy() float64
}
