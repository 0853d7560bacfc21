package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	filter "github.com/omarmustafa130/go-histogram"
)

// Colors is an immutable map of a color world.
// It implements filter.World.
type Colors struct {
	// data stores cell colors in row-major order
	data []rune
	rows int
	cols int
}

// New creates new Colors from rows of color labels and returns it.
// It returns error if rows is empty, if any row is empty or if the rows differ in length.
func New(rows [][]rune) (*Colors, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: world has no rows", filter.ErrInvalidDimension)
	}

	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: world has no columns", filter.ErrInvalidDimension)
	}

	data := make([]rune, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", filter.ErrInvalidDimension, i, len(row), cols)
		}
		data = append(data, row...)
	}

	return &Colors{
		data: data,
		rows: len(rows),
		cols: cols,
	}, nil
}

// Parse reads a world from r and returns it.
// Every non-blank line is a row; every non-space character on it is the color of one cell,
// so both "g r g" and "grg" describe the same row.
// It returns error if reading fails or if the parsed rows do not form a rectangle.
func Parse(r io.Reader) (*Colors, error) {
	var rows [][]rune

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		row := make([]rune, 0, len(line))
		for _, c := range line {
			if !unicode.IsSpace(c) {
				row = append(row, c)
			}
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read world: %v", err)
	}

	return New(rows)
}

// Dims returns the number of rows and columns of the world
func (g *Colors) Dims() (int, int) {
	return g.rows, g.cols
}

// At returns the color of the cell at row r and column c.
// It panics if r or c is out of range.
func (g *Colors) At(r, c int) rune {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		panic(fmt.Sprintf("grid: index [%d, %d] out of range [%d x %d]", r, c, g.rows, g.cols))
	}

	return g.data[r*g.cols+c]
}

// Rows returns a copy of the world as rows of colors
func (g *Colors) Rows() [][]rune {
	rows := make([][]rune, g.rows)
	for r := range rows {
		rows[r] = make([]rune, g.cols)
		copy(rows[r], g.data[r*g.cols:(r+1)*g.cols])
	}

	return rows
}

// Palette returns the distinct colors of the world in order of their first appearance
func (g *Colors) Palette() []rune {
	seen := make(map[rune]bool)
	var palette []rune
	for _, c := range g.data {
		if !seen[c] {
			seen[c] = true
			palette = append(palette, c)
		}
	}

	return palette
}

// Count returns the number of cells painted with color c
func (g *Colors) Count(c rune) int {
	n := 0
	for _, v := range g.data {
		if v == c {
			n++
		}
	}

	return n
}

// String implements the Stringer interface.
func (g *Colors) String() string {
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(g.data[r*g.cols+c])
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// compile-time check
var _ filter.World = (*Colors)(nil)
