package grid

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// FormatBeliefs returns beliefs in b as rows of numbers rounded to prec decimal places
func FormatBeliefs(b mat.Matrix, prec int) string {
	return fmt.Sprintf("%.*v", prec, mat.Formatted(b, mat.Squeeze()))
}

// Show returns the world with the cell at row r and column c marked by brackets
func Show(g *Colors, r, c int) string {
	var b strings.Builder
	rows, cols := g.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if i == r && j == c {
				b.WriteString("[" + string(g.At(i, j)) + "]")
				continue
			}
			b.WriteString(" " + string(g.At(i, j)) + " ")
		}
		b.WriteByte('\n')
	}

	return b.String()
}
