package noise

import (
	"fmt"
	"math"

	filter "github.com/omarmustafa130/go-histogram"
	"github.com/omarmustafa130/go-histogram/matrix"
)

// checkAmount makes sure blur amount a is in [0, 1]
func checkAmount(a float64) error {
	if math.IsNaN(a) || a < 0 || a > 1 {
		return fmt.Errorf("%w: blur amount %v outside [0, 1]", filter.ErrInvalidParameter, a)
	}

	return nil
}

// normalizer returns n or the default normalizer if n is nil
func normalizer(n filter.Normalizer) filter.Normalizer {
	if n == nil {
		return matrix.SumNormalizer{}
	}

	return n
}
