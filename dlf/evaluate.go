package dlf

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Kernel is the transform kernel sampled at base/r.
type Kernel func(x float64) float64

// Evaluate applies a digital linear filter at offset r:
//
//	sum_i kernel(base[i]/r) * weights[i] / r
func Evaluate(base, weights []float64, r float64, kernel Kernel) (float64, error) {
	if len(base) != len(weights) {
		return 0, fmt.Errorf("%w: %d base points, %d weights", ErrShape, len(base), len(weights))
	}

	if r == 0 {
		return 0, errors.New("offset must be non-zero")
	}

	samples := make([]float64, len(base))
	for i, b := range base {
		samples[i] = kernel(b / r)
	}

	vecmath.MulBlockInPlace(samples, weights)

	var sum float64
	for _, v := range samples {
		sum += v
	}

	return sum / r, nil
}

// Evaluate applies the named value column of the table at offset r.
func (t *Table) Evaluate(name string, r float64, kernel Kernel) (float64, error) {
	w, ok := t.Column(name)
	if !ok {
		return 0, fmt.Errorf("filter has no %q column", name)
	}

	return Evaluate(t.Base, w, r, kernel)
}
