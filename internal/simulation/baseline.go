package simulation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// FallbackStdDev replaces a degenerate standard deviation (zero or undefined)
// so the generating distribution stays well-formed.
const FallbackStdDev = 10.0

// Baseline holds the generating distribution parameters derived from history.
type Baseline struct {
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stddev"`
	Count    int     `json:"count"`
	Fallback bool    `json:"stddev_fallback,omitempty"`
}

// DeriveBaseline computes the mean and sample standard deviation of the
// historical delays. Non-finite entries are ignored. A standard deviation
// that is <= 0 or undefined (fewer than two values) is replaced by
// FallbackStdDev.
func DeriveBaseline(delays []float64) (Baseline, error) {
	clean := make([]float64, 0, len(delays))
	for _, d := range delays {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		clean = append(clean, d)
	}

	if len(clean) == 0 {
		return Baseline{}, fmt.Errorf("%w: historical delay sample is empty", ErrData)
	}

	mean, std := stat.MeanStdDev(clean, nil)
	b := Baseline{Mean: mean, StdDev: std, Count: len(clean)}
	if len(clean) < 2 || !(std > 0) {
		b.StdDev = FallbackStdDev
		b.Fallback = true
	}
	return b, nil
}
