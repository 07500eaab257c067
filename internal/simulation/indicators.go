package simulation

import (
	"fmt"

	"sia-analytics/internal/stats"
)

// RiskIndicators summarizes a simulated delay set.
type RiskIndicators struct {
	Expected    float64 `json:"expected"`    // mean delay, minutes
	Probability float64 `json:"probability"` // % of samples strictly above the threshold
	P95         float64 `json:"p95"`
	Worst       float64 `json:"worst"`
}

// CalculateIndicators derives the risk indicators of a simulated delay set.
func CalculateIndicators(delays []float64, threshold float64) (RiskIndicators, error) {
	if len(delays) == 0 {
		return RiskIndicators{}, fmt.Errorf("%w: simulated delay set is empty", ErrData)
	}

	exceeding := 0
	for _, d := range delays {
		if d > threshold {
			exceeding++
		}
	}

	return RiskIndicators{
		Expected:    stats.Mean(delays),
		Probability: float64(exceeding) / float64(len(delays)) * 100,
		P95:         stats.Percentile(delays, 95),
		Worst:       stats.Max(delays),
	}, nil
}
