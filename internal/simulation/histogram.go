package simulation

import (
	"math"

	"sia-analytics/internal/stats"
)

const (
	// HistogramBinWidth is the width of each delay bin in minutes.
	HistogramBinWidth = 5.0

	// HistogramMinUpper is the smallest upper edge of the histogram.
	HistogramMinUpper = 180.0
	// HistogramMaxUpper caps the upper edge at one week; samples beyond it
	// are counted in Omitted.
	HistogramMaxUpper = 10080.0

	histogramTailPadding = 30.0
)

// DelayHistogram bins a simulated delay set into fixed-width buckets
// starting at zero. Bins are half-open except the last, which also holds
// values equal to the upper edge.
type DelayHistogram struct {
	BinWidth   float64   `json:"bin_width"`
	Upper      float64   `json:"upper"`
	LowerEdges []float64 `json:"lower_edges"`
	Counts     []int     `json:"counts"`
	Omitted    int       `json:"omitted,omitempty"` // samples beyond the upper edge
}

// HistogramUpper returns the upper edge for a sample: max(180, P99 + 30),
// truncated to whole minutes and rounded up to the next bin boundary,
// never above HistogramMaxUpper.
func HistogramUpper(delays []float64) float64 {
	limit := HistogramMinUpper
	if len(delays) > 0 {
		limit = math.Max(limit, stats.Percentile(delays, 99)+histogramTailPadding)
	}
	if !(limit <= HistogramMaxUpper) {
		return HistogramMaxUpper
	}
	return math.Ceil(math.Trunc(limit)/HistogramBinWidth) * HistogramBinWidth
}

// NewDelayHistogram bins the delays. Values above the upper edge are counted
// in Omitted only.
func NewDelayHistogram(delays []float64) *DelayHistogram {
	upper := HistogramUpper(delays)
	bins := int(upper / HistogramBinWidth)

	h := &DelayHistogram{
		BinWidth:   HistogramBinWidth,
		Upper:      upper,
		LowerEdges: make([]float64, bins),
		Counts:     make([]int, bins),
	}
	for i := range h.LowerEdges {
		h.LowerEdges[i] = float64(i) * HistogramBinWidth
	}

	for _, d := range delays {
		if math.IsNaN(d) || d < 0 || d > upper {
			h.Omitted++
			continue
		}
		idx := int(d / HistogramBinWidth)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}

// Total returns the number of binned samples.
func (h *DelayHistogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// MaxCount returns the tallest bin.
func (h *DelayHistogram) MaxCount() int {
	maxVal := 0
	for _, c := range h.Counts {
		if c > maxVal {
			maxVal = c
		}
	}
	return maxVal
}
