package experience

import (
	"cmp"
	"slices"
	"strings"

	"sia-analytics/internal/dataset"
	"sia-analytics/internal/stats"
)

// LabelCount is the number of passengers carrying one satisfaction label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BinarySummary is the condensed view printed by the text interface, where
// satisfied scores 1, neutral or dissatisfied 0 and anything else -1.
type BinarySummary struct {
	AverageScore float64      `json:"average_score"`
	Labels       []LabelCount `json:"labels"`
}

// BinaryScore maps a label onto the two-level scale of the text interface.
func BinaryScore(label string) float64 {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "satisfied":
		return 1
	case "neutral or dissatisfied":
		return 0
	default:
		return -1
	}
}

// SummarizeBinary computes the two-level average and label frequencies,
// most frequent label first.
func SummarizeBinary(f *dataset.Frame) (*BinarySummary, error) {
	labels, err := f.Strings(dataset.SatisfactionColumn)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(labels))
	counts := make(map[string]int)
	for i, l := range labels {
		scores[i] = BinaryScore(l)
		counts[strings.ToLower(l)]++
	}

	out := &BinarySummary{}
	if len(scores) > 0 {
		out.AverageScore = stats.Mean(scores)
	}
	for label, n := range counts {
		out.Labels = append(out.Labels, LabelCount{Label: label, Count: n})
	}
	slices.SortFunc(out.Labels, func(a, b LabelCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out, nil
}
