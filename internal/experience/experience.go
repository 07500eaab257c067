// Package experience computes the customer experience panels: satisfaction
// scores, their distribution over flight distance and inflight service ratings.
package experience

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"sia-analytics/internal/dataset"
	"sia-analytics/internal/stats"
)

// NeutralScore is assigned to satisfaction labels that are not recognized.
const NeutralScore = 3.0

var satisfactionScores = map[string]float64{
	"very dissatisfied":       1,
	"dissatisfied":            2,
	"neutral":                 3,
	"neutral or dissatisfied": 3,
	"neutral or satisfied":    4,
	"satisfied":               4,
	"very satisfied":          5,
}

// ServiceColumns are the inflight service ratings (1-5) of the survey.
var ServiceColumns = []string{
	"Inflight wifi service",
	"Departure/Arrival time convenient",
	"Ease of Online booking",
	"Gate location",
	"Food and drink",
	"Online boarding",
	"Seat comfort",
	"Inflight entertainment",
	"On-board service",
	"Leg room service",
	"Baggage handling",
	"Checkin service",
	"Inflight service",
	"Cleanliness",
}

// SatisfactionScore maps a satisfaction label onto the 1-5 scale.
func SatisfactionScore(label string) float64 {
	if s, ok := satisfactionScores[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s
	}
	return NeutralScore
}

// ScoreCount is one bar of a score distribution.
type ScoreCount struct {
	Score float64 `json:"score"`
	Count int     `json:"count"`
}

// ServiceRating is the average rating of one service attribute.
type ServiceRating struct {
	Service string  `json:"service"`
	Average float64 `json:"average"`
}

// DistanceRange holds the flight distance span and the default filter value.
type DistanceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Summary is the data behind the customer experience page.
type Summary struct {
	AverageScore   float64         `json:"average_score"`
	Passengers     int             `json:"passengers"`
	Distribution   []ScoreCount    `json:"distribution"`
	Distance       *DistanceRange  `json:"distance,omitempty"`
	MinDistance    float64         `json:"min_distance"`
	Filtered       int             `json:"filtered"`
	FilteredScores []ScoreCount    `json:"filtered_distribution,omitempty"`
	ServiceRatings []ServiceRating `json:"service_ratings"`
}

// Range returns the flight distance span of the dataset. The default filter
// sits a third of the way into the range, on whole kilometres.
func Range(f *dataset.Frame) (*DistanceRange, error) {
	distances, err := f.Numeric(dataset.FlightDistanceColumn)
	if err != nil {
		return nil, err
	}
	if len(distances) == 0 {
		return nil, fmt.Errorf("%w: no numeric flight distances", dataset.ErrColumnNotFound)
	}

	lo := math.Trunc(slices.Min(distances))
	hi := math.Trunc(slices.Max(distances))
	return &DistanceRange{
		Min:     lo,
		Max:     hi,
		Default: lo + math.Floor((hi-lo)/3),
	}, nil
}

// Summarize builds the customer experience panels. minDistance filters the
// distance panel; pass nil for the default third-of-range filter.
func Summarize(f *dataset.Frame, minDistance *float64) (*Summary, error) {
	labels, err := f.Strings(dataset.SatisfactionColumn)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(labels))
	for i, l := range labels {
		scores[i] = SatisfactionScore(l)
	}

	s := &Summary{
		Passengers:     f.Len(),
		Distribution:   countScores(scores),
		ServiceRatings: ServiceRatings(f),
	}
	if len(scores) > 0 {
		s.AverageScore = stats.Mean(scores)
	}

	if r, err := Range(f); err == nil {
		s.Distance = r
		s.MinDistance = r.Default
		if minDistance != nil {
			s.MinDistance = *minDistance
		}

		var filtered []float64
		for i := range labels {
			if d, ok := f.Float(i, dataset.FlightDistanceColumn); ok && d >= s.MinDistance {
				filtered = append(filtered, scores[i])
			}
		}
		s.Filtered = len(filtered)
		s.FilteredScores = countScores(filtered)
	}

	return s, nil
}

// ServiceRatings averages every inflight service column present in the frame,
// sorted from the weakest to the strongest attribute.
func ServiceRatings(f *dataset.Frame) []ServiceRating {
	var ratings []ServiceRating
	for _, col := range ServiceColumns {
		values, err := f.Numeric(col)
		if err != nil || len(values) == 0 {
			continue
		}
		ratings = append(ratings, ServiceRating{Service: col, Average: stats.Mean(values)})
	}

	slices.SortStableFunc(ratings, func(a, b ServiceRating) int {
		return cmp.Compare(a.Average, b.Average)
	})
	return ratings
}

func countScores(scores []float64) []ScoreCount {
	counts := make(map[float64]int)
	for _, s := range scores {
		counts[s]++
	}

	out := make([]ScoreCount, 0, len(counts))
	for score, n := range counts {
		out = append(out, ScoreCount{Score: score, Count: n})
	}
	slices.SortFunc(out, func(a, b ScoreCount) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return out
}
