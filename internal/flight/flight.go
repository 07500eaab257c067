// Package flight summarizes operational flight performance from the dataset.
package flight

import (
	"sia-analytics/internal/dataset"
	"sia-analytics/internal/stats"
)

// OnTimeLimit is the delay, in minutes, up to which a flight counts as on time.
const OnTimeLimit = 15.0

// DelayStats describes one delay column.
type DelayStats struct {
	Column      string  `json:"column"`
	Count       int     `json:"count"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	P95         float64 `json:"p95"`
	Worst       float64 `json:"worst"`
	OnTimeShare float64 `json:"on_time_share"` // percent
}

// ClassDelay is the mean departure delay of one travel class.
type ClassDelay struct {
	Class     string  `json:"class"`
	Flights   int     `json:"flights"`
	MeanDelay float64 `json:"mean_delay"`
}

// Summary is the data behind the flight performance page.
// Panels whose column is absent stay nil.
type Summary struct {
	Records      int          `json:"records"`
	Departure    *DelayStats  `json:"departure,omitempty"`
	Arrival      *DelayStats  `json:"arrival,omitempty"`
	MeanDistance *float64     `json:"mean_distance,omitempty"`
	ByClass      []ClassDelay `json:"by_class,omitempty"`
}

// Summarize computes the flight performance panels.
func Summarize(f *dataset.Frame) *Summary {
	s := &Summary{Records: f.Len()}
	s.Departure = delayStats(f, dataset.DepartureDelayColumn)
	s.Arrival = delayStats(f, dataset.ArrivalDelayColumn)

	if d, err := f.Numeric(dataset.FlightDistanceColumn); err == nil && len(d) > 0 {
		mean := stats.Mean(d)
		s.MeanDistance = &mean
	}

	if f.HasColumn(dataset.ClassColumn) && f.HasColumn(dataset.DepartureDelayColumn) {
		s.ByClass = byClass(f)
	}
	return s
}

func delayStats(f *dataset.Frame, column string) *DelayStats {
	values, err := f.Numeric(column)
	if err != nil || len(values) == 0 {
		return nil
	}

	q := stats.Percentiles(values, 50, 95)
	return &DelayStats{
		Column:      column,
		Count:       len(values),
		Mean:        stats.Mean(values),
		Median:      q[0],
		P95:         q[1],
		Worst:       stats.Max(values),
		OnTimeShare: stats.ShareAtMost(values, OnTimeLimit) * 100,
	}
}

func byClass(f *dataset.Frame) []ClassDelay {
	groups := make(map[string][]float64)
	var order []string
	for i := 0; i < f.Len(); i++ {
		d, ok := f.Float(i, dataset.DepartureDelayColumn)
		if !ok {
			continue
		}
		class := f.Value(i, dataset.ClassColumn)
		if class == "" {
			continue
		}
		if _, seen := groups[class]; !seen {
			order = append(order, class)
		}
		groups[class] = append(groups[class], d)
	}

	out := make([]ClassDelay, 0, len(order))
	for _, class := range order {
		out = append(out, ClassDelay{
			Class:     class,
			Flights:   len(groups[class]),
			MeanDelay: stats.Mean(groups[class]),
		})
	}
	return out
}
