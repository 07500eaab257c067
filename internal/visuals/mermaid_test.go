package visuals

import (
	"strings"
	"testing"

	"sia-analytics/internal/experience"
	"sia-analytics/internal/simulation"
)

func TestGenerateDelayHistogram(t *testing.T) {
	h := simulation.NewDelayHistogram([]float64{0, 1, 7, 12, 12, 40})

	chart := GenerateDelayHistogram(h, 60)
	if !strings.HasPrefix(chart, "```mermaid\nxychart-beta\n") {
		t.Fatalf("missing mermaid header: %q", chart)
	}
	if !strings.Contains(chart, "threshold 60 min") {
		t.Error("title should carry the threshold")
	}
	// 180 / 5 bins
	if !strings.Contains(chart, "\"175\"]") {
		t.Error("expected the last bin label to be 175")
	}
	if !strings.Contains(chart, "bar [2, 1, 2, ") {
		t.Errorf("unexpected bar values: %s", chart)
	}
	if !strings.HasSuffix(chart, "```") {
		t.Error("chart fence not closed")
	}

	if GenerateDelayHistogram(nil, 60) != "" {
		t.Error("expected an empty chart for a missing histogram")
	}
}

func TestGenerateScoreDistribution(t *testing.T) {
	chart := GenerateScoreDistribution("All Passengers", []experience.ScoreCount{
		{Score: 3, Count: 10},
		{Score: 4, Count: 5},
	})
	if !strings.Contains(chart, "title \"All Passengers\"") {
		t.Errorf("title missing: %s", chart)
	}
	if !strings.Contains(chart, "[\"3\", \"4\"]") || !strings.Contains(chart, "bar [10, 5]") {
		t.Errorf("unexpected series: %s", chart)
	}
	if !strings.Contains(chart, "0 --> 12") {
		t.Errorf("y-axis should leave headroom above the tallest bar: %s", chart)
	}

	if GenerateScoreDistribution("x", nil) != "" {
		t.Error("expected empty output for no scores")
	}
}

func TestGenerateServiceRatings(t *testing.T) {
	chart := GenerateServiceRatings([]experience.ServiceRating{
		{Service: "Inflight wifi service", Average: 2.5},
		{Service: "Cleanliness", Average: 4.25},
	})
	if !strings.Contains(chart, "xychart-beta horizontal") {
		t.Error("service ratings should render horizontally")
	}
	if !strings.Contains(chart, "bar [2.50, 4.25]") {
		t.Errorf("unexpected series: %s", chart)
	}
}
