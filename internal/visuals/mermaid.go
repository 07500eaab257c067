package visuals

import (
	"fmt"
	"math"
	"strings"

	"sia-analytics/internal/experience"
	"sia-analytics/internal/simulation"
)

// GenerateDelayHistogram creates a Mermaid bar chart of the simulated delay distribution.
func GenerateDelayHistogram(h *simulation.DelayHistogram, threshold float64) string {
	if h == nil || len(h.Counts) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for i, c := range h.Counts {
		labels = append(labels, fmt.Sprintf("\"%.0f\"", h.LowerEdges[i]))
		values = append(values, fmt.Sprintf("%d", c))
	}

	maxVal := h.MaxCount()

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Simulated Delays (threshold %.0f min)\"\n", threshold))
	sb.WriteString(fmt.Sprintf("    x-axis \"Delay (Minutes)\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Simulations\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.1))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateScoreDistribution creates a Mermaid bar chart of satisfaction scores.
func GenerateScoreDistribution(title string, dist []experience.ScoreCount) string {
	if len(dist) == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0
	for _, sc := range dist {
		labels = append(labels, fmt.Sprintf("\"%.0f\"", sc.Score))
		values = append(values, fmt.Sprintf("%d", sc.Count))
		if sc.Count > maxVal {
			maxVal = sc.Count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"%s\"\n", title))
	sb.WriteString(fmt.Sprintf("    x-axis \"Satisfaction Score\" [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Passengers\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.2))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateServiceRatings creates a Mermaid bar chart of average inflight service ratings.
func GenerateServiceRatings(ratings []experience.ServiceRating) string {
	if len(ratings) == 0 {
		return ""
	}

	var labels []string
	var values []string
	for _, r := range ratings {
		labels = append(labels, fmt.Sprintf("\"%s\"", strings.ReplaceAll(r.Service, "\"", "'")))
		values = append(values, fmt.Sprintf("%.2f", r.Average))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta horizontal\n")
	sb.WriteString("    title \"Inflight Service Ratings\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Average Rating\" 0 --> 5\n")
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}
