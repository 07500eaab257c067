package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"sia-analytics/internal/analytics"
	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/theme"
	"sia-analytics/internal/visuals"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"index", "flight", "experience", "risk", "cloud"}

type pageSet struct {
	byName map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	"f2": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f0": func(v float64) string { return fmt.Sprintf("%.0f", v) },
}

func loadPages() (*pageSet, error) {
	ps := &pageSet{byName: make(map[string]*template.Template)}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s page: %w", name, err)
		}
		ps.byName[name] = t
	}
	return ps, nil
}

// pageData is shared by every page; Body carries the page-specific view.
type pageData struct {
	Title string
	CSS   template.CSS
	Theme theme.Theme
	Error string
	Body  any
}

func (h *Handler) render(w http.ResponseWriter, status int, name, title string, body any, pageErr error) {
	data := pageData{
		Title: title,
		CSS:   h.theme.CSS(),
		Theme: h.theme,
		Body:  body,
	}
	if pageErr != nil {
		data.Error = pageErr.Error()
	}

	var buf bytes.Buffer
	if err := h.pages.byName[name].Execute(&buf, data); err != nil {
		log.Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// bar is one row of an inline bar chart.
type bar struct {
	Label string
	Value string
	Width float64 // percent of the tallest bar
	Alt   bool
}

func mermaidBody(chart string) string {
	chart = strings.TrimPrefix(chart, "```mermaid\n")
	return strings.TrimSuffix(chart, "```")
}

type moduleCard struct {
	Title string
	Desc  string
	Href  string
}

type indexView struct {
	Modules  []moduleCard
	Overview *analytics.Overview
}

// IndexPage handles GET /.
func (h *Handler) IndexPage(w http.ResponseWriter, r *http.Request) {
	view := indexView{
		Modules: []moduleCard{
			{"Flight Performance", "On-time metrics, delay patterns and punctuality.", "/flight"},
			{"Customer Experience", "Satisfaction scores, service ratings and passenger feedback.", "/experience"},
			{"Risk Simulation", "Monte-Carlo delay risk under disruption scenarios.", "/risk"},
			{"Cloud Analytics", "Real-time cloud processing and distributed data pipelines.", "/cloud"},
		},
	}
	ov, err := h.svc.Overview(r.Context())
	if err == nil {
		view.Overview = ov
	}
	h.render(w, http.StatusOK, "index", "Analytics Dashboard", view, err)
}

// FlightPage handles GET /flight.
func (h *Handler) FlightPage(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Flight(r.Context())
	if err != nil {
		status, _ := statusFor(err)
		h.render(w, status, "flight", "Flight Performance", (*flight.Summary)(nil), err)
		return
	}
	h.render(w, http.StatusOK, "flight", "Flight Performance", sum, nil)
}

type experienceView struct {
	Summary      *experience.Summary
	AllBars      []bar
	FilteredBars []bar
	ServiceBars  []bar
	Chart        string
}

func scoreBars(dist []experience.ScoreCount) []bar {
	maxVal := 0
	for _, sc := range dist {
		maxVal = max(maxVal, sc.Count)
	}
	bars := make([]bar, 0, len(dist))
	for _, sc := range dist {
		b := bar{Label: fmt.Sprintf("%.0f", sc.Score), Value: fmt.Sprintf("%d", sc.Count)}
		if maxVal > 0 {
			b.Width = 100 * float64(sc.Count) / float64(maxVal)
		}
		bars = append(bars, b)
	}
	return bars
}

// ExperiencePage handles GET /experience?min_distance=.
func (h *Handler) ExperiencePage(w http.ResponseWriter, r *http.Request) {
	minDistance, err := minDistanceFromQuery(r)
	if err != nil {
		h.render(w, http.StatusBadRequest, "experience", "Customer Experience", experienceView{}, err)
		return
	}
	sum, err := h.svc.Experience(r.Context(), minDistance)
	if err != nil {
		status, _ := statusFor(err)
		h.render(w, status, "experience", "Customer Experience", experienceView{}, err)
		return
	}

	view := experienceView{
		Summary:      sum,
		AllBars:      scoreBars(sum.Distribution),
		FilteredBars: scoreBars(sum.FilteredScores),
		Chart:        mermaidBody(visuals.GenerateServiceRatings(sum.ServiceRatings)),
	}
	for _, sr := range sum.ServiceRatings {
		view.ServiceBars = append(view.ServiceBars, bar{
			Label: sr.Service,
			Value: fmt.Sprintf("%.2f", sr.Average),
			Width: 100 * sr.Average / 5,
			Alt:   true,
		})
	}
	h.render(w, http.StatusOK, "experience", "Customer Experience", view, nil)
}

type riskView struct {
	Bounds   simulation.Bounds
	Scenario simulation.Scenario
	Result   *simulation.Result
	Bars     []bar
	Chart    string
}

// RiskPage handles GET /risk?simulations=&threshold=&crisis=.
func (h *Handler) RiskPage(w http.ResponseWriter, r *http.Request) {
	bounds := h.svc.Bounds()
	view := riskView{Bounds: bounds, Scenario: bounds.Defaults()}

	sc, err := scenarioFromQuery(r, bounds)
	view.Scenario = sc
	if err != nil {
		h.render(w, http.StatusBadRequest, "risk", "Risk Simulation", view, err)
		return
	}

	res, err := h.svc.SimulateRisk(r.Context(), sc)
	if err != nil {
		status, _ := statusFor(err)
		h.render(w, status, "risk", "Risk Simulation", view, err)
		return
	}

	view.Result = res
	view.Chart = mermaidBody(visuals.GenerateDelayHistogram(res.Histogram, sc.Threshold))
	maxCount := res.Histogram.MaxCount()
	for i, c := range res.Histogram.Counts {
		if c == 0 {
			continue
		}
		b := bar{
			Label: fmt.Sprintf("%.0f-%.0f", res.Histogram.LowerEdges[i], res.Histogram.LowerEdges[i]+res.Histogram.BinWidth),
			Value: fmt.Sprintf("%d", c),
			Alt:   res.Histogram.LowerEdges[i] >= sc.Threshold,
		}
		if maxCount > 0 {
			b.Width = 100 * float64(c) / float64(maxCount)
		}
		view.Bars = append(view.Bars, b)
	}
	h.render(w, http.StatusOK, "risk", "Risk Simulation", view, nil)
}

type cloudView struct {
	Capabilities []string
	Dataset      analytics.DatasetInfo
}

// CloudPage handles GET /cloud.
func (h *Handler) CloudPage(w http.ResponseWriter, r *http.Request) {
	view := cloudView{
		Capabilities: analytics.CloudCapabilities,
		Dataset:      h.svc.DatasetInfo(r.Context()),
	}
	h.render(w, http.StatusOK, "cloud", "Cloud Analytics", view, nil)
}
