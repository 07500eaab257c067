package web

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sia-analytics/internal/analytics"
	"sia-analytics/internal/dataset"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/theme"
)

const surveyCSV = `Unnamed: 0,id,Class,Flight Distance,Inflight wifi service,Cleanliness,Departure Delay in Minutes,Arrival Delay in Minutes,satisfaction
0,1,Eco,460,3,5,25,18,neutral or dissatisfied
1,2,Business,235,3,1,1,6,neutral or dissatisfied
2,3,Business,1142,2,5,0,0,satisfied
3,4,Business,562,2,2,11,9,neutral or dissatisfied
4,5,Eco,214,3,3,0,0,satisfied
5,6,Eco Plus,1800,4,4,95,102,satisfied
`

func newTestRouter(t *testing.T, csv string) http.Handler {
	t.Helper()
	f, err := dataset.ReadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	seed := uint64(42)
	svc := analytics.NewService(dataset.StaticSource{Frame: f}, simulation.DashboardBounds(), &seed)

	h, err := NewRouter(svc, theme.Default(), []string{"http://localhost:8501"})
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, surveyCSV), http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["records"] != float64(6) {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestGetRisk(t *testing.T) {
	h := newTestRouter(t, surveyCSV)

	rec := do(t, h, http.MethodGet, "/api/risk", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res simulation.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Scenario != simulation.DashboardBounds().Defaults() {
		t.Errorf("expected the default scenario, got %+v", res.Scenario)
	}
	if res.Histogram == nil || res.Histogram.Total()+res.Histogram.Omitted != 12000 {
		t.Error("histogram should cover every simulation")
	}
	if res.Indicators.P95 > res.Indicators.Worst {
		t.Errorf("P95 %v above worst case %v", res.Indicators.P95, res.Indicators.Worst)
	}
}

func TestRiskAPI_Errors(t *testing.T) {
	h := newTestRouter(t, surveyCSV)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		kind   string
	}{
		{"simulations below range", http.MethodGet, "/api/risk?simulations=100", "", http.StatusBadRequest, "parameter"},
		{"threshold not a number", http.MethodGet, "/api/risk?threshold=abc", "", http.StatusBadRequest, "parameter"},
		{"crisis above range", http.MethodGet, "/api/risk?crisis=3", "", http.StatusBadRequest, "parameter"},
		{"unknown body field", http.MethodPost, "/api/risk/simulate", `{"runs":5}`, http.StatusBadRequest, "parameter"},
		{"malformed body", http.MethodPost, "/api/risk/simulate", `{`, http.StatusBadRequest, "parameter"},
		{"bad min distance", http.MethodGet, "/api/experience?min_distance=far", "", http.StatusBadRequest, "parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var body ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body.Kind != tt.kind || body.Error == "" {
				t.Errorf("unexpected error body: %+v", body)
			}
		})
	}
}

func TestPostSimulate(t *testing.T) {
	rec := do(t, newTestRouter(t, surveyCSV), http.MethodPost, "/api/risk/simulate",
		`{"simulations": 4000, "threshold": 90, "crisis_multiplier": 2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res simulation.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	want := simulation.Scenario{Simulations: 4000, Threshold: 90, CrisisMultiplier: 2}
	if res.Scenario != want {
		t.Errorf("scenario = %+v, want %+v", res.Scenario, want)
	}
}

func TestPostSimulate_EmptyBodyUsesDefaults(t *testing.T) {
	h := newTestRouter(t, surveyCSV)
	want := simulation.DashboardBounds().Defaults()

	for _, body := range []string{"", "{}"} {
		rec := do(t, h, http.MethodPost, "/api/risk/simulate", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("body %q: expected 200, got %d: %s", body, rec.Code, rec.Body.String())
		}
		var res simulation.Result
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatal(err)
		}
		if res.Scenario != want {
			t.Errorf("body %q: scenario = %+v, want %+v", body, res.Scenario, want)
		}
	}
}

func TestDataErrorsAreUnprocessable(t *testing.T) {
	h := newTestRouter(t, "id,satisfaction\n1,satisfied\n")

	rec := do(t, h, http.MethodGet, "/api/risk", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/risk", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for the page, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "required delay column not found") {
		t.Error("page should show the data error")
	}
}

func TestPages(t *testing.T) {
	h := newTestRouter(t, surveyCSV)

	tests := []struct {
		target string
		status int
		expect []string
	}{
		{"/", http.StatusOK, []string{"Risk Simulation", "href=\"/cloud\"", "Mean Departure Delay"}},
		{"/flight", http.StatusOK, []string{"6 records analysed", "Departure Delay in Minutes", "Eco Plus"}},
		{"/experience", http.StatusOK, []string{"Average Satisfaction Score", "Inflight wifi service", "xychart-beta horizontal"}},
		{"/experience?min_distance=1000", http.StatusOK, []string{"2 passengers flew at least 1000"}},
		{"/risk", http.StatusOK, []string{"Expected Delay", "P(Delay &gt; 60)", "xychart-beta"}},
		{"/risk?threshold=120&crisis=1.5", http.StatusOK, []string{"P(Delay &gt; 120)", "value=\"1.50\""}},
		{"/risk?simulations=999999", http.StatusBadRequest, []string{"simulations must be within [2000, 50000]"}},
		{"/cloud", http.StatusOK, []string{"Distributed data processing", "Records Loaded"}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("unexpected content type %q", ct)
			}
			body := rec.Body.String()
			for _, want := range tt.expect {
				if !strings.Contains(body, want) {
					t.Errorf("page missing %q", want)
				}
			}
		})
	}
}

func TestPlainThemeSkipsCharts(t *testing.T) {
	f, err := dataset.ReadCSV(strings.NewReader(surveyCSV))
	if err != nil {
		t.Fatal(err)
	}
	svc := analytics.NewService(dataset.StaticSource{Frame: f}, simulation.DashboardBounds(), nil)
	h, err := NewRouter(svc, theme.Plain(), nil)
	if err != nil {
		t.Fatal(err)
	}

	rec := do(t, h, http.MethodGet, "/risk", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "mermaid") {
		t.Error("plain pages should not load the chart renderer")
	}
	if !strings.Contains(rec.Body.String(), "class=\"bar") {
		t.Error("plain pages should still show the inline bars")
	}
}

func TestCORS(t *testing.T) {
	h := newTestRouter(t, surveyCSV)

	req := httptest.NewRequest(http.MethodOptions, "/api/risk/simulate", nil)
	req.Header.Set("Origin", "http://localhost:8501")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:8501" {
		t.Errorf("expected the origin to be allowed, got %q", got)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	h := newTestRouter(t, surveyCSV)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, h)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("server not reachable: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected a clean shutdown, got %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
