package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"sia-analytics/internal/simulation"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// SimulateRequest is the body of POST /api/risk/simulate. Omitted fields,
// or an empty body, take the dashboard defaults.
type SimulateRequest struct {
	Simulations      *int     `json:"simulations,omitempty"`
	Threshold        *float64 `json:"threshold,omitempty"`
	CrisisMultiplier *float64 `json:"crisis_multiplier,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}

// statusFor maps a domain error onto the HTTP status returned to the caller.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, simulation.ErrParameter):
		return http.StatusBadRequest, "parameter"
	case errors.Is(err, simulation.ErrData):
		return http.StatusUnprocessableEntity, "data"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, kind := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}

// scenarioFromQuery reads simulations, threshold and crisis from the query
// string. Missing parameters take the dashboard defaults.
func scenarioFromQuery(r *http.Request, b simulation.Bounds) (simulation.Scenario, error) {
	sc := b.Defaults()
	q := r.URL.Query()

	if v := q.Get("simulations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return sc, fmt.Errorf("%w: simulations must be an integer, got %q", simulation.ErrParameter, v)
		}
		sc.Simulations = n
	}
	if v := q.Get("threshold"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sc, fmt.Errorf("%w: threshold must be a number, got %q", simulation.ErrParameter, v)
		}
		sc.Threshold = t
	}
	if v := q.Get("crisis"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sc, fmt.Errorf("%w: crisis must be a number, got %q", simulation.ErrParameter, v)
		}
		sc.CrisisMultiplier = c
	}
	return sc, nil
}

func minDistanceFromQuery(r *http.Request) (*float64, error) {
	v := r.URL.Query().Get("min_distance")
	if v == "" {
		return nil, nil
	}
	d, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: min_distance must be a number, got %q", simulation.ErrParameter, v)
	}
	return &d, nil
}

// Health handles GET /health. The dataset is probed so a missing file shows up
// as degraded rather than down.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	info := h.svc.DatasetInfo(r.Context())
	body := map[string]any{
		"status":    "ok",
		"dataset":   "loaded",
		"records":   info.Records,
		"timestamp": time.Now().UTC(),
	}
	if !info.Loaded {
		body["status"] = "degraded"
		body["dataset"] = "unavailable"
		body["error"] = info.Error
	}
	writeJSON(w, http.StatusOK, body)
}

// GetOverview handles GET /api/overview.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.svc.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// GetFlight handles GET /api/flight.
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Flight(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GetExperience handles GET /api/experience?min_distance=.
func (h *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	minDistance, err := minDistanceFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sum, err := h.svc.Experience(r.Context(), minDistance)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GetBounds handles GET /api/risk/bounds.
func (h *Handler) GetBounds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Bounds())
}

// GetRisk handles GET /api/risk?simulations=&threshold=&crisis=.
func (h *Handler) GetRisk(w http.ResponseWriter, r *http.Request) {
	sc, err := scenarioFromQuery(r, h.svc.Bounds())
	if err != nil {
		writeError(w, err)
		return
	}
	h.simulate(w, r, sc)
}

// PostSimulate handles POST /api/risk/simulate.
func (h *Handler) PostSimulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", simulation.ErrParameter, err))
		return
	}

	sc := h.svc.Bounds().Defaults()
	if req.Simulations != nil {
		sc.Simulations = *req.Simulations
	}
	if req.Threshold != nil {
		sc.Threshold = *req.Threshold
	}
	if req.CrisisMultiplier != nil {
		sc.CrisisMultiplier = *req.CrisisMultiplier
	}
	h.simulate(w, r, sc)
}

func (h *Handler) simulate(w http.ResponseWriter, r *http.Request, sc simulation.Scenario) {
	res, err := h.svc.SimulateRisk(r.Context(), sc)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, res)
}
