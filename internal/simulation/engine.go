package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Engine performs the Monte-Carlo delay simulation.
// An Engine owns its random source and is not safe for concurrent use;
// create one per run.
type Engine struct {
	src rand.Source
}

// Result holds everything derived from one simulation run.
// The raw simulated delays are discarded once the indicators are computed.
type Result struct {
	ID         string          `json:"id,omitempty"`
	Baseline   Baseline        `json:"baseline"`
	Scenario   Scenario        `json:"scenario"`
	Indicators RiskIndicators  `json:"indicators"`
	Histogram  *DelayHistogram `json:"histogram"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed pins the random source so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.SetSeed(seed)
	}
}

// NewEngine returns an engine seeded from the clock unless WithSeed is given.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		src: rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetSeed resets the random source to a deterministic state.
func (e *Engine) SetSeed(seed uint64) {
	e.src = rand.NewPCG(seed, seed)
}

// Simulate draws n delays from Normal(mean, stddev), floors each at zero and
// scales the result by the crisis multiplier.
func (e *Engine) Simulate(mean, stddev float64, n int, crisisMultiplier float64) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: sample count must be >= 1, got %d", ErrParameter, n)
	}
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: mean must be a finite number", ErrParameter)
	}
	if !(stddev > 0) || math.IsInf(stddev, 0) {
		return nil, fmt.Errorf("%w: stddev must be > 0, got %v", ErrParameter, stddev)
	}

	dist := distuv.Normal{Mu: mean, Sigma: stddev, Src: e.src}
	draws := make([]float64, n)
	for i := range draws {
		draws[i] = dist.Rand()
	}

	return ClipAndScale(draws, crisisMultiplier)
}

// ClipAndScale floors every value at zero and then multiplies it by the
// crisis multiplier. The input is left untouched.
func ClipAndScale(values []float64, crisisMultiplier float64) ([]float64, error) {
	if !(crisisMultiplier > 0) || math.IsInf(crisisMultiplier, 0) {
		return nil, fmt.Errorf("%w: crisis multiplier must be > 0, got %v", ErrParameter, crisisMultiplier)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		out[i] = v * crisisMultiplier
	}
	return out, nil
}

// Run executes a full scenario against a baseline.
func (e *Engine) Run(b Baseline, s Scenario) (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	delays, err := e.Simulate(b.Mean, b.StdDev, s.Simulations, s.CrisisMultiplier)
	if err != nil {
		return nil, err
	}

	indicators, err := CalculateIndicators(delays, s.Threshold)
	if err != nil {
		return nil, err
	}

	return &Result{
		Baseline:   b,
		Scenario:   s,
		Indicators: indicators,
		Histogram:  NewDelayHistogram(delays),
	}, nil
}
