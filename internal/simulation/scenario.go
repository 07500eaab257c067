package simulation

import (
	"fmt"
	"math"
)

// Scenario holds the parameters of one simulation run.
type Scenario struct {
	Simulations      int     `json:"simulations"`
	Threshold        float64 `json:"threshold"`
	CrisisMultiplier float64 `json:"crisis_multiplier"`
}

// CLIScenario is the fixed scenario used by the text interface.
func CLIScenario() Scenario {
	return Scenario{Simulations: 12000, Threshold: 60, CrisisMultiplier: 1.15}
}

// Validate checks the scenario against the domain of the simulator.
// It never clamps: an out-of-domain value is reported as ErrParameter.
func (s Scenario) Validate() error {
	if s.Simulations < 1 {
		return fmt.Errorf("%w: simulations must be >= 1, got %d", ErrParameter, s.Simulations)
	}
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be a finite number", ErrParameter)
	}
	if !(s.CrisisMultiplier > 0) || math.IsInf(s.CrisisMultiplier, 0) {
		return fmt.Errorf("%w: crisis multiplier must be > 0, got %v", ErrParameter, s.CrisisMultiplier)
	}
	return nil
}

// Range describes an interactive control: inclusive limits, slider step and
// initial value.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Bounds limits the scenarios a user may choose interactively.
type Bounds struct {
	Simulations Range `json:"simulations"`
	Threshold   Range `json:"threshold"`
	Crisis      Range `json:"crisis_multiplier"`
}

// DashboardBounds returns the ranges offered by the graphical dashboard.
func DashboardBounds() Bounds {
	return Bounds{
		Simulations: Range{Min: 2000, Max: 50000, Step: 2000, Default: 12000},
		Threshold:   Range{Min: 15, Max: 180, Step: 5, Default: 60},
		Crisis:      Range{Min: 1.0, Max: 2.5, Step: 0.05, Default: 1.15},
	}
}

// WithMaxSimulations lowers the simulation ceiling, e.g. to bound latency.
// A limit that is not below the current maximum leaves the bounds unchanged.
func (b Bounds) WithMaxSimulations(limit int) Bounds {
	if limit <= 0 || float64(limit) >= b.Simulations.Max {
		return b
	}
	b.Simulations.Max = float64(limit)
	if b.Simulations.Min > b.Simulations.Max {
		b.Simulations.Min = b.Simulations.Max
	}
	if b.Simulations.Default > b.Simulations.Max {
		b.Simulations.Default = b.Simulations.Max
	}
	return b
}

// Defaults returns the scenario preselected by the controls.
func (b Bounds) Defaults() Scenario {
	return Scenario{
		Simulations:      int(b.Simulations.Default),
		Threshold:        b.Threshold.Default,
		CrisisMultiplier: b.Crisis.Default,
	}
}

// Validate checks the scenario domain and then the interactive ranges.
func (b Bounds) Validate(s Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !b.Simulations.Contains(float64(s.Simulations)) {
		return fmt.Errorf("%w: simulations must be within [%.0f, %.0f], got %d",
			ErrParameter, b.Simulations.Min, b.Simulations.Max, s.Simulations)
	}
	if !b.Threshold.Contains(s.Threshold) {
		return fmt.Errorf("%w: threshold must be within [%.0f, %.0f] minutes, got %v",
			ErrParameter, b.Threshold.Min, b.Threshold.Max, s.Threshold)
	}
	if !b.Crisis.Contains(s.CrisisMultiplier) {
		return fmt.Errorf("%w: crisis multiplier must be within [%.2f, %.2f], got %v",
			ErrParameter, b.Crisis.Min, b.Crisis.Max, s.CrisisMultiplier)
	}
	return nil
}
