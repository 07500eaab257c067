// Package analytics binds the dataset to the analysis modules. Every surface
// (menu, web, MCP, CLI) talks to a Service.
package analytics

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"sia-analytics/internal/dataset"
	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
)

// Service serves the analysis modules from one dataset source.
// The loaded frame is cached; simulations never share state.
type Service struct {
	source dataset.Source
	bounds simulation.Bounds
	seed   *uint64

	mu    sync.Mutex
	frame *dataset.Frame
}

// NewService creates a Service. A nil seed makes every run draw fresh randomness.
func NewService(source dataset.Source, bounds simulation.Bounds, seed *uint64) *Service {
	return &Service{
		source: source,
		bounds: bounds,
		seed:   seed,
	}
}

// Bounds returns the interactive scenario limits.
func (s *Service) Bounds() simulation.Bounds {
	return s.bounds
}

// Frame returns the dataset, loading it on first use. A failed load is not
// cached so a later call can succeed once the file appears.
func (s *Service) Frame(ctx context.Context) (*dataset.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frame != nil {
		return s.frame, nil
	}
	f, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.frame = f
	return f, nil
}

// Baseline derives the historical delay distribution.
func (s *Service) Baseline(ctx context.Context) (simulation.Baseline, error) {
	f, err := s.Frame(ctx)
	if err != nil {
		return simulation.Baseline{}, err
	}
	delays, err := dataset.HistoricalDelays(f)
	if err != nil {
		return simulation.Baseline{}, err
	}
	return simulation.DeriveBaseline(delays)
}

// SimulateRisk runs an interactive scenario, which must respect the bounds.
func (s *Service) SimulateRisk(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error) {
	if err := s.bounds.Validate(sc); err != nil {
		return nil, err
	}
	return s.run(ctx, sc)
}

// SimulateFixed runs a scenario checked only against the simulator domain,
// as the text interface and the batch command do.
func (s *Service) SimulateFixed(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return s.run(ctx, sc)
}

func (s *Service) run(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error) {
	b, err := s.Baseline(ctx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts []simulation.Option
	if s.seed != nil {
		opts = append(opts, simulation.WithSeed(*s.seed))
	}
	res, err := simulation.NewEngine(opts...).Run(b, sc)
	if err != nil {
		return nil, err
	}
	res.ID = uuid.NewString()

	log.Debug().
		Str("run_id", res.ID).
		Int("simulations", sc.Simulations).
		Float64("threshold", sc.Threshold).
		Float64("crisis", sc.CrisisMultiplier).
		Float64("expected", res.Indicators.Expected).
		Float64("probability", res.Indicators.Probability).
		Bool("stddev_fallback", b.Fallback).
		Msg("Delay risk simulated")
	return res, nil
}

// Experience builds the customer experience panels.
func (s *Service) Experience(ctx context.Context, minDistance *float64) (*experience.Summary, error) {
	f, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return experience.Summarize(f, minDistance)
}

// ExperienceBinary builds the condensed view of the text interface.
func (s *Service) ExperienceBinary(ctx context.Context) (*experience.BinarySummary, error) {
	f, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return experience.SummarizeBinary(f)
}

// Flight builds the flight performance panels.
func (s *Service) Flight(ctx context.Context) (*flight.Summary, error) {
	f, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}
	return flight.Summarize(f), nil
}

// Overview gathers every panel of the landing page. Panels that fail are
// left empty and reported in Errors.
type Overview struct {
	Records    int                  `json:"records"`
	Columns    []string             `json:"columns"`
	Flight     *flight.Summary      `json:"flight,omitempty"`
	Experience *experience.Summary  `json:"experience,omitempty"`
	Baseline   *simulation.Baseline `json:"baseline,omitempty"`
	Errors     map[string]string    `json:"errors,omitempty"`
}

// Overview loads the dataset once and computes the panels concurrently.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	f, err := s.Frame(ctx)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Records: f.Len(),
		Columns: f.Columns(),
	}

	var (
		mu   sync.Mutex
		errs = make(map[string]string)
	)
	record := func(panel string, err error) {
		mu.Lock()
		errs[panel] = err.Error()
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov.Flight = flight.Summarize(f)
		return nil
	})
	g.Go(func() error {
		sum, err := experience.Summarize(f, nil)
		if err != nil {
			record("experience", err)
			return nil
		}
		ov.Experience = sum
		return nil
	})
	g.Go(func() error {
		b, err := s.Baseline(gctx)
		if err != nil {
			record("risk", err)
			return nil
		}
		ov.Baseline = &b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(errs) > 0 {
		ov.Errors = errs
	}
	return ov, nil
}
