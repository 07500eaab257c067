package mcptool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/visuals"
)

// SimulateInput holds the arguments of simulate_delay_risk.
type SimulateInput struct {
	Simulations      *int     `json:"simulations,omitempty" jsonschema:"Number of Monte-Carlo draws"`
	Threshold        *float64 `json:"threshold,omitempty" jsonschema:"Delay threshold in minutes used for the exceedance probability"`
	CrisisMultiplier *float64 `json:"crisis_multiplier,omitempty" jsonschema:"Factor applied to every simulated delay to model a disruption"`
}

// SimulateOutput is the structured result of simulate_delay_risk.
type SimulateOutput struct {
	Result *simulation.Result `json:"result"`
	Chart  string             `json:"chart"`
}

// ExperienceInput holds the arguments of customer_experience.
type ExperienceInput struct {
	MinDistance *float64 `json:"min_distance,omitempty" jsonschema:"Only passengers flying at least this distance enter the filtered distribution"`
}

// ExperienceOutput is the structured result of customer_experience.
type ExperienceOutput struct {
	Summary      *experience.Summary `json:"summary"`
	Distribution string              `json:"distribution_chart"`
	Services     string              `json:"services_chart"`
}

// FlightOutput is the structured result of flight_performance.
type FlightOutput struct {
	Summary *flight.Summary `json:"summary"`
}

func (s *Server) registerTools() error {
	simSchema, err := s.simulateSchema()
	if err != nil {
		return err
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "simulate_delay_risk",
		Description: "Run a Monte-Carlo simulation of flight departure delays based on the historical delay distribution, " +
			"optionally scaled by a crisis multiplier. Returns the expected delay, the probability of exceeding the threshold " +
			"(percent), the 95th percentile and the worst case, plus a histogram.\n\n" +
			"Results are stochastic: repeated calls differ unless the server runs with a fixed seed. " +
			"Do not extrapolate probabilities beyond what the tool returns.",
		InputSchema: simSchema,
	}, s.handleSimulate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "customer_experience",
		Description: "Summarize passenger satisfaction: average score on a 1-5 scale, score distribution, distance-filtered distribution and inflight service ratings from weakest to strongest.",
	}, s.handleExperience)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "flight_performance",
		Description: "Summarize departure and arrival delays (mean, median, 95th percentile, on-time share) and the mean departure delay per travel class.",
	}, s.handleFlight)

	return nil
}

// simulateSchema derives the input schema and constrains it with the
// interactive bounds.
func (s *Server) simulateSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[SimulateInput](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to derive simulate_delay_risk schema: %w", err)
	}

	b := s.svc.Bounds()
	constrain := func(name string, r simulation.Range) error {
		prop, ok := schema.Properties[name]
		if !ok {
			return fmt.Errorf("schema property %q missing", name)
		}
		prop.Minimum = jsonschema.Ptr(r.Min)
		prop.Maximum = jsonschema.Ptr(r.Max)
		def, err := json.Marshal(r.Default)
		if err != nil {
			return err
		}
		prop.Default = def
		return nil
	}
	for name, r := range map[string]simulation.Range{
		"simulations":       b.Simulations,
		"threshold":         b.Threshold,
		"crisis_multiplier": b.Crisis,
	} {
		if err := constrain(name, r); err != nil {
			return nil, err
		}
	}
	return schema, nil
}

func (s *Server) handleSimulate(ctx context.Context, _ *mcp.CallToolRequest, in SimulateInput) (*mcp.CallToolResult, SimulateOutput, error) {
	sc := s.svc.Bounds().Defaults()
	if in.Simulations != nil {
		sc.Simulations = *in.Simulations
	}
	if in.Threshold != nil {
		sc.Threshold = *in.Threshold
	}
	if in.CrisisMultiplier != nil {
		sc.CrisisMultiplier = *in.CrisisMultiplier
	}

	res, err := s.svc.SimulateRisk(ctx, sc)
	if err != nil {
		log.Warn().Err(err).Msg("simulate_delay_risk failed")
		return nil, SimulateOutput{}, err
	}
	return nil, SimulateOutput{
		Result: res,
		Chart:  visuals.GenerateDelayHistogram(res.Histogram, sc.Threshold),
	}, nil
}

func (s *Server) handleExperience(ctx context.Context, _ *mcp.CallToolRequest, in ExperienceInput) (*mcp.CallToolResult, ExperienceOutput, error) {
	sum, err := s.svc.Experience(ctx, in.MinDistance)
	if err != nil {
		return nil, ExperienceOutput{}, err
	}
	return nil, ExperienceOutput{
		Summary:      sum,
		Distribution: visuals.GenerateScoreDistribution("Satisfaction Scores", sum.Distribution),
		Services:     visuals.GenerateServiceRatings(sum.ServiceRatings),
	}, nil
}

func (s *Server) handleFlight(ctx context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, FlightOutput, error) {
	sum, err := s.svc.Flight(ctx)
	if err != nil {
		return nil, FlightOutput{}, err
	}
	return nil, FlightOutput{Summary: sum}, nil
}
