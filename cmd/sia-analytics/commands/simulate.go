package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sia-analytics/internal/report"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/visuals"
)

var simScenario = simulation.CLIScenario()

var (
	simSeed  uint64
	simJSON  bool
	simChart bool
	simPDF   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one delay risk simulation and print the indicators",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed = &simSeed
		}

		res, err := newService(seed).SimulateFixed(cmd.Context(), simScenario)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if simJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			printIndicators(out, res)
		}

		if simChart {
			fmt.Fprintln(out, visuals.GenerateDelayHistogram(res.Histogram, res.Scenario.Threshold))
		}

		if simPDF != "" {
			if err := writePDF(simPDF, res); err != nil {
				return err
			}
			log.Info().Str("path", simPDF).Msg("Risk report written")
		}
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.IntVar(&simScenario.Simulations, "simulations", simScenario.Simulations, "number of Monte-Carlo draws")
	f.Float64Var(&simScenario.Threshold, "threshold", simScenario.Threshold, "delay threshold in minutes")
	f.Float64Var(&simScenario.CrisisMultiplier, "crisis", simScenario.CrisisMultiplier, "crisis multiplier applied to every draw")
	f.Uint64Var(&simSeed, "seed", 0, "fix the random seed (overrides SIMULATION_SEED)")
	f.BoolVar(&simJSON, "json", false, "print the full result as JSON")
	f.BoolVar(&simChart, "chart", false, "print the histogram as a Mermaid chart")
	f.StringVar(&simPDF, "pdf", "", "write a PDF risk report to this path")
	rootCmd.AddCommand(simulateCmd)
}

func printIndicators(w io.Writer, res *simulation.Result) {
	ind := res.Indicators
	fmt.Fprintf(w, "Historical mean delay: %.2f min (std %.2f)\n", res.Baseline.Mean, res.Baseline.StdDev)
	fmt.Fprintf(w, "Simulations: %d, crisis multiplier: %.2f\n", res.Scenario.Simulations, res.Scenario.CrisisMultiplier)
	fmt.Fprintf(w, "Expected delay: %.2f min\n", ind.Expected)
	fmt.Fprintf(w, "P(Delay > %.0f min): %.2f%%\n", res.Scenario.Threshold, ind.Probability)
	fmt.Fprintf(w, "95th percentile: %.2f min\n", ind.P95)
	fmt.Fprintf(w, "Worst case: %.2f min\n", ind.Worst)
}

func writePDF(path string, res *simulation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WriteRiskPDF(f, res, currentTheme()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
