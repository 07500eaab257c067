// Package menu implements the interactive text interface.
package menu

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"sia-analytics/internal/analytics"
	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
)

// Analyzer is what the menu needs from the analytics service.
type Analyzer interface {
	Flight(ctx context.Context) (*flight.Summary, error)
	ExperienceBinary(ctx context.Context) (*experience.BinarySummary, error)
	SimulateFixed(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error)
	DatasetInfo(ctx context.Context) analytics.DatasetInfo
}

// Menu drives the numbered module loop.
type Menu struct {
	svc     Analyzer
	in      *bufio.Scanner
	out     io.Writer
	options []option
}

type option struct {
	key   string
	label string
	intro string
	run   func(ctx context.Context) error
}

// New creates a menu reading choices from in and printing to out.
func New(svc Analyzer, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
	}
	m.options = []option{
		{"1", "Flight Performance Analytics", "Running Flight Performance Module...", m.runFlight},
		{"2", "Customer Experience Analytics", "Running Customer Experience Module...", m.runExperience},
		{"3", "Risk & Scenario Simulation", "Running Risk Simulation Module...", m.runRisk},
		{"4", "Cloud Analytics", "Running Cloud Analytics Module...", m.runCloud},
	}
	return m
}

// Run loops until the user exits, the input ends or ctx is canceled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printBanner()
		fmt.Fprint(m.out, "Enter option (1-5): ")

		choice, ok := m.readLine()
		if !ok {
			fmt.Fprintln(m.out)
			log.Info().Msg("Menu input closed")
			return m.in.Err()
		}

		if choice == "5" {
			fmt.Fprintln(m.out, "\nExiting system. Goodbye!")
			log.Info().Msg("Menu exited")
			return nil
		}

		opt, found := m.lookup(choice)
		if !found {
			fmt.Fprintln(m.out, "\nInvalid option. Please enter a number from 1-5.")
			log.Warn().Str("choice", choice).Msg("Invalid menu selection")
		} else {
			log.Info().Str("module", opt.label).Msg("Menu module selected")
			fmt.Fprintf(m.out, "\n[CLI] %s\n\n", opt.intro)
			if err := opt.run(ctx); err != nil {
				fmt.Fprintf(m.out, "ERROR: %v\n", err)
				log.Error().Err(err).Str("module", opt.label).Msg("Menu module failed")
			}
		}

		fmt.Fprint(m.out, "\nPress Enter to return to the main menu...")
		if _, ok := m.readLine(); !ok {
			fmt.Fprintln(m.out)
			return m.in.Err()
		}
	}
}

func (m *Menu) printBanner() {
	fmt.Fprintln(m.out, "===========================================")
	fmt.Fprintln(m.out, " Singapore Airlines Analytics System (CLI) ")
	fmt.Fprintln(m.out, "===========================================")
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "Select an analytics module:")
	for _, o := range m.options {
		fmt.Fprintf(m.out, "%s. %s\n", o.key, o.label)
	}
	fmt.Fprintln(m.out, "5. Exit System")
	fmt.Fprintln(m.out)
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) lookup(choice string) (option, bool) {
	for _, o := range m.options {
		if o.key == choice {
			return o, true
		}
	}
	return option{}, false
}

func (m *Menu) runFlight(ctx context.Context) error {
	sum, err := m.svc.Flight(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Records analysed: %d\n", sum.Records)
	for _, d := range []*flight.DelayStats{sum.Departure, sum.Arrival} {
		if d == nil {
			continue
		}
		fmt.Fprintf(m.out, "%s: mean %.2f, median %.2f, 95th percentile %.2f, worst %.0f, on time %.1f%%\n",
			d.Column, d.Mean, d.Median, d.P95, d.Worst, d.OnTimeShare)
	}
	if sum.MeanDistance != nil {
		fmt.Fprintf(m.out, "Average flight distance: %.0f\n", *sum.MeanDistance)
	}
	for _, c := range sum.ByClass {
		fmt.Fprintf(m.out, "  %-10s %6d flights, mean departure delay %.2f min\n", c.Class, c.Flights, c.MeanDelay)
	}
	return nil
}

func (m *Menu) runExperience(ctx context.Context) error {
	sum, err := m.svc.ExperienceBinary(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Average satisfaction score: %.2f\n", sum.AverageScore)
	fmt.Fprintln(m.out, "Satisfaction breakdown:")
	for _, l := range sum.Labels {
		fmt.Fprintf(m.out, "  %s: %d\n", l.Label, l.Count)
	}
	return nil
}

func (m *Menu) runRisk(ctx context.Context) error {
	res, err := m.svc.SimulateFixed(ctx, simulation.CLIScenario())
	if err != nil {
		return err
	}

	ind := res.Indicators
	fmt.Fprintf(m.out, "Historical mean delay: %.2f min (std %.2f)\n", res.Baseline.Mean, res.Baseline.StdDev)
	fmt.Fprintf(m.out, "Simulations: %d, crisis multiplier: %.2f\n", res.Scenario.Simulations, res.Scenario.CrisisMultiplier)
	fmt.Fprintf(m.out, "Expected delay: %.2f min\n", ind.Expected)
	fmt.Fprintf(m.out, "P(Delay > %.0f min): %.2f%%\n", res.Scenario.Threshold, ind.Probability)
	fmt.Fprintf(m.out, "95th percentile: %.2f min\n", ind.P95)
	fmt.Fprintf(m.out, "Worst case: %.2f min\n", ind.Worst)
	return nil
}

func (m *Menu) runCloud(ctx context.Context) error {
	fmt.Fprintln(m.out, "This module demonstrates:")
	for _, c := range analytics.CloudCapabilities {
		fmt.Fprintf(m.out, "- %s\n", c)
	}

	info := m.svc.DatasetInfo(ctx)
	if !info.Loaded {
		fmt.Fprintf(m.out, "Dataset unavailable: %s\n", info.Error)
		return nil
	}
	fmt.Fprintf(m.out, "Dataset loaded: %d records across %d columns\n", info.Records, len(info.Columns))
	return nil
}
