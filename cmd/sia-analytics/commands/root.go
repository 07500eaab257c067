package commands

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sia-analytics/internal/analytics"
	"sia-analytics/internal/config"
	"sia-analytics/internal/dataset"
	"sia-analytics/internal/logging"
	"sia-analytics/internal/simulation"
	"sia-analytics/internal/theme"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "sia-analytics",
	Short: "Airline operations analytics with Monte-Carlo delay risk simulation",
	Long: `Analytics for airline operations: flight performance, customer experience and a
Monte-Carlo simulator estimating departure delay risk under disruption scenarios.

Without a subcommand the graphical dashboard is served.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Console first so configuration loading can already log.
		if err := logging.Init(logging.Options{Verbose: verbose}); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}

		if err := logging.Init(logging.Options{Verbose: verbose, Dir: cfg.LogDir}); err != nil {
			log.Warn().Err(err).Msg("File logging disabled")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("dataset", cfg.DatasetPath).
			Msg("SIA analytics starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), cmd, cfg.HTTPAddr, false)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// newService builds the analytics service from the loaded configuration.
// A nil seed keeps simulations non-deterministic.
func newService(seed *uint64) *analytics.Service {
	source := dataset.Open(cfg.DatasetPath, cfg.DatasetTable)
	bounds := simulation.DashboardBounds().WithMaxSimulations(cfg.MaxSimulations)
	return analytics.NewService(source, bounds, seed)
}

func currentTheme() theme.Theme {
	return theme.Select(cfg.EnableTheme)
}
