package commands

import (
	"github.com/spf13/cobra"

	"sia-analytics/internal/menu"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive text menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := menu.New(newService(cfg.Seed), cmd.InOrStdin(), cmd.OutOrStdout())
		return m.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}
