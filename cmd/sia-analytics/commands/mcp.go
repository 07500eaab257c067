package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"sia-analytics/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the analytics tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcptool.NewServer(newService(cfg.Seed), Version)
		if err != nil {
			return err
		}
		if err := srv.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
