package commands

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sia-analytics/internal/web"
)

var (
	serveAddr string
	serveOpen bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the graphical dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		return runServe(cmd.Context(), cmd, addr, serveOpen)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serveOpen, "open", false, "open the dashboard in the default browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cmd *cobra.Command, addr string, open bool) error {
	handler, err := web.NewRouter(newService(cfg.Seed), currentTheme(), cfg.AllowedOrigins)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	url := dashboardURL(ln.Addr())
	fmt.Fprintf(cmd.OutOrStdout(), "Dashboard available at %s\n", url)
	if open {
		if err := browser.OpenURL(url); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("Failed to open browser")
		}
	}

	err = web.Serve(ctx, ln, handler)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// dashboardURL turns a listen address into a browsable URL; wildcard hosts
// become localhost.
func dashboardURL(addr net.Addr) string {
	host, port, err := net.SplitHostPort(addr.String())
	if err != nil {
		return "http://" + addr.String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
