// Package mcptool exposes the analytics modules as Model Context Protocol tools
// over stdio.
package mcptool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"sia-analytics/internal/experience"
	"sia-analytics/internal/flight"
	"sia-analytics/internal/simulation"
)

// ServerName identifies the server during the MCP handshake.
const ServerName = "sia-analytics"

// Analyzer is what the tools need from the analytics service.
type Analyzer interface {
	Bounds() simulation.Bounds
	SimulateRisk(ctx context.Context, sc simulation.Scenario) (*simulation.Result, error)
	Experience(ctx context.Context, minDistance *float64) (*experience.Summary, error)
	Flight(ctx context.Context) (*flight.Summary, error)
}

// Server holds the state for the MCP server.
type Server struct {
	svc    Analyzer
	server *mcp.Server
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(svc Analyzer, version string) (*Server, error) {
	s := &Server{
		svc: svc,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    ServerName,
			Version: version,
		}, nil),
	}
	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// Run serves MCP over stdin/stdout until the client disconnects or ctx ends.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Str("server", ServerName).Msg("Serving MCP over stdio")
	if err := s.server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
