// Package mcp provides an MCP (Model Context Protocol) server exposing the
// bionet converter as tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/bionet/internal/config"
	"github.com/nvandessel/bionet/internal/logging"
	"github.com/nvandessel/bionet/internal/ratelimit"
)

// Server wraps the MCP SDK server with the converter's configuration.
type Server struct {
	server       *sdk.Server
	defaults     *config.BionetConfig
	logger       *slog.Logger
	decisions    *logging.DecisionLogger
	toolLimiters ratelimit.ToolLimiters
	roots        []string
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "bionet")
	Version string // Server version

	// Defaults supplies every build setting a tool call leaves unset.
	Defaults *config.BionetConfig

	// Logger receives one line per tool call. May be nil.
	Logger *slog.Logger

	// Decisions records build decisions. May be nil.
	Decisions *logging.DecisionLogger

	// Roots lists the directories tool calls may read from and write to.
	// Empty means the directories holding the default workbook and output.
	Roots []string
}

// NewServer creates a new MCP server with the bionet tools registered.
func NewServer(cfg *Config) (*Server, error) {
	if cfg.Defaults == nil {
		return nil, fmt.Errorf("server defaults are required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server:       mcpServer,
		defaults:     cfg.Defaults,
		logger:       logger,
		decisions:    cfg.Decisions,
		toolLimiters: ratelimit.NewToolLimiters(),
		roots:        cfg.Roots,
	}
	if len(s.roots) == 0 {
		s.roots = []string{
			filepath.Dir(cfg.Defaults.Source),
			filepath.Dir(cfg.Defaults.Output.Path),
		}
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &sdk.StdioTransport{})
}
