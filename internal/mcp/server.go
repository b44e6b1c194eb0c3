// Package mcp exposes privacy policy analysis as MCP tools so agents can
// assess policies in their own workflows.
package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/poliscan/poliscan/internal/analyze"
	"github.com/poliscan/poliscan/internal/config"
	"github.com/poliscan/poliscan/internal/history"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string
}

// Server wraps the MCP SDK server around the analysis pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	analyzer  *analyze.Analyzer
	store     *history.Store
	logger    *slog.Logger
}

// New creates an MCP server with loaded configuration and tools. History is
// enabled when the config names a database path.
func New(mcpCfg Config, logger *slog.Logger) (*Server, error) {
	cfg, err := config.Load(mcpCfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	var store *history.Store
	if cfg.History.Path != "" {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
	}

	opts := []analyze.Option{analyze.WithLogger(logger)}
	if store != nil {
		opts = append(opts, analyze.WithHistory(store))
	}

	s := &Server{
		analyzer: analyze.New(cfg, opts...),
		store:    store,
		logger:   logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "poliscan",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the history store if configured.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

// registerTools adds all poliscan tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "poliscan_analyze",
		Description: "Assess the privacy risk of raw policy text. Returns a 0-100 score, risk level, factor breakdown, and recommendations.",
	}, s.handleAnalyze)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "poliscan_analyze_url",
		Description: "Fetch a privacy policy page by URL and assess its privacy risk.",
	}, s.handleAnalyzeURL)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "poliscan_classify",
		Description: "Classify a single data type label (e.g. 'Email Address') into the risk taxonomy without running a full analysis.",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "poliscan_history",
		Description: "List recent analysis runs with their scores and risk levels.",
	}, s.handleHistory)
}
