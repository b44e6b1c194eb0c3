package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	polimcp "github.com/poliscan/poliscan/internal/mcp"
)

var mcpVerbose bool

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().BoolVarP(&mcpVerbose, "verbose", "v", false, "Debug logging")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long:  "Runs poliscan as an MCP (Model Context Protocol) server over stdio.\nExposes tools: analyze, analyze_url, classify, history.",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	srv, err := polimcp.New(polimcp.Config{ConfigPath: configPath}, newLogger(mcpVerbose))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	return srv.Run(cmd.Context())
}
