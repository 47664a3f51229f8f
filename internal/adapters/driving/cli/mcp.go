package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/norka/internal/adapters/driving/mcp"
	"github.com/custodia-labs/norka/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can read and
edit your notes.

By default, the server communicates over stdio using JSON-RPC. Use --port
to serve streamable HTTP instead, for example to try it with MCP Inspector.

Examples:
  # Stdio mode (default)
  norka mcp serve

  # HTTP mode
  norka mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "norka": {
        "command": "/path/to/norka",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{Document: documentService})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	// stdout carries the protocol, so the ready line goes to the log.
	logger.Info("MCP server ready on stdio")
	return server.Run(cmd.Context())
}
