package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list
documents, read their chunks and edit them.

By default, the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead, e.g. for MCP Inspector.

Examples:
  # Stdio mode (default)
  chunkctl mcp

  # HTTP mode
  chunkctl mcp --http :8080

Client configuration:
  {
    "mcpServers": {
      "chunkctl": {
        "command": "/path/to/chunkctl",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if session == nil {
		return errSessionNotConfigured
	}

	ports := &mcp.Ports{
		Directory: session,
		Browser:   session,
		Editor:    session,
		Observer:  session,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
