package cli

import (
	"github.com/spf13/cobra"

	"github.com/hanci-tools/hanci-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Starts the Model Context Protocol server so AI assistants can query
the vocabulary and saved word lists.

By default the server communicates over stdio using JSON-RPC. Use
--http to serve over HTTP instead, for the MCP Inspector or remote
access.

Examples:
  # Stdio mode (default, for Claude Desktop)
  hanci mcp

  # HTTP mode
  hanci mcp --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "hanci": {
        "command": "/path/to/hanci",
        "args": ["mcp"]
      }
    }
  }`,
	RunE: runMCP,
}

var mcpHTTPAddr string

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Vocabulary: vocabularyService,
		WordLists:  wordListService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		cmd.Printf("MCP server listening on %s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
