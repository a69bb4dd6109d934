package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	postsyncmcp "github.com/gorewood/postsync/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run postsync as a Model Context Protocol (MCP) server over stdio.

Flags, environment and postsync.yaml supply the defaults; each tool call may
override the export and output directories.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "postsync": {
        "command": "postsync",
        "args": ["serve", "--export-dir", "/path/to/export"]
      }
    }
  }

Available tools: inspect_export, import_posts, list_posts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			server := postsyncmcp.NewServer(buildVersion(), postsyncmcp.Deps{
				Defaults: settings,
				Logger:   newLogger(cmd),
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
	addSourceFlags(cmd)
	addOutputFlags(cmd)
	addPublishFlags(cmd)
	return cmd
}
