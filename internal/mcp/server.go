// Package mcp provides a Model Context Protocol server for postsync.
// It exposes export inspection, import and post listing as MCP tools.
package mcp

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/postsync/internal/config"
)

// Deps are the defaults and collaborators shared by all tools.
// Tool arguments override the matching Defaults fields per call.
type Deps struct {
	Defaults config.Settings
	Logger   *log.Logger
	Now      func() time.Time
}

// NewServer creates an MCP server with all postsync tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "postsync",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// importAnnotations describe import_posts: it writes files and may push, but
// repeating it with the same export changes nothing.
func importAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}

func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "inspect_export",
		Description: "Scan a LinkedIn export directory and report every candidate post file with its columns and score, plus the files that were rejected and why. Writes nothing.",
		Annotations: readOnlyAnnotations(),
	}, handleInspect(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_posts",
		Description: "Import posts from a LinkedIn export into Markdown files, then commit and optionally push the output directory. Re-running with the same export changes nothing.",
		Annotations: importAnnotations(),
	}, handleImport(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_posts",
		Description: "List imported posts in the output directory, newest first, with their date, source URL and first line.",
		Annotations: readOnlyAnnotations(),
	}, handleList(deps))
}
