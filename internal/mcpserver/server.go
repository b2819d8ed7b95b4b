package mcpserver

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/Melvillian/navi/internal/database"
	"github.com/Melvillian/navi/internal/report"
)

// DigestSource produces the digest of a workspace for a window, crawling or
// reading cached history as configured.
type DigestSource interface {
	Digest(ctx context.Context, workspace string, window time.Duration) (*report.Digest, error)
}

// RunLister lists stored runs.
type RunLister interface {
	ListRuns(ctx context.Context, workspace string, limit int) ([]database.RunMetadata, error)
}

var _ RunLister = (*database.RunDB)(nil)

// Options configures the server.
type Options struct {
	// Version is reported to clients.
	Version string

	// Workspace is used when a call does not name one.
	Workspace string

	// Window is used when a call does not pass days.
	Window time.Duration

	// History enables the crawl_history tool. May be nil.
	History RunLister
}

const instructions = `navi reads a Notion workspace and returns the blocks that changed recently, with their nested content, as markdown.
Use recent_notes to get the digest for the last N days. Use crawl_history to see earlier runs.`

// New creates an MCP server with the navi tools registered.
func New(source DigestSource, opts Options) *server.MCPServer {
	s := server.NewMCPServer(
		"navi",
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	notes := NewRecentNotesTool(source, opts.Workspace, opts.Window)
	s.AddTool(notes.Definition(), notes.Handle)

	if opts.History != nil {
		history := NewHistoryTool(opts.History)
		s.AddTool(history.Definition(), history.Handle)
	}

	return s
}
