package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const defaultHistoryLimit = 10

// HistoryTool handles the crawl_history MCP tool.
type HistoryTool struct {
	runs RunLister
}

// NewHistoryTool creates a HistoryTool reading from runs.
func NewHistoryTool(runs RunLister) *HistoryTool {
	return &HistoryTool{runs: runs}
}

// Definition returns the MCP tool definition for crawl_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("crawl_history",
		mcp.WithDescription("List recent navi crawl runs with their page and block counts."),
		mcp.WithString("workspace",
			mcp.Description("Only list runs of this workspace"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of runs (default %d)", defaultHistoryLimit)),
		),
	)
}

// Handle processes the crawl_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := intArg(req, "limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	runs, err := t.runs.ListRuns(ctx, stringArg(req, "workspace", ""), limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list runs: %v", err)), nil
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No runs recorded yet."), nil
	}

	var sb strings.Builder
	sb.WriteString("## Crawl runs\n\n")
	for _, r := range runs {
		fmt.Fprintf(&sb, "- **#%d** %s, workspace %s, window %s: %d pages, %d blocks",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Workspace, r.Window, r.PageCount, r.RootCount)
		if r.TruncatedPages > 0 {
			fmt.Fprintf(&sb, ", %d truncated", r.TruncatedPages)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}
