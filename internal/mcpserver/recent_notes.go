package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Melvillian/navi/internal/log"
	"github.com/Melvillian/navi/internal/report"
)

// Output formats accepted by recent_notes.
const (
	FormatPrompt   = "prompt"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// maxDays bounds the window a client may ask for.
const maxDays = 365

// RecentNotesTool handles the recent_notes MCP tool.
type RecentNotesTool struct {
	source    DigestSource
	workspace string
	window    time.Duration
}

// NewRecentNotesTool creates a RecentNotesTool. workspace and window are
// the defaults for calls that omit them.
func NewRecentNotesTool(source DigestSource, workspace string, window time.Duration) *RecentNotesTool {
	return &RecentNotesTool{source: source, workspace: workspace, window: window}
}

// Definition returns the MCP tool definition for recent_notes.
func (t *RecentNotesTool) Definition() mcp.Tool {
	return mcp.NewTool("recent_notes",
		mcp.WithDescription(
			"Return the Notion blocks edited in the last N days with their nested content. "+
				"Each page is a section starting with 'Page Title:'.",
		),
		mcp.WithNumber("days",
			mcp.Description(fmt.Sprintf("How many days back to look (1-%d). Defaults to the configured window.", maxDays)),
		),
		mcp.WithString("workspace",
			mcp.Description("Configured workspace name. Defaults to the first configured workspace."),
		),
		mcp.WithString("format",
			mcp.Description("Output format: prompt (default), markdown or json."),
			mcp.Enum(FormatPrompt, FormatMarkdown, FormatJSON),
		),
	)
}

// Handle processes the recent_notes tool call.
func (t *RecentNotesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	window := t.window
	if days := intArg(req, "days", 0); days != 0 {
		if days < 0 || days > maxDays {
			return mcp.NewToolResultError(fmt.Sprintf("days must be between 1 and %d", maxDays)), nil
		}
		window = time.Duration(days) * 24 * time.Hour
	}
	workspace := stringArg(req, "workspace", t.workspace)

	var w func(*bytes.Buffer) report.Writer
	switch format := stringArg(req, "format", FormatPrompt); format {
	case FormatPrompt:
		w = func(b *bytes.Buffer) report.Writer { return report.NewPromptWriter(b) }
	case FormatMarkdown:
		w = func(b *bytes.Buffer) report.Writer { return report.NewMarkdownWriter(b) }
	case FormatJSON:
		w = func(b *bytes.Buffer) report.Writer { return report.NewJSONWriter(b, report.WithPrettyPrint()) }
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}

	digest, err := t.source.Digest(ctx, workspace, window)
	if err != nil {
		return mcp.NewToolResultError("failed to read Notion: " + log.RedactTokens(err.Error())), nil
	}

	var buf bytes.Buffer
	if _, err := w(&buf).Write(digest); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render digest: %v", err)), nil
	}
	if buf.Len() == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No Notion blocks were edited in workspace %q in the last %s.", workspace, window)), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}
