package mcpserver

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// stringArg extracts a trimmed string argument.
func stringArg(req mcp.CallToolRequest, key, defaultVal string) string {
	v, ok := req.GetArguments()[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return defaultVal
	}
	return strings.TrimSpace(v)
}
