// Package mcpserver exposes navi digests to MCP clients.
//
// Tools follow one shape: a struct holding its dependencies, Definition
// returning the mcp.Tool schema and Handle processing a call. Failures the
// client can act on are returned as tool errors, not Go errors.
package mcpserver
