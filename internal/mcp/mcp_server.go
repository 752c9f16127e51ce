// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/schema"
)

// NewMCPServer initializes and configures the Compass MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *schema.Config, st store.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Compass Telemetry Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		st:      st,
	}

	// --- 1. Tool: resolve_identities ---
	s.AddTool(mcp.NewTool("resolve_identities",
		mcp.WithDescription("Plan identity links for an organization's commit authors. Always a dry run; nothing is written."),
		mcp.WithString("org", mcp.Description("Organization id."), mcp.Required()),
	), h.handleResolveIdentities)

	// --- 2. Tool: author_rollups ---
	s.AddTool(mcp.NewTool("author_rollups",
		mcp.WithDescription("Recompute and return AI-vs-human roll-ups per parent author, per group and for the ungrouped bucket."),
		mcp.WithString("org", mcp.Description("Organization id."), mcp.Required()),
	), h.handleAuthorRollups)

	// --- 3. Tool: daily_series ---
	s.AddTool(mcp.NewTool("daily_series",
		mcp.WithDescription("Return a gap-filled daily AI-vs-human series for an organization."),
		mcp.WithString("org", mcp.Description("Organization id."), mcp.Required()),
		mcp.WithString("start", mcp.Description("Window start date (YYYY-MM-DD). Defaults to 30 days before end.")),
		mcp.WithString("end", mcp.Description("Window end date (YYYY-MM-DD). Defaults to today.")),
		mcp.WithNumber("days", mcp.Description("Trailing window length in days when start is omitted.")),
	), h.handleDailySeries)

	return s
}

// StartMCPServer starts the Compass MCP server.
func StartMCPServer(_ context.Context, baseCfg *schema.Config, st store.Store) error {
	s := NewMCPServer(baseCfg, st)
	return server.ServeStdio(s)
}
