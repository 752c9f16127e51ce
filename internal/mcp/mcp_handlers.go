package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *schema.Config
	st      store.Store
}

// orgFromRequest parses the required org argument.
func orgFromRequest(request mcp.CallToolRequest) (int64, error) {
	raw := request.GetString("org", "")
	if raw == "" {
		return 0, fmt.Errorf("org is required")
	}
	orgID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orgID <= 0 {
		return 0, fmt.Errorf("invalid org %q", raw)
	}
	return orgID, nil
}

func (h *toolHandler) handleResolveIdentities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := orgFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	// Agent access never writes; operators apply links through the CLI.
	report, err := core.ResolveOrganizationIdentities(ctx, h.st, orgID, true)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("identity resolution failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAuthorRollups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := orgFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	report, err := core.RecomputeAggregates(ctx, h.st, orgID, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("aggregation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDailySeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	orgID, err := orgFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	// Reuse the config window resolution so agent and CLI agree on defaults.
	input := schema.ConfigRawInput{
		Org:         strconv.FormatInt(orgID, 10),
		SeriesStart: request.GetString("start", ""),
		SeriesEnd:   request.GetString("end", ""),
		SeriesDays:  request.GetInt("days", 0),
	}
	var cfg schema.Config
	if err := schema.ProcessAndValidate(&cfg, &input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid window parameters: %v", err)), nil
	}

	seq, err := core.DailyTimeseries(ctx, h.st, orgID, cfg.SeriesStart, cfg.SeriesEnd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeseries failed: %v", err)), nil
	}

	var points []schema.DailyRollup
	for p := range seq {
		points = append(points, p)
	}

	jsonData, _ := json.MarshalIndent(points, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
