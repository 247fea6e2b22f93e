package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/evanchen13/wb-sustainability/internal/charts"
	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
)

type toolHandler struct {
	service services.DashboardServiceInterface
	logger  providers.Logger
}

type figuresResult struct {
	Span    models.YearSpan `json:"span"`
	Figures []models.Figure `json:"figures"`
}

type refreshResult struct {
	FetchedAt     string `json:"fetched_at"`
	Renewable     int    `json:"renewable_observations"`
	CO2           int    `json:"co2_observations"`
	JoinedRecords int    `json:"joined_records"`
}

func textJSON(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *toolHandler) handleGetFigures(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	figures, span, err := h.service.Figures(ctx)
	if err != nil {
		h.logger.Errorf(providers.TypeApp, "mcp get_figures: %s", err)
		return mcp.NewToolResultError(fmt.Sprintf("building figures failed: %v", err)), nil
	}
	return textJSON(figuresResult{Span: span, Figures: figures})
}

func (h *toolHandler) handleGetFigure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	fig, _, err := h.service.Figure(ctx, id)
	if errors.Is(err, charts.ErrUnknownFigure) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown figure %q", id)), nil
	}
	if err != nil {
		h.logger.Errorf(providers.TypeApp, "mcp get_figure %s: %s", id, err)
		return mcp.NewToolResultError(fmt.Sprintf("building figure failed: %v", err)), nil
	}
	return textJSON(fig)
}

func (h *toolHandler) handleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table, err := h.service.Table(ctx)
	if err != nil {
		h.logger.Errorf(providers.TypeApp, "mcp get_table: %s", err)
		return mcp.NewToolResultError(fmt.Sprintf("loading table failed: %v", err)), nil
	}

	if year := request.GetInt("year", 0); year > 0 {
		table = table.ForYear(year)
	}
	if request.GetBool("complete", false) {
		table = table.Complete()
	}
	return textJSON(table)
}

func (h *toolHandler) handleRefresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d, err := h.service.Refresh(ctx)
	if err != nil {
		h.logger.Errorf(providers.TypeApp, "mcp refresh_data: %s", err)
		return mcp.NewToolResultError(fmt.Sprintf("refresh failed: %v", err)), nil
	}
	return textJSON(refreshResult{
		FetchedAt:     d.FetchedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Renewable:     d.Renewable.Len(),
		CO2:           d.CO2.Len(),
		JoinedRecords: d.Table().Len(),
	})
}
