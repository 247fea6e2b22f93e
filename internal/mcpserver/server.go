// Package mcpserver exposes the dashboard data as Model Context Protocol tools.
package mcpserver

import (
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "World Bank Sustainability Dashboard"
	serverVersion = "1.0.0"
)

// NewMCPServer registers the dashboard tools without starting the transport.
func NewMCPServer(service services.DashboardServiceInterface, logger providers.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
	)

	logger.Infof(providers.TypeApp, "Registering MCP tools")
	h := &toolHandler{
		service: service,
		logger:  logger,
	}

	s.AddTool(mcp.NewTool("get_figures",
		mcp.WithDescription("Return all dashboard figures (trend lines, top-country bars and the renewable vs. CO2 scatter) as JSON."),
	), h.handleGetFigures)

	s.AddTool(mcp.NewTool("get_figure",
		mcp.WithDescription("Return a single dashboard figure as JSON."),
		mcp.WithString("id", mcp.Description("Figure identifier."), mcp.Required(),
			mcp.Enum("renewable-trend", "co2-trend", "renewable-top", "co2-top", "renewable-vs-co2")),
	), h.handleGetFigure)

	s.AddTool(mcp.NewTool("get_table",
		mcp.WithDescription("Return the renewable energy and CO2 indicators joined on country and year."),
		mcp.WithNumber("year", mcp.Description("Only return records of this year.")),
		mcp.WithBoolean("complete", mcp.Description("Only return records that have both indicator values.")),
	), h.handleGetTable)

	s.AddTool(mcp.NewTool("refresh_data",
		mcp.WithDescription("Fetch both indicators from the World Bank API again and replace the cached dataset."),
	), h.handleRefresh)

	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
