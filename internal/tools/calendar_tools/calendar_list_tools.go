package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xpressai/gcalendar-mcp/internal/calendar"
	"github.com/xpressai/gcalendar-mcp/internal/instrumentation"
	"github.com/xpressai/gcalendar-mcp/internal/server"
	"github.com/xpressai/gcalendar-mcp/internal/tools/common"
)

// RegisterCalendarListTools registers calendar discovery tools with the MCP server
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List calendars tool
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars visible to the service account"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_list_calendars", instrumentation.OperationCalendars, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	// Get calendar tool
	getCalendarTool := mcp.NewTool("calendar_get_calendar",
		mcp.WithDescription("Get metadata for a single calendar"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
	)

	s.AddTool(getCalendarTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_get_calendar", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCalendar(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(calendar.CalendarListEnvelope{Items: calendars})
}

func handleGetCalendar(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	info, err := client.GetCalendar(calendarIDFromArgs(args))
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(info)
}
