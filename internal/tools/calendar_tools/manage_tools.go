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

// RegisterManageTools registers event management tools with the MCP server
func RegisterManageTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Quick add tool
	quickAddTool := mcp.NewTool("calendar_quick_add",
		mcp.WithDescription("Create an event from a natural language description, e.g. 'Lunch with Ana tomorrow at noon'"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Natural language event description"),
		),
	)

	s.AddTool(quickAddTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_quick_add", instrumentation.OperationQuickAdd, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQuickAdd(ctx, request, sc)
		}))

	// Search events tool
	searchEventsTool := mcp.NewTool("calendar_search_events",
		mcp.WithDescription("Search events by free text across summary, description, location and attendees"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free text search terms"),
		),
		mcp.WithString("time_min",
			mcp.Description("Lower bound for the event end time (RFC3339, e.g. '2025-01-15T00:00:00Z')"),
		),
		mcp.WithString("time_max",
			mcp.Description("Upper bound for the event start time (RFC3339)"),
		),
	)

	s.AddTool(searchEventsTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_search_events", instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearchEvents(ctx, request, sc)
		}))

	// Move event tool
	moveEventTool := mcp.NewTool("calendar_move_event",
		mcp.WithDescription("Move an event to another calendar"),
		mcp.WithString("calendar_id",
			mcp.Description("Source calendar ID (default: 'primary')"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The ID of the event to move"),
		),
		mcp.WithString("destination_calendar_id",
			mcp.Required(),
			mcp.Description("Calendar ID to move the event to"),
		),
	)

	s.AddTool(moveEventTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_move_event", instrumentation.OperationMove, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMoveEvent(ctx, request, sc)
		}))

	// Update attendees tool
	updateAttendeesTool := mcp.NewTool("calendar_update_attendees",
		mcp.WithDescription("Replace the attendee list of an event"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The ID of the event to update"),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated list of attendee email addresses"),
		),
	)

	s.AddTool(updateAttendeesTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_update_attendees", instrumentation.OperationAttendees, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateAttendees(ctx, request, sc)
		}))

	return nil
}

func handleQuickAdd(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return legacyError(errRequired("text"))
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	eventID, err := client.QuickAdd(calendarIDFromArgs(args), text)
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(calendar.CreatedEventEnvelope{EventID: eventID})
}

func handleSearchEvents(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return legacyError(errRequired("query"))
	}

	var timeMin, timeMax string
	if v, ok := args["time_min"].(string); ok {
		timeMin = v
	}
	if v, ok := args["time_max"].(string); ok {
		timeMax = v
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	events, err := client.SearchEvents(calendarIDFromArgs(args), query, timeMin, timeMax)
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(calendar.EventListEnvelope{Events: events})
}

func handleMoveEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return legacyError(errRequired("event_id"))
	}
	destination, ok := args["destination_calendar_id"].(string)
	if !ok || destination == "" {
		return legacyError(errRequired("destination_calendar_id"))
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	moved, err := client.MoveEvent(calendarIDFromArgs(args), eventID, destination)
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(moved)
}

func handleUpdateAttendees(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return legacyError(errRequired("event_id"))
	}
	attendees, ok := args["attendees"].(string)
	if !ok || attendees == "" {
		return legacyError(errRequired("attendees"))
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	emails := splitEmails(attendees)
	updatedID, err := client.UpdateAttendees(calendarIDFromArgs(args), eventID, emails)
	if err != nil {
		return legacyError(err)
	}

	logAttendees("calendar_update_attendees", updatedID, emails)

	return legacyJSON(calendar.CreatedEventEnvelope{EventID: updatedID})
}
