package calendar_tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xpressai/gcalendar-mcp/internal/calendar"
	"github.com/xpressai/gcalendar-mcp/internal/instrumentation"
	"github.com/xpressai/gcalendar-mcp/internal/server"
	"github.com/xpressai/gcalendar-mcp/internal/tools/common"
)

// RegisterEventTools registers the core event tools with the MCP server
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List day events tool
	listDayEventsTool := mcp.NewTool("calendar_list_day_events",
		mcp.WithDescription("List all events of one day, recurring events expanded into single occurrences"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day to list in YYYY-MM-DD form, interpreted as UTC"),
		),
	)

	s.AddTool(listDayEventsTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_list_day_events", instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListDayEvents(ctx, request, sc)
		}))

	// Create event tool
	createEventTool := mcp.NewTool("calendar_create_event",
		mcp.WithDescription("Create a calendar event with UTC start and end times"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("summary",
			mcp.Required(),
			mcp.Description("Event title"),
		),
		mcp.WithString("description",
			mcp.Description("Event description"),
		),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Start time (ISO format, e.g. '2025-01-15T14:00:00'), interpreted as UTC"),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("End time (ISO format), interpreted as UTC"),
		),
		mcp.WithString("location",
			mcp.Description("Event location; omitted from the event when empty"),
		),
		mcp.WithString("participants",
			mcp.Description("Comma-separated list of attendee email addresses; omitted when empty"),
		),
		mcp.WithBoolean("send_updates",
			mcp.Description("Notify attendees about the new event"),
		),
	)

	s.AddTool(createEventTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_create_event", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateEvent(ctx, request, sc)
		}))

	// Modify event tool
	modifyEventTool := mcp.NewTool("calendar_modify_event",
		mcp.WithDescription("Overwrite the summary and description of an existing event, preserving all other fields. Concurrent external edits are last-write-wins."),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The ID of the event to modify"),
		),
		mcp.WithString("new_summary",
			mcp.Description("Replacement title; an empty value clears the title"),
		),
		mcp.WithString("new_description",
			mcp.Description("Replacement description; an empty value clears the description"),
		),
		mcp.WithBoolean("send_updates",
			mcp.Description("Notify attendees about the modification"),
		),
	)

	s.AddTool(modifyEventTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_modify_event", instrumentation.OperationModify, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleModifyEvent(ctx, request, sc)
		}))

	// Delete event tool
	deleteEventTool := mcp.NewTool("calendar_delete_event",
		mcp.WithDescription("Delete a calendar event"),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (default: 'primary')"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("The ID of the event to delete"),
		),
	)

	s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithOperation(
		"calendar_delete_event", instrumentation.OperationDelete, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteEvent(ctx, request, sc)
		}))

	return nil
}

func handleListDayEvents(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	date, ok := args["date"].(string)
	if !ok || date == "" {
		return legacyError(errRequired("date"))
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	events, err := client.ListDayEvents(calendar.EventQuery{
		CalendarID: calendarIDFromArgs(args),
		Date:       date,
	})
	if err != nil {
		return legacyError(err)
	}

	// An empty day is a success with a sentinel message, not an error.
	if len(events) == 0 {
		return legacyJSON(calendar.MessageEnvelope{Message: calendar.NoEventsMessage})
	}

	return legacyJSON(calendar.EventListEnvelope{Events: events})
}

func handleCreateEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return legacyError(errRequired("summary"))
	}
	startTime, ok := args["start_time"].(string)
	if !ok || startTime == "" {
		return legacyError(errRequired("start_time"))
	}
	endTime, ok := args["end_time"].(string)
	if !ok || endTime == "" {
		return legacyError(errRequired("end_time"))
	}

	draft := calendar.EventDraft{
		Summary:   summary,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if desc, ok := args["description"].(string); ok {
		draft.Description = desc
	}
	if loc, ok := args["location"].(string); ok {
		draft.Location = loc
	}
	if participants, ok := args["participants"].(string); ok && participants != "" {
		draft.Participants = splitEmails(participants)
	}
	if sendUpdates, ok := args["send_updates"].(bool); ok {
		draft.SendUpdates = sendUpdates
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	eventID, err := client.CreateEvent(calendarIDFromArgs(args), draft)
	if err != nil {
		return legacyError(err)
	}

	logAttendees("calendar_create_event", eventID, draft.Participants)

	return legacyJSON(calendar.CreatedEventEnvelope{EventID: eventID})
}

func handleModifyEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return legacyError(errRequired("event_id"))
	}

	patch := calendar.EventPatch{EventID: eventID}
	if summary, ok := args["new_summary"].(string); ok {
		patch.NewSummary = summary
	}
	if desc, ok := args["new_description"].(string); ok {
		patch.NewDescription = desc
	}
	if sendUpdates, ok := args["send_updates"].(bool); ok {
		patch.SendUpdates = sendUpdates
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	updatedID, err := client.ModifyEvent(calendarIDFromArgs(args), patch)
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(calendar.CreatedEventEnvelope{EventID: updatedID})
}

func handleDeleteEvent(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return legacyError(errRequired("event_id"))
	}

	client, err := getClient(sc)
	if err != nil {
		return legacyError(err)
	}

	if err := client.DeleteEvent(calendarIDFromArgs(args), eventID); err != nil {
		return legacyError(err)
	}

	return legacyJSON(calendar.StatusEnvelope{Status: calendar.EventDeletedStatus})
}

// splitEmails splits a comma-separated address list, trimming whitespace and
// dropping empty entries.
func splitEmails(s string) []string {
	parts := strings.Split(s, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			emails = append(emails, trimmed)
		}
	}
	return emails
}
