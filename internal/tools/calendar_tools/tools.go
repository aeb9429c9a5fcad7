package calendar_tools

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xpressai/gcalendar-mcp/internal/calendar"
	"github.com/xpressai/gcalendar-mcp/internal/logging"
	"github.com/xpressai/gcalendar-mcp/internal/server"
)

// getClient returns the shared Calendar client from the server context.
// The client is built once at startup from service account credentials, so a
// missing client means the server was started without usable credentials.
func getClient(sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClient()
	if client == nil {
		return nil, fmt.Errorf("calendar service is not configured; provide service account credentials via --service-account-file or the GOOGLE_SERVICE_ACCOUNT_CREDENTIALS environment variable")
	}
	return client, nil
}

// legacyJSON serializes a success envelope and wraps it in a text result.
// Every tool in this package answers with one of the envelope shapes from the
// calendar package so consumers see a stable JSON contract.
func legacyJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// legacyError flattens err into the {"error": ...} shape and marks the result
// as an error so MCP clients see both the flag and the legacy payload.
func legacyError(err error) (*mcp.CallToolResult, error) {
	data, merr := json.Marshal(calendar.NewErrorEnvelope(err))
	if merr != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// errRequired reports a missing or empty required tool argument.
func errRequired(name string) error {
	return fmt.Errorf("%s is required", name)
}

// logAttendees records which attendees a tool touched. Emails are hashed so
// the log carries no addresses in clear text.
func logAttendees(tool, eventID string, emails []string) {
	if len(emails) == 0 {
		return
	}
	logger := logging.WithTool(slog.Default(), tool).With(logging.EventID(eventID))
	for _, email := range emails {
		logger.Debug("attendee set", logging.Attendee(email))
	}
}

// calendarIDFromArgs extracts the calendar_id argument, defaulting to "primary"
func calendarIDFromArgs(args map[string]interface{}) string {
	if v, ok := args["calendar_id"].(string); ok && v != "" {
		return v
	}
	return calendar.DefaultCalendarID
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register event tools
	if err := RegisterEventTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	// Register event management tools
	if err := RegisterManageTools(s, sc); err != nil {
		return fmt.Errorf("failed to register event management tools: %w", err)
	}

	// Register calendar list tools
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register extraction tools
	if err := RegisterExtractTools(s, sc); err != nil {
		return fmt.Errorf("failed to register extraction tools: %w", err)
	}

	return nil
}
