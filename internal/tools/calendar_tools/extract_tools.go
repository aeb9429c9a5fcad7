package calendar_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/xpressai/gcalendar-mcp/internal/calendar"
	"github.com/xpressai/gcalendar-mcp/internal/server"
	"github.com/xpressai/gcalendar-mcp/internal/tools/common"
)

// RegisterExtractTools registers payload extraction tools with the MCP server
func RegisterExtractTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Extract event tool. Pure parsing, no Calendar API call.
	extractEventTool := mcp.NewTool("calendar_extract_event",
		mcp.WithDescription("Extract event fields (summary, start_time, end_time, location, participants) from a JSON string without calling the Calendar API"),
		mcp.WithString("json_string",
			mcp.Required(),
			mcp.Description("JSON object containing at least summary, start_time and end_time"),
		),
	)

	s.AddTool(extractEventTool, common.InstrumentedToolHandler(
		"calendar_extract_event", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExtractEvent(ctx, request)
		}))

	return nil
}

func handleExtractEvent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	jsonString, ok := args["json_string"].(string)
	if !ok || jsonString == "" {
		return legacyError(errRequired("json_string"))
	}

	extracted, err := calendar.ExtractEvent(jsonString)
	if err != nil {
		return legacyError(err)
	}

	return legacyJSON(extracted)
}
