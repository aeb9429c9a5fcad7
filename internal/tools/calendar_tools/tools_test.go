package calendar_tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/xpressai/gcalendar-mcp/internal/calendar"
	"github.com/xpressai/gcalendar-mcp/internal/server"
)

func TestCalendarIDFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "no calendar provided",
			args:     map[string]interface{}{},
			expected: "primary",
		},
		{
			name: "calendar provided",
			args: map[string]interface{}{
				"calendar_id": "team@example.com",
			},
			expected: "team@example.com",
		},
		{
			name: "empty calendar string",
			args: map[string]interface{}{
				"calendar_id": "",
			},
			expected: "primary",
		},
		{
			name: "calendar with other args",
			args: map[string]interface{}{
				"calendar_id": "ops@example.com",
				"date":        "2025-01-15",
			},
			expected: "ops@example.com",
		},
		{
			name: "non-string calendar value",
			args: map[string]interface{}{
				"calendar_id": 123,
			},
			expected: "primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calendarIDFromArgs(tt.args)
			if result != tt.expected {
				t.Errorf("calendarIDFromArgs() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestSplitEmails(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single address",
			input:    "a@example.com",
			expected: []string{"a@example.com"},
		},
		{
			name:     "multiple addresses with spaces",
			input:    "a@example.com, b@example.com ,c@example.com",
			expected: []string{"a@example.com", "b@example.com", "c@example.com"},
		},
		{
			name:     "empty entries dropped",
			input:    "a@example.com,, ,b@example.com",
			expected: []string{"a@example.com", "b@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitEmails(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitEmails() = %v, expected %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitEmails()[%d] = %v, expected %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

// resultText extracts the text payload of a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected result with content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestLegacyError_FlattensToSingleShape(t *testing.T) {
	result, err := legacyError(errors.New("calendar not found"))
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected result to be marked as error")
	}

	var envelope map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &envelope); err != nil {
		t.Fatalf("expected valid JSON payload: %v", err)
	}
	if len(envelope) != 1 || envelope["error"] != "calendar not found" {
		t.Errorf("expected {\"error\": \"calendar not found\"}, got %v", envelope)
	}
}

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestHandleListDayEvents_MissingDate(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleListDayEvents(context.Background(), requestWithArgs(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing date")
	}
	if !strings.Contains(resultText(t, result), "date is required") {
		t.Errorf("expected missing-date message, got %s", resultText(t, result))
	}
}

// serverContextWithFakeBackend returns a server context whose Calendar client
// talks to an httptest server answering every request with the given JSON.
func serverContextWithFakeBackend(t *testing.T, body string) *server.ServerContext {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)

	svc, err := gcal.NewService(context.Background(),
		option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	if err != nil {
		t.Fatalf("failed to create calendar service: %v", err)
	}

	sc := server.NewServerContext(context.Background())
	t.Cleanup(func() { _ = sc.Shutdown() })
	sc.SetCalendarClient(calendar.NewClient(svc))
	return sc
}

func TestHandleListDayEvents_EmptyDay(t *testing.T) {
	sc := serverContextWithFakeBackend(t, `{"items":[]}`)

	result, err := handleListDayEvents(context.Background(), requestWithArgs(map[string]interface{}{
		"date": "2025-01-15",
	}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	// A day with no events is a success carrying the sentinel message, never
	// an empty list or an error.
	var envelope map[string]string
	if err := json.Unmarshal([]byte(resultText(t, result)), &envelope); err != nil {
		t.Fatalf("expected valid JSON payload: %v", err)
	}
	if len(envelope) != 1 || envelope["message"] != "No events found for the specified day." {
		t.Errorf("expected the no-events message envelope, got %v", envelope)
	}
}

func TestHandleListDayEvents_NoClientConfigured(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleListDayEvents(context.Background(), requestWithArgs(map[string]interface{}{
		"date": "2025-01-15",
	}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result when no calendar client is configured")
	}
	if !strings.Contains(resultText(t, result), "not configured") {
		t.Errorf("expected unconfigured-service message, got %s", resultText(t, result))
	}
}

func TestHandleCreateEvent_MissingRequiredFields(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	tests := []struct {
		name    string
		args    map[string]interface{}
		missing string
	}{
		{
			name:    "missing summary",
			args:    map[string]interface{}{"start_time": "2025-01-15T14:00:00", "end_time": "2025-01-15T15:00:00"},
			missing: "summary",
		},
		{
			name:    "missing start time",
			args:    map[string]interface{}{"summary": "Standup", "end_time": "2025-01-15T15:00:00"},
			missing: "start_time",
		},
		{
			name:    "missing end time",
			args:    map[string]interface{}{"summary": "Standup", "start_time": "2025-01-15T14:00:00"},
			missing: "end_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleCreateEvent(context.Background(), requestWithArgs(tt.args), sc)
			if err != nil {
				t.Fatalf("expected no transport error, got %v", err)
			}
			if !result.IsError {
				t.Error("expected error result")
			}
			if !strings.Contains(resultText(t, result), tt.missing+" is required") {
				t.Errorf("expected %q message, got %s", tt.missing+" is required", resultText(t, result))
			}
		})
	}
}

func TestHandleModifyEvent_MissingEventID(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleModifyEvent(context.Background(), requestWithArgs(map[string]interface{}{
		"new_summary": "Renamed",
	}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing event_id")
	}
}

func TestHandleDeleteEvent_MissingEventID(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleDeleteEvent(context.Background(), requestWithArgs(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing event_id")
	}
}

func TestHandleMoveEvent_MissingDestination(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleMoveEvent(context.Background(), requestWithArgs(map[string]interface{}{
		"event_id": "evt123",
	}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing destination_calendar_id")
	}
}

func TestHandleQuickAdd_MissingText(t *testing.T) {
	sc := server.NewServerContext(context.Background())
	defer sc.Shutdown()

	result, err := handleQuickAdd(context.Background(), requestWithArgs(map[string]interface{}{}), sc)
	if err != nil {
		t.Fatalf("expected no transport error, got %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing text")
	}
}

func TestHandleExtractEvent(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		result, err := handleExtractEvent(context.Background(), requestWithArgs(map[string]interface{}{
			"json_string": `{"summary":"Planning","start_time":"2025-01-15T14:00:00","end_time":"2025-01-15T15:00:00","location":"HQ","participants":["a@example.com"]}`,
		}))
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}
		if result.IsError {
			t.Fatalf("expected success, got error: %s", resultText(t, result))
		}

		var extracted map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &extracted); err != nil {
			t.Fatalf("expected valid JSON payload: %v", err)
		}
		if extracted["summary"] != "Planning" {
			t.Errorf("expected summary Planning, got %v", extracted["summary"])
		}
		if extracted["location"] != "HQ" {
			t.Errorf("expected location HQ, got %v", extracted["location"])
		}
	})

	t.Run("defaults applied for optional fields", func(t *testing.T) {
		result, err := handleExtractEvent(context.Background(), requestWithArgs(map[string]interface{}{
			"json_string": `{"summary":"Planning","start_time":"2025-01-15T14:00:00","end_time":"2025-01-15T15:00:00"}`,
		}))
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}

		var extracted map[string]interface{}
		if err := json.Unmarshal([]byte(resultText(t, result)), &extracted); err != nil {
			t.Fatalf("expected valid JSON payload: %v", err)
		}
		if extracted["location"] != "" {
			t.Errorf("expected empty location default, got %v", extracted["location"])
		}
		participants, ok := extracted["participants"].([]interface{})
		if !ok || len(participants) != 0 {
			t.Errorf("expected empty participants list, got %v", extracted["participants"])
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		result, err := handleExtractEvent(context.Background(), requestWithArgs(map[string]interface{}{
			"json_string": `{"summary":"Planning","start_time":"2025-01-15T14:00:00"}`,
		}))
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}
		if !result.IsError {
			t.Error("expected error result for missing end_time")
		}

		var envelope map[string]string
		if err := json.Unmarshal([]byte(resultText(t, result)), &envelope); err != nil {
			t.Fatalf("expected valid JSON error payload: %v", err)
		}
		if _, ok := envelope["error"]; !ok {
			t.Errorf("expected error envelope, got %v", envelope)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		result, err := handleExtractEvent(context.Background(), requestWithArgs(map[string]interface{}{
			"json_string": "not json",
		}))
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}
		if !result.IsError {
			t.Error("expected error result for malformed JSON")
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		result, err := handleExtractEvent(context.Background(), requestWithArgs(map[string]interface{}{}))
		if err != nil {
			t.Fatalf("expected no transport error, got %v", err)
		}
		if !result.IsError {
			t.Error("expected error result for missing json_string")
		}
	})
}
