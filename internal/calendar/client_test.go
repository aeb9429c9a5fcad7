package calendar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func TestListDayEvents_RejectsInvalidDate(t *testing.T) {
	// Date validation happens before any remote call, so a zero-value client
	// is enough to exercise it.
	client := &Client{}

	tests := []string{
		"",
		"2024-5-1",
		"05/01/2024",
		"2024-13-01",
		"not-a-date",
	}

	for _, date := range tests {
		t.Run(date, func(t *testing.T) {
			_, err := client.ListDayEvents(EventQuery{CalendarID: "primary", Date: date})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid date")
		})
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient(nil)
	require.NotNil(t, client)
}

func TestGetCalendar_ReadsCalendarResource(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"team@example.com","summary":"Team","timeZone":"UTC"}`)
	}))
	defer ts.Close()

	svc, err := calendar.NewService(context.Background(),
		option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	require.NoError(t, err)
	client := NewClient(svc)

	info, err := client.GetCalendar("team@example.com")
	require.NoError(t, err)

	// The calendar resource itself must be read, not the service account's
	// calendar list entry, so calendars shared by id but never added to the
	// list still resolve.
	assert.Contains(t, gotPath, "/calendars/")
	assert.NotContains(t, gotPath, "calendarList")

	assert.Equal(t, "team@example.com", info.ID)
	assert.Equal(t, "Team", info.Summary)
	assert.Equal(t, "UTC", info.TimeZone)
	assert.False(t, info.Primary)
	assert.Empty(t, info.AccessRole)
}
