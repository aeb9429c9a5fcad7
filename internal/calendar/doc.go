// Package calendar wraps the Google Calendar API for the gcalendar-mcp tools.
//
// Every operation is a single synchronous remote call with light field
// remapping: events fetched from the service are normalized into EventRecord,
// the uniform record shape the tools hand back to callers, and failures are
// captured into the uniform envelope shapes in result.go.
//
// The package also hosts ExtractEvent, the pure helper that pulls event
// fields out of a JSON blob without touching the network.
//
// Example usage:
//
//	svc, err := google.NewCalendarService(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client := calendar.NewClient(svc)
//	records, err := client.ListDayEvents(calendar.EventQuery{
//	    CalendarID: "primary",
//	    Date:       "2024-05-01",
//	})
package calendar
