package calendar

import (
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// Client wraps the Google Calendar service. The underlying service handle is
// created once by the authentication step and never mutated afterwards, so a
// single Client is safe to share across tool invocations.
type Client struct {
	svc *calendar.Service
}

// NewClient creates a Client around an authenticated Calendar service.
func NewClient(svc *calendar.Service) *Client {
	return &Client{svc: svc}
}

// ListDayEvents lists the events of one day, recurring events expanded into
// single occurrences, normalized into EventRecord in service return order.
func (c *Client) ListDayEvents(query EventQuery) ([]EventRecord, error) {
	if _, err := time.Parse("2006-01-02", query.Date); err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", query.Date, err)
	}

	events, err := c.svc.Events.List(orDefaultCalendar(query.CalendarID)).
		TimeMin(query.Date + "T00:00:00Z").
		TimeMax(query.Date + "T23:59:59Z").
		SingleEvents(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return toEventRecords(events.Items), nil
}

// SearchEvents lists events matching a free-text query within a time range,
// recurring events expanded into single occurrences.
func (c *Client) SearchEvents(calendarID, query, timeMin, timeMax string) ([]EventRecord, error) {
	events, err := c.svc.Events.List(orDefaultCalendar(calendarID)).
		Q(query).
		TimeMin(timeMin).
		TimeMax(timeMax).
		SingleEvents(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return toEventRecords(events.Items), nil
}

// CreateEvent inserts a new event and returns the identifier the service
// assigned to it.
func (c *Client) CreateEvent(calendarID string, draft EventDraft) (string, error) {
	call := c.svc.Events.Insert(orDefaultCalendar(calendarID), buildEventPayload(draft))
	if draft.SendUpdates {
		call = call.SendUpdates("all")
	}

	created, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}
	return created.Id, nil
}

// QuickAdd creates an event from a natural language description and returns
// its identifier.
func (c *Client) QuickAdd(calendarID, text string) (string, error) {
	created, err := c.svc.Events.QuickAdd(orDefaultCalendar(calendarID), text).Do()
	if err != nil {
		return "", fmt.Errorf("failed to quick-add event: %w", err)
	}
	return created.Id, nil
}

// ModifyEvent fetches an event, overwrites its summary and description, and
// writes it back. Not atomic: a concurrent external modification between the
// fetch and the update is last-write-wins.
func (c *Client) ModifyEvent(calendarID string, patch EventPatch) (string, error) {
	calID := orDefaultCalendar(calendarID)

	existing, err := c.svc.Events.Get(calID, patch.EventID).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get existing event: %w", err)
	}

	applyPatch(existing, patch)

	call := c.svc.Events.Update(calID, patch.EventID, existing)
	if patch.SendUpdates {
		call = call.SendUpdates("all")
	}

	updated, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("failed to update event: %w", err)
	}
	return updated.Id, nil
}

// UpdateAttendees fetches an event, replaces its attendee list, and writes it
// back. Same read-modify-write caveat as ModifyEvent.
func (c *Client) UpdateAttendees(calendarID, eventID string, attendees []string) (string, error) {
	calID := orDefaultCalendar(calendarID)

	existing, err := c.svc.Events.Get(calID, eventID).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get existing event: %w", err)
	}

	list := make([]*calendar.EventAttendee, 0, len(attendees))
	for _, email := range attendees {
		list = append(list, &calendar.EventAttendee{Email: email})
	}
	existing.Attendees = list

	updated, err := c.svc.Events.Update(calID, eventID, existing).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update attendees: %w", err)
	}
	return updated.Id, nil
}

// MoveEvent moves an event to another calendar and returns the moved event
// in normalized form.
func (c *Client) MoveEvent(sourceCalendarID, eventID, destinationCalendarID string) (*EventRecord, error) {
	moved, err := c.svc.Events.Move(orDefaultCalendar(sourceCalendarID), eventID, destinationCalendarID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move event: %w", err)
	}

	record := toEventRecord(moved)
	return &record, nil
}

// DeleteEvent deletes an event. No existence pre-check is performed; deleting
// an unknown event surfaces whatever error the service raises.
func (c *Client) DeleteEvent(calendarID, eventID string) error {
	if err := c.svc.Events.Delete(orDefaultCalendar(calendarID), eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// ListCalendars lists the calendars accessible to the service account.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	list, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	calendars := make([]CalendarInfo, 0, len(list.Items))
	for _, entry := range list.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}
	return calendars, nil
}

// GetCalendar retrieves details for one calendar. It reads the calendar
// resource itself, so any calendar reachable by id works, including ones
// never added to the service account's calendar list.
func (c *Client) GetCalendar(calendarID string) (*CalendarInfo, error) {
	cal, err := c.svc.Calendars.Get(orDefaultCalendar(calendarID)).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	info := toCalendarDetails(cal)
	return &info, nil
}
