package calendar

import (
	"strings"

	calendar "google.golang.org/api/calendar/v3"
)

// noTitleFallback replaces a missing event summary in normalized records.
const noTitleFallback = "No Title"

// ExtractMeetingID returns the trailing '/'-separated segment of a meeting
// link, or nil when the link is empty.
func ExtractMeetingID(meetURL string) *string {
	if meetURL == "" {
		return nil
	}
	parts := strings.Split(meetURL, "/")
	id := parts[len(parts)-1]
	return &id
}

// toEventRecord normalizes a Google Calendar event into the uniform record
// shape. Time fields prefer a timed value over an all-day date value and are
// passed through as strings.
func toEventRecord(event *calendar.Event) EventRecord {
	record := EventRecord{
		EventName:    noTitleFallback,
		Participants: []string{},
	}
	if event == nil {
		return record
	}

	if event.Summary != "" {
		record.EventName = event.Summary
	}
	if event.Start != nil {
		record.StartTime = event.Start.DateTime
		if record.StartTime == "" {
			record.StartTime = event.Start.Date
		}
	}
	if event.End != nil {
		record.EndTime = event.End.DateTime
		if record.EndTime == "" {
			record.EndTime = event.End.Date
		}
	}
	record.Location = event.Location
	for _, att := range event.Attendees {
		record.Participants = append(record.Participants, att.Email)
	}
	record.MeetingLink = event.HangoutLink
	record.MeetingID = ExtractMeetingID(event.HangoutLink)

	return record
}

// toEventRecords normalizes a listing, preserving the service return order.
func toEventRecords(events []*calendar.Event) []EventRecord {
	records := make([]EventRecord, 0, len(events))
	for _, event := range events {
		records = append(records, toEventRecord(event))
	}
	return records
}

// buildEventPayload translates a draft into the remote creation payload.
// Optional fields are left unset so their keys are omitted from the request
// body entirely.
func buildEventPayload(draft EventDraft) *calendar.Event {
	event := &calendar.Event{
		Summary: draft.Summary,
		Start:   &calendar.EventDateTime{DateTime: draft.StartTime, TimeZone: "UTC"},
		End:     &calendar.EventDateTime{DateTime: draft.EndTime, TimeZone: "UTC"},
	}

	if draft.Description != "" {
		event.Description = draft.Description
	}
	if draft.Location != "" {
		event.Location = draft.Location
	}
	if len(draft.Participants) > 0 {
		attendees := make([]*calendar.EventAttendee, 0, len(draft.Participants))
		for _, email := range draft.Participants {
			attendees = append(attendees, &calendar.EventAttendee{Email: email})
		}
		event.Attendees = attendees
	}

	return event
}

// applyPatch overwrites exactly the summary and description of a fetched
// event. Empty replacement values are force-sent so the remote field is
// cleared rather than silently dropped from the update body.
func applyPatch(existing *calendar.Event, patch EventPatch) {
	existing.Summary = patch.NewSummary
	existing.Description = patch.NewDescription

	if patch.NewSummary == "" {
		existing.ForceSendFields = append(existing.ForceSendFields, "Summary")
	}
	if patch.NewDescription == "" {
		existing.ForceSendFields = append(existing.ForceSendFields, "Description")
	}
}

// toCalendarInfo converts a calendar list entry into CalendarInfo.
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
		AccessRole:  entry.AccessRole,
	}
}

// toCalendarDetails converts a calendar resource into CalendarInfo. The
// resource carries no per-user fields, so Primary and AccessRole stay unset;
// those only exist on calendar list entries.
func toCalendarDetails(cal *calendar.Calendar) CalendarInfo {
	if cal == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          cal.Id,
		Summary:     cal.Summary,
		Description: cal.Description,
		TimeZone:    cal.TimeZone,
	}
}

// orDefaultCalendar substitutes the primary calendar for an empty id.
func orDefaultCalendar(calendarID string) string {
	if calendarID == "" {
		return DefaultCalendarID
	}
	return calendarID
}
