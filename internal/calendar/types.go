package calendar

// DefaultCalendarID is used when an operation does not name a calendar.
const DefaultCalendarID = "primary"

// EventRecord is the normalized event shape handed back to callers. The JSON
// keys are the legacy wire names every consumer of these tools expects.
type EventRecord struct {
	EventName    string   `json:"event_name"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Location     string   `json:"location"`
	Participants []string `json:"participants"`
	MeetingLink  string   `json:"gmeet_link"`

	// MeetingID is the trailing path segment of MeetingLink.
	// nil (serialized as null) iff MeetingLink is empty.
	MeetingID *string `json:"meeting_id"`
}

// EventQuery selects the events of a single day in one calendar.
type EventQuery struct {
	CalendarID string
	// Date in YYYY-MM-DD form. The query window is
	// [DateT00:00:00Z, DateT23:59:59Z) with recurring events expanded
	// into single occurrences.
	Date string
}

// EventDraft describes a new event. StartTime and EndTime are ISO datetimes
// interpreted as UTC. The JSON tags allow a draft to round-trip through
// ExtractEvent.
type EventDraft struct {
	Summary      string   `json:"summary"`
	Description  string   `json:"description,omitempty"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Location     string   `json:"location,omitempty"`
	Participants []string `json:"participants,omitempty"`

	// SendUpdates asks the service to notify attendees about the event.
	SendUpdates bool `json:"-"`
}

// EventPatch replaces the summary and description of an existing event.
// All other fields of the stored event are preserved verbatim.
type EventPatch struct {
	EventID        string
	NewSummary     string
	NewDescription string
	SendUpdates    bool
}

// CalendarInfo describes one calendar accessible to the service account.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	TimeZone    string `json:"time_zone,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
	AccessRole  string `json:"access_role,omitempty"`
}
