package calendar

// Sentinel messages carried by the success-shaped envelopes. These strings
// are part of the output contract and must not change.
const (
	// NoEventsMessage is returned when a day query matches no events.
	// It is a success, not an error.
	NoEventsMessage = "No events found for the specified day."

	// EventDeletedStatus is returned after a successful delete.
	EventDeletedStatus = "Event deleted successfully."
)

// The envelope types below are the uniform result shapes of every tool.
// Internally operations return (T, error); the tool layer flattens both arms
// into one of these before serializing, so the externally observable output
// slot keeps its legacy union shape: a success payload or {"error": ...}.

// ErrorEnvelope carries a stringified failure reason. No structured codes.
type ErrorEnvelope struct {
	Error string `json:"error"`
}

// MessageEnvelope carries an informational sentinel such as NoEventsMessage.
type MessageEnvelope struct {
	Message string `json:"message"`
}

// StatusEnvelope carries an operation status sentinel.
type StatusEnvelope struct {
	Status string `json:"status"`
}

// EventListEnvelope carries normalized events in service return order.
type EventListEnvelope struct {
	Events []EventRecord `json:"events"`
}

// CreatedEventEnvelope carries the identifier assigned by the service.
type CreatedEventEnvelope struct {
	EventID string `json:"event_id"`
}

// CalendarListEnvelope carries the calendars visible to the service account.
type CalendarListEnvelope struct {
	Items []CalendarInfo `json:"items"`
}

// NewErrorEnvelope flattens err into the legacy error shape.
func NewErrorEnvelope(err error) ErrorEnvelope {
	return ErrorEnvelope{Error: err.Error()}
}
