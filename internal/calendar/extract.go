package calendar

import (
	"encoding/json"
	"fmt"
)

// ExtractedEvent holds the fields pulled out of a JSON blob by ExtractEvent.
type ExtractedEvent struct {
	Summary      string   `json:"summary"`
	StartTime    string   `json:"start_time"`
	EndTime      string   `json:"end_time"`
	Location     string   `json:"location"`
	Participants []string `json:"participants"`
}

// ExtractEvent parses a JSON string and extracts event fields from it. It
// performs no network call. summary, start_time and end_time are required;
// location defaults to "" and participants to an empty list when absent.
func ExtractEvent(jsonStr string) (*ExtractedEvent, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON: %w", err)
	}

	extracted := &ExtractedEvent{Participants: []string{}}

	var err error
	if extracted.Summary, err = requiredString(raw, "summary"); err != nil {
		return nil, err
	}
	if extracted.StartTime, err = requiredString(raw, "start_time"); err != nil {
		return nil, err
	}
	if extracted.EndTime, err = requiredString(raw, "end_time"); err != nil {
		return nil, err
	}

	if value, ok := raw["location"]; ok {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("key %q is not a string", "location")
		}
		extracted.Location = s
	}

	if value, ok := raw["participants"]; ok {
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("key %q is not a list", "participants")
		}
		for _, item := range list {
			email, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("participants must be strings, got %T", item)
			}
			extracted.Participants = append(extracted.Participants, email)
		}
	}

	return extracted, nil
}

func requiredString(raw map[string]any, key string) (string, error) {
	value, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("missing required key %q", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return s, nil
}
