package v1

import (
	"fmt"
	"time"
)

// Event is a dashboard record: an identified, tagged, human-described entry
// with an optional real-world time span.
type Event struct {
	// ID is the client-supplied unique identifier.
	ID int64 `json:"id"`

	Name    string `json:"name"`
	Summary string `json:"summary"`

	// Status is a categorical lifecycle label (e.g. "active", "completed").
	Status string `json:"status"`

	// Tag is a free-form categorical grouping label.
	Tag string `json:"tag"`

	// Time is the display time string shown by the dashboard. It is opaque
	// to the backend; EventStart/EventEnd carry the machine-readable span.
	Time string `json:"time"`

	Description string `json:"description"`

	// EventStart and EventEnd bound the real-world time span, when known.
	EventStart *time.Time `json:"event_start,omitempty"`
	EventEnd   *time.Time `json:"event_end,omitempty"`
}

// Validate ensures the record has all required fields.
func (e *Event) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("id is required and must be positive")
	}
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if e.Status == "" {
		return fmt.Errorf("status is required")
	}
	if e.Tag == "" {
		return fmt.Errorf("tag is required")
	}
	if e.Time == "" {
		return fmt.Errorf("time is required")
	}
	if e.Description == "" {
		return fmt.Errorf("description is required")
	}
	if e.EventStart != nil && e.EventEnd != nil && e.EventEnd.Before(*e.EventStart) {
		return fmt.Errorf("event_end must not be before event_start")
	}
	return nil
}
