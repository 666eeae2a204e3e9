// Package event provides domain types and interfaces for process lifecycle
// events.
package event

import (
	"encoding/json"
	"time"
)

// Type classifies a process lifecycle event.
type Type string

const (
	TypeProcessStarted   Type = "process.started"
	TypeProcessSuspended Type = "process.suspended"
	TypeProcessResumed   Type = "process.resumed"
	TypeProcessCompleted Type = "process.completed"
	TypeProcessFailed    Type = "process.failed"
	TypeProcessStuck     Type = "process.stuck"
	TypeProcessKilled    Type = "process.killed"
	TypePlanComputed     Type = "plan.computed"
	TypeActionExecuted   Type = "action.executed"
)

// Event represents a process lifecycle event.
type Event struct {
	// ProcessID is the id of the process this event belongs to.
	ProcessID string `json:"process_id"`

	// Type classifies the event.
	Type Type `json:"type"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Payload contains the event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// New creates an event with the given type and payload.
func New(processID string, eventType Type, payload any) (Event, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		raw = data
	}
	return Event{
		ProcessID: processID,
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   raw,
	}, nil
}

// UnmarshalPayload decodes the event payload into the given value.
func (e *Event) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}
