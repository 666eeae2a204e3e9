// Package statemachine provides the statekit integration for the process
// lifecycle.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

// Context carries the process through the state machine.
type Context struct {
	Process *process.Process
}

// State IDs as StateID type for statekit.
const (
	stateNotStarted statekit.StateID = statekit.StateID(process.StatusNotStarted)
	stateRunning    statekit.StateID = statekit.StateID(process.StatusRunning)
	stateWaiting    statekit.StateID = statekit.StateID(process.StatusWaiting)
	stateCompleted  statekit.StateID = statekit.StateID(process.StatusCompleted)
	stateFailed     statekit.StateID = statekit.StateID(process.StatusFailed)
	stateStuck      statekit.StateID = statekit.StateID(process.StatusStuck)
	stateKilled     statekit.StateID = statekit.StateID(process.StatusKilled)
)

// Event types driving the process statechart.
const (
	EventStart    statekit.EventType = "START"
	EventComplete statekit.EventType = "COMPLETE"
	EventFail     statekit.EventType = "FAIL"
	EventWait     statekit.EventType = "WAIT"
	EventResume   statekit.EventType = "RESUME"
	EventStick    statekit.EventType = "STICK"
	EventKill     statekit.EventType = "KILL"
)

// TransitionPayload carries the reason (or achieved goal) for a transition.
type TransitionPayload struct {
	Reason string
	Goal   string
}

// NewProcessMachine creates the canonical process statechart:
// not_started -> running -> {completed | failed | waiting | stuck | killed},
// waiting -> running on resume, and kill from every non-terminal state.
func NewProcessMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("process").
		WithInitial(stateNotStarted).
		WithContext(&Context{}).
		WithAction("syncStatus", syncStatus).
		State(stateNotStarted).
			On(EventStart).Target(stateRunning).Do("syncStatus").
			On(EventKill).Target(stateKilled).Do("syncStatus").
			Done().
		State(stateRunning).
			On(EventComplete).Target(stateCompleted).Do("syncStatus").
			On(EventFail).Target(stateFailed).Do("syncStatus").
			On(EventWait).Target(stateWaiting).Do("syncStatus").
			On(EventStick).Target(stateStuck).Do("syncStatus").
			On(EventKill).Target(stateKilled).Do("syncStatus").
			Done().
		State(stateWaiting).
			On(EventResume).Target(stateRunning).Do("syncStatus").
			On(EventKill).Target(stateKilled).Do("syncStatus").
			Done().
		State(stateStuck).
			On(EventKill).Target(stateKilled).Do("syncStatus").
			Done().
		State(stateCompleted).
			Final().
			Done().
		State(stateFailed).
			Final().
			Done().
		State(stateKilled).
			Final().
			Done().
		Build()
}

// syncStatus mirrors the machine's target state onto the process aggregate.
// In statekit, actions receive a pointer to the context; since our context
// is *Context, actions receive **Context.
func syncStatus(ctx **Context, event statekit.Event) {
	if ctx == nil || *ctx == nil || (*ctx).Process == nil {
		return
	}
	c := *ctx
	var payload TransitionPayload
	if p, ok := event.Payload.(TransitionPayload); ok {
		payload = p
	}

	switch event.Type {
	case EventComplete:
		_ = c.Process.Complete(payload.Goal)
	case EventFail:
		_ = c.Process.Fail(payload.Reason)
	case EventStick:
		_ = c.Process.Stick(payload.Reason)
	case EventKill:
		_ = c.Process.Kill()
	default:
		if to := statusForEvent(event.Type); to != "" {
			_ = c.Process.TransitionTo(to)
		}
	}
}

// statusForEvent derives the target status from an event type.
func statusForEvent(eventType statekit.EventType) process.Status {
	switch eventType {
	case EventStart, EventResume:
		return process.StatusRunning
	case EventComplete:
		return process.StatusCompleted
	case EventFail:
		return process.StatusFailed
	case EventWait:
		return process.StatusWaiting
	case EventStick:
		return process.StatusStuck
	case EventKill:
		return process.StatusKilled
	default:
		return ""
	}
}

// EventForStatus returns the event that reaches the target status.
func EventForStatus(to process.Status) statekit.EventType {
	switch to {
	case process.StatusRunning:
		return EventStart
	case process.StatusCompleted:
		return EventComplete
	case process.StatusFailed:
		return EventFail
	case process.StatusWaiting:
		return EventWait
	case process.StatusStuck:
		return EventStick
	case process.StatusKilled:
		return EventKill
	default:
		return statekit.EventType(to)
	}
}
