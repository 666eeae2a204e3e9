package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for the planning runtime.

// ProcessID adds a process ID field.
func ProcessID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("process_id", id)
	}
}

// Agent adds an agent name field.
func Agent(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("agent", name)
	}
}

// Status adds a process status field.
func Status(s process.Status) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("status", string(s))
	}
}

// Goal adds a goal name field.
func Goal(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("goal", name)
	}
}

// ActionName adds an action name field.
func ActionName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("action", name)
	}
}

// Condition adds a condition name field.
func Condition(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("condition", name)
	}
}

// PlanCost adds a plan cost field.
func PlanCost(cost float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Float64("plan_cost", cost)
	}
}

// PlanLength adds a plan length field.
func PlanLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_length", n)
	}
}

// AwaitableID adds an awaitable id field.
func AwaitableID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("awaitable_id", id)
	}
}

// ActionsExecuted adds the executed-action count.
func ActionsExecuted(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("actions_executed", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// Reason adds a reason field.
func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Str adds an arbitrary string field.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
