package process

// Status is the lifecycle state of a process.
type Status string

const (
	StatusNotStarted Status = "not_started" // Created, loop not yet running
	StatusRunning    Status = "running"     // Loop executing
	StatusWaiting    Status = "waiting"     // Suspended on an awaitable
	StatusCompleted  Status = "completed"   // A goal was achieved
	StatusFailed     Status = "failed"      // An action errored
	StatusStuck      Status = "stuck"       // No viable plan, or action budget exhausted
	StatusKilled     Status = "killed"      // Explicitly cancelled
)

// Terminal reports whether the status allows no further transitions.
// Stuck is deliberately not terminal in the strict sense: a caller may
// register new actions or conditions and restart planning, but this core's
// loop stops there.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusKilled
}

// Active reports whether the process loop is live or resumable.
func (s Status) Active() bool {
	return s == StatusRunning || s == StatusWaiting || s == StatusNotStarted
}

// validTransitions captures the process state machine:
// NotStarted -> Running -> {Completed | Failed | Waiting | Stuck | Killed},
// Waiting -> Running on resume, and any non-terminal state -> Killed.
var validTransitions = map[Status][]Status{
	StatusNotStarted: {StatusRunning, StatusKilled},
	StatusRunning:    {StatusCompleted, StatusFailed, StatusWaiting, StatusStuck, StatusKilled},
	StatusWaiting:    {StatusRunning, StatusKilled},
	StatusStuck:      {StatusKilled},
}

// CanTransitionTo reports whether the transition is allowed by the process
// state machine. Transitions to the same status are allowed only for Killed,
// which is idempotent.
func (s Status) CanTransitionTo(to Status) bool {
	if s == StatusKilled && to == StatusKilled {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
