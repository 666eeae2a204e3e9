package statemachine

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/process"
)

// Interpreter wraps the statekit interpreter with process-specific
// functionality.
type Interpreter struct {
	interp *statekit.Interpreter[*Context]
	ctx    *Context
}

// NewInterpreter creates an interpreter for the process state machine.
func NewInterpreter(machine *statekit.MachineConfig[*Context], ctx *Context) *Interpreter {
	interp := statekit.NewInterpreter(machine)
	// Update the context reference in the machine
	interp.UpdateContext(func(c **Context) {
		*c = ctx
	})
	return &Interpreter{
		interp: interp,
		ctx:    ctx,
	}
}

// Start initializes the interpreter and enters the initial state.
func (i *Interpreter) Start() {
	i.interp.Start()
}

// Stop stops the interpreter.
func (i *Interpreter) Stop() {
	i.interp.Stop()
}

// Status returns the current status.
func (i *Interpreter) Status() process.Status {
	state := i.interp.State()
	return process.Status(state.Value)
}

// Transition attempts to transition to the target status, carrying the
// reason (or achieved goal) into the process aggregate.
func (i *Interpreter) Transition(to process.Status, payload TransitionPayload) error {
	if !i.ctx.Process.Status.CanTransitionTo(to) {
		if i.ctx.Process.Status == process.StatusKilled && to == process.StatusKilled {
			return nil
		}
		return fmt.Errorf("%w: %s -> %s", process.ErrInvalidTransition, i.ctx.Process.Status, to)
	}

	eventType := EventForStatus(to)
	if to == process.StatusRunning && i.ctx.Process.Status == process.StatusWaiting {
		eventType = EventResume
	}

	i.interp.Send(statekit.Event{
		Type:    eventType,
		Payload: payload,
	})
	return nil
}

// IsTerminal returns true if the interpreter is in a final state.
func (i *Interpreter) IsTerminal() bool {
	return i.interp.Done()
}

// Context returns the interpreter context.
func (i *Interpreter) Context() *Context {
	return i.ctx
}

// ResumeFrom restores the interpreter to a specific status. Used when
// re-entering the loop for a process suspended on an awaitable.
func (i *Interpreter) ResumeFrom(status process.Status) error {
	snapshot := statekit.Snapshot[*Context]{
		MachineID:    "process",
		CurrentState: statekit.StateID(string(status)),
		Context:      i.ctx,
		CreatedAt:    time.Now(),
	}
	if err := i.interp.Restore(snapshot); err != nil {
		return fmt.Errorf("failed to restore state: %w", err)
	}
	return nil
}
