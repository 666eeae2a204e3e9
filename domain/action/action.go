// Package action provides executable actions: the planner-visible step model
// paired with an effect-producing body supplied by the caller. The runtime
// never inspects the body's implementation; it may call an LLM, invoke a
// tool, or hit a database.
package action

import (
	"context"

	"github.com/felixgeelhaar/goap-go/domain/blackboard"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Action is a registered capability a process can execute.
type Action interface {
	// Name returns the stable string identifier for the action.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Preconditions returns the conditions that must hold before execution.
	Preconditions() goap.EffectSpec

	// Effects returns the conditions the action asserts on success.
	Effects() goap.EffectSpec

	// Cost returns the planning cost. Always non-negative.
	Cost() float64

	// Value returns the utility contributed if the action lands on the
	// winning plan.
	Value() float64

	// Idempotent reports whether a failed execution may be retried.
	Idempotent() bool

	// Execute runs the action body against the invocation's blackboard.
	Execute(ctx context.Context, inv *Invocation) (Result, error)
}

// Invocation carries everything an action body needs. The process and
// blackboard are passed explicitly; the runtime keeps no ambient or
// thread-local "current process" state.
type Invocation struct {
	// ProcessID identifies the executing process.
	ProcessID string

	// Blackboard is the process's own blackboard. The action body may read
	// it freely; writes happen through the returned Result so the loop
	// remains the single writer.
	Blackboard *blackboard.Blackboard

	// Response carries the awaitable response that resumed the process, if
	// this invocation follows a suspension. Nil on a normal invocation.
	Response map[string]any
}

// Handler is the function signature for action bodies.
type Handler func(ctx context.Context, inv *Invocation) (Result, error)

// Planning returns the planner's data view of an action.
func Planning(a Action) goap.Action {
	return goap.Action{
		Name:          a.Name(),
		Preconditions: a.Preconditions(),
		Effects:       a.Effects(),
		Cost:          a.Cost(),
		Value:         a.Value(),
	}
}

// PlanningAll maps a slice of actions to their planner views.
func PlanningAll(actions []Action) []goap.Action {
	out := make([]goap.Action, len(actions))
	for i, a := range actions {
		out[i] = Planning(a)
	}
	return out
}
