// Package process provides the process aggregate: one independent execution
// of an agent's plan-act loop, with its blackboard, current plan, and
// lifecycle state machine.
package process

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/goap-go/domain/blackboard"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Process is the aggregate root for one agent execution. It is mutated only
// by its own execution loop (single-writer); everything other goroutines see
// goes through the store's snapshots.
type Process struct {
	ID              string
	AgentName       string
	Status          Status
	Blackboard      *blackboard.Blackboard
	CurrentPlan     *goap.Plan
	ActionsExecuted int
	MaxActions      int
	ParentID        string
	FailureReason   string
	CompletedGoal   string
	StartTime       time.Time
	EndTime         time.Time
}

// DefaultMaxActions is the action budget when none is configured. It is the
// safety valve against planner/action cycles that never converge.
const DefaultMaxActions = 50

// New creates a process for the named agent with a fresh blackboard.
func New(agentName string, maxActions int) *Process {
	if maxActions <= 0 {
		maxActions = DefaultMaxActions
	}
	return &Process{
		ID:         uuid.NewString(),
		AgentName:  agentName,
		Status:     StatusNotStarted,
		Blackboard: blackboard.New(),
		MaxActions: maxActions,
	}
}

// Fork creates a child process with a snapshot copy of this process's
// blackboard. The child references the parent's contents at fork time only;
// the two never share a live blackboard.
func (p *Process) Fork(agentName string, maxActions int) *Process {
	child := New(agentName, maxActions)
	child.ParentID = p.ID
	child.Blackboard = p.Blackboard.Copy()
	return child
}

// TransitionTo moves the process to the target status, enforcing the state
// machine. Transitioning a killed process to Killed again is a no-op.
func (p *Process) TransitionTo(to Status) error {
	if p.Status == StatusKilled && to == StatusKilled {
		return nil
	}
	if !p.Status.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	switch to {
	case StatusRunning:
		if p.StartTime.IsZero() {
			p.StartTime = time.Now()
		}
	case StatusCompleted, StatusFailed, StatusKilled, StatusStuck:
		p.EndTime = time.Now()
	}
	return nil
}

// Start marks the process running.
func (p *Process) Start() error {
	return p.TransitionTo(StatusRunning)
}

// Complete records goal achievement.
func (p *Process) Complete(goalName string) error {
	if err := p.TransitionTo(StatusCompleted); err != nil {
		return err
	}
	p.CompletedGoal = goalName
	return nil
}

// Fail records an action failure, keeping the blackboard for diagnostics.
func (p *Process) Fail(reason string) error {
	if err := p.TransitionTo(StatusFailed); err != nil {
		return err
	}
	p.FailureReason = reason
	return nil
}

// Stick records that the loop cannot make progress: either the planner found
// no path or the action budget ran out. The reason distinguishes the two.
func (p *Process) Stick(reason string) error {
	if err := p.TransitionTo(StatusStuck); err != nil {
		return err
	}
	p.FailureReason = reason
	return nil
}

// Kill cancels the process. Idempotent: killing an already-killed process
// succeeds without effect. Killing a completed or failed process fails.
func (p *Process) Kill() error {
	return p.TransitionTo(StatusKilled)
}

// Suspend parks the process on an awaitable.
func (p *Process) Suspend() error {
	return p.TransitionTo(StatusWaiting)
}

// Resume returns a waiting process to running.
func (p *Process) Resume() error {
	if p.Status != StatusWaiting {
		return fmt.Errorf("%w: status %s", ErrNotWaiting, p.Status)
	}
	return p.TransitionTo(StatusRunning)
}

// RecordAction counts an executed action and replaces the current plan.
func (p *Process) RecordAction(plan *goap.Plan) {
	p.CurrentPlan = plan
	p.ActionsExecuted++
}

// BudgetExhausted reports whether the action budget is spent.
func (p *Process) BudgetExhausted() bool {
	return p.ActionsExecuted >= p.MaxActions
}

// Duration returns how long the process has been (or was) running.
func (p *Process) Duration() time.Duration {
	if p.StartTime.IsZero() {
		return 0
	}
	if p.EndTime.IsZero() {
		return time.Since(p.StartTime)
	}
	return p.EndTime.Sub(p.StartTime)
}
