// Package agent provides the deployable unit: a named bundle of actions,
// goals, and condition evaluators registered with the platform. Bundles are
// assembled with explicit registration calls or the builder, never via
// reflection or annotation scanning.
package agent

import (
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/condition"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Agent is an immutable bundle of capabilities the platform can run.
type Agent struct {
	name        string
	description string
	actions     []action.Action
	goals       []goap.Goal
	conditions  []condition.Evaluator
}

// Name returns the agent name.
func (a *Agent) Name() string { return a.name }

// Description returns the agent description.
func (a *Agent) Description() string { return a.description }

// Actions returns the agent's executable actions in registration order.
func (a *Agent) Actions() []action.Action {
	out := make([]action.Action, len(a.actions))
	copy(out, a.actions)
	return out
}

// Goals returns the agent's goals in registration order.
func (a *Agent) Goals() []goap.Goal {
	out := make([]goap.Goal, len(a.goals))
	copy(out, a.goals)
	return out
}

// Conditions returns the agent's condition evaluators.
func (a *Agent) Conditions() []condition.Evaluator {
	out := make([]condition.Evaluator, len(a.conditions))
	copy(out, a.conditions)
	return out
}

// System returns the planner's data view of the agent.
func (a *Agent) System() goap.System {
	return goap.System{
		Actions: action.PlanningAll(a.actions),
		Goals:   a.Goals(),
	}
}

// Action returns the named executable action, if registered.
func (a *Agent) Action(name string) (action.Action, bool) {
	for _, act := range a.actions {
		if act.Name() == name {
			return act, true
		}
	}
	return nil, false
}

// Builder assembles an agent.
type Builder struct {
	agent *Agent
	err   error
}

// NewBuilder creates an agent builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{agent: &Agent{name: name}}
}

// WithDescription sets the agent description.
func (b *Builder) WithDescription(desc string) *Builder {
	if b.err != nil {
		return b
	}
	b.agent.description = desc
	return b
}

// WithAction registers an executable action.
func (b *Builder) WithAction(a action.Action) *Builder {
	if b.err != nil {
		return b
	}
	for _, existing := range b.agent.actions {
		if existing.Name() == a.Name() {
			b.err = action.ErrActionExists
			return b
		}
	}
	b.agent.actions = append(b.agent.actions, a)
	return b
}

// WithGoal registers a goal.
func (b *Builder) WithGoal(g goap.Goal) *Builder {
	if b.err != nil {
		return b
	}
	b.agent.goals = append(b.agent.goals, g)
	return b
}

// WithCondition registers a condition evaluator.
func (b *Builder) WithCondition(e condition.Evaluator) *Builder {
	if b.err != nil {
		return b
	}
	b.agent.conditions = append(b.agent.conditions, e)
	return b
}

// Build constructs the agent.
func (b *Builder) Build() (*Agent, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.agent.name == "" {
		return nil, goap.ErrEmptyName
	}
	if len(b.agent.goals) == 0 {
		return nil, ErrNoGoals
	}
	return b.agent, nil
}

// MustBuild constructs the agent or panics on error.
func (b *Builder) MustBuild() *Agent {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
