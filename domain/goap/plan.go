package goap

import "strings"

// Plan is an ordered sequence of actions computed from a specific world
// state, together with the goal it targets. A plan is immutable once
// produced; re-planning replaces it wholesale, never patches it in place.
type Plan struct {
	Goal    Goal
	Actions []Action
	World   WorldState

	// ForcedEvaluations counts how many expensive condition evaluations the
	// planner had to perform while computing this plan. Exposed for
	// diagnostics; zero means the unknown-condition optimization held.
	ForcedEvaluations int
}

// NewPlan creates a plan over the given actions.
func NewPlan(goal Goal, actions []Action, world WorldState) *Plan {
	out := make([]Action, len(actions))
	copy(out, actions)
	return &Plan{Goal: goal, Actions: out, World: world}
}

// Cost returns the sum of the plan's action costs.
func (p *Plan) Cost() float64 {
	var total float64
	for _, a := range p.Actions {
		total += a.Cost
	}
	return total
}

// Value returns the goal value plus the value of every action on the plan.
func (p *Plan) Value() float64 {
	total := p.Goal.Value
	for _, a := range p.Actions {
		total += a.Value
	}
	return total
}

// NetValue returns the plan's value minus its cost.
func (p *Plan) NetValue() float64 {
	return p.Value() - p.Cost()
}

// Empty reports whether the plan needs no actions, i.e. the goal was
// already satisfied by the world state it was computed from.
func (p *Plan) Empty() bool {
	return len(p.Actions) == 0
}

// ActionNames returns the plan's action names in execution order.
func (p *Plan) ActionNames() []string {
	names := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		names[i] = a.Name
	}
	return names
}

// SameActions reports whether two plans prescribe the same action sequence.
// A nil plan only matches another nil plan.
func (p *Plan) SameActions(other *Plan) bool {
	if p == nil || other == nil {
		return p == other
	}
	if len(p.Actions) != len(other.Actions) {
		return false
	}
	for i := range p.Actions {
		if p.Actions[i].Name != other.Actions[i].Name {
			return false
		}
	}
	return true
}

// String renders the plan as "goal <- a1 -> a2 -> a3".
func (p *Plan) String() string {
	if p == nil {
		return "<no plan>"
	}
	if p.Empty() {
		return p.Goal.Name + " <- (satisfied)"
	}
	return p.Goal.Name + " <- " + strings.Join(p.ActionNames(), " -> ")
}
