// Package planner provides the optimizing GOAP planner: a uniform-cost
// search over tri-state world states that avoids evaluating expensive
// conditions unless doing so could change the plan.
package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/goap-go/domain/condition"
	"github.com/felixgeelhaar/goap-go/domain/goap"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
)

// DefaultMaxNodes bounds the number of expanded search nodes per attempt.
const DefaultMaxNodes = 10000

// CostHinter is an optional interface a Determiner may implement to tell the
// planner how expensive forcing each condition is. When several unknown
// conditions could change the plan, the cheapest is forced first.
type CostHinter interface {
	CostHint(name string) float64
}

// OptimizingPlanner computes lowest-cost plans and forces unknown-condition
// evaluation only when leaving the condition unknown could change the
// outcome.
type OptimizingPlanner struct {
	maxNodes int
}

// Option configures the planner.
type Option func(*OptimizingPlanner)

// WithMaxNodes bounds the search node budget per planning attempt.
func WithMaxNodes(n int) Option {
	return func(p *OptimizingPlanner) {
		if n > 0 {
			p.maxNodes = n
		}
	}
}

// New creates an optimizing planner.
func New(opts ...Option) *OptimizingPlanner {
	p := &OptimizingPlanner{maxNodes: DefaultMaxNodes}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanToGoal searches for the lowest-cost action sequence whose cumulative
// effects satisfy the goal, starting from the determiner's current world
// state. It returns nil (and no error) when no sequence reaches the goal;
// a condition evaluation failure is an error.
func (p *OptimizingPlanner) PlanToGoal(ctx context.Context, det condition.Determiner, actions []goap.Action, goal goap.Goal) (*goap.Plan, error) {
	start, err := det.DetermineWorldState(ctx)
	if err != nil {
		return nil, fmt.Errorf("determine world state: %w", err)
	}
	return p.planFrom(ctx, det, start, actions, goal)
}

// PlansToGoals computes one plan per goal whose preconditions are reachable.
func (p *OptimizingPlanner) PlansToGoals(ctx context.Context, det condition.Determiner, system goap.System) ([]*goap.Plan, error) {
	start, err := det.DetermineWorldState(ctx)
	if err != nil {
		return nil, fmt.Errorf("determine world state: %w", err)
	}

	var plans []*goap.Plan
	for _, goal := range system.Goals {
		plan, err := p.planFrom(ctx, det, start, system.Actions, goal)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			plans = append(plans, plan)
		}
	}
	return plans, nil
}

// BestValuePlanToAnyGoal picks the plan with the highest net value (goal
// value minus plan cost) across all reachable goals. Ties keep the earliest
// goal in input order, so repeated calls with identical inputs return the
// same plan.
func (p *OptimizingPlanner) BestValuePlanToAnyGoal(ctx context.Context, det condition.Determiner, system goap.System) (*goap.Plan, error) {
	plans, err := p.PlansToGoals(ctx, det, system)
	if err != nil {
		return nil, err
	}

	var best *goap.Plan
	for _, plan := range plans {
		if best == nil || plan.NetValue() > best.NetValue() {
			best = plan
		}
	}
	return best, nil
}

// planFrom runs the pruned search from a concrete start state, resolving
// unknown conditions lazily.
//
// For each unknown condition in the goal's dependency set, the same search
// runs twice more with the condition forced true and forced false. If all
// three searches agree on the action sequence, the condition's actual value
// cannot change the plan and the expensive evaluation is skipped. Only a
// disagreement triggers DetermineCondition; the start state is then rebuilt
// with the concrete value and the search re-runs. Unknowns are visited
// cheapest cost-hint first (the single-unknown case degenerates to the
// obvious behavior; several simultaneous unknowns are resolved one at a
// time, each evaluated at most once).
func (p *OptimizingPlanner) planFrom(ctx context.Context, det condition.Determiner, start goap.WorldState, actions []goap.Action, goal goap.Goal) (*goap.Plan, error) {
	relevant := relevantConditions(actions, goal)
	pruned := pruneActions(actions, relevant)

	direct := search(start, pruned, goal, p.maxNodes)
	forced := 0

	for _, name := range p.orderUnknowns(det, start, relevant) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ifTrue := search(start.WithVariant(name, goap.True), pruned, goal, p.maxNodes)
		ifFalse := search(start.WithVariant(name, goap.False), pruned, goal, p.maxNodes)

		if sameSequence(direct, ifTrue) && sameSequence(direct, ifFalse) {
			// The condition's value cannot change the plan; leave it unknown.
			continue
		}

		value, err := det.DetermineCondition(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: condition %q: %v", condition.ErrEvaluationFailed, name, err)
		}
		if !value.Known() {
			return nil, fmt.Errorf("%w: condition %q", condition.ErrIndeterminate, name)
		}

		logging.Debug().
			Add(logging.Condition(name)).
			Add(logging.Goal(goal.Name)).
			Add(logging.Str("determined", value.String())).
			Msg("forced condition evaluation")

		forced++
		start = start.WithVariant(name, value)
		direct = search(start, pruned, goal, p.maxNodes)
	}

	// A plan may only exist once several unknowns are concrete at the same
	// time; the per-condition pass cannot see those, since each single
	// variant still dead-ends. Force the remaining relevant unknowns,
	// cheapest first, until a plan appears — but only while some joint
	// assignment can actually reach the goal. When every assignment
	// dead-ends the goal is unreachable regardless of the unknowns'
	// values, and no evaluation may be spent confirming that.
	for direct == nil {
		remaining := p.orderUnknowns(det, start, relevant)
		if len(remaining) == 0 {
			break
		}
		if !p.reachableUnderAssignment(start, remaining, pruned, goal) {
			break
		}
		name := remaining[0]

		value, err := det.DetermineCondition(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("%w: condition %q: %v", condition.ErrEvaluationFailed, name, err)
		}
		if !value.Known() {
			return nil, fmt.Errorf("%w: condition %q", condition.ErrIndeterminate, name)
		}

		logging.Debug().
			Add(logging.Condition(name)).
			Add(logging.Goal(goal.Name)).
			Add(logging.Str("determined", value.String())).
			Msg("forced condition evaluation")

		forced++
		start = start.WithVariant(name, value)
		direct = search(start, pruned, goal, p.maxNodes)
	}

	if direct == nil {
		return nil, nil
	}

	plan := goap.NewPlan(goal, direct, start)
	plan.ForcedEvaluations = forced
	return plan, nil
}

// reachableUnderAssignment reports whether any true/false assignment of the
// named unknown conditions lets the search reach the goal. Branching is
// exponential in the number of unknowns, which the relevance pruning keeps
// small.
func (p *OptimizingPlanner) reachableUnderAssignment(start goap.WorldState, names []string, actions []goap.Action, goal goap.Goal) bool {
	if len(names) == 0 {
		return search(start, actions, goal, p.maxNodes) != nil
	}
	rest := names[1:]
	return p.reachableUnderAssignment(start.WithVariant(names[0], goap.True), rest, actions, goal) ||
		p.reachableUnderAssignment(start.WithVariant(names[0], goap.False), rest, actions, goal)
}

// orderUnknowns returns the start state's unknown conditions that belong to
// the goal's dependency set, cheapest cost hint first, name order as the
// tie-break.
func (p *OptimizingPlanner) orderUnknowns(det condition.Determiner, start goap.WorldState, relevant map[string]bool) []string {
	var names []string
	for _, name := range start.UnknownConditions() {
		if relevant[name] {
			names = append(names, name)
		}
	}

	hinter, ok := det.(CostHinter)
	if !ok {
		return names // already name-sorted by UnknownConditions
	}
	sort.SliceStable(names, func(i, j int) bool {
		return hinter.CostHint(names[i]) < hinter.CostHint(names[j])
	})
	return names
}

// sameSequence compares two action sequences by name. Two nil sequences
// (both searches exhausted) agree.
func sameSequence(a, b []goap.Action) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
