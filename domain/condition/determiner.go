// Package condition provides the contracts for condition evaluation: the
// per-condition Evaluator supplied at registration time and the Determiner
// that snapshots the world for the planner.
package condition

import (
	"context"

	"github.com/felixgeelhaar/goap-go/domain/blackboard"
	"github.com/felixgeelhaar/goap-go/domain/goap"
)

// Evaluator supplies the behavior of a single named condition. Evaluate may
// legitimately return Unknown when the evaluation is expensive and has not
// been forced yet; a forced evaluation goes through Determiner instead.
type Evaluator interface {
	// Name returns the stable condition name.
	Name() string

	// CostHint estimates how expensive a forced evaluation is. The planner
	// forces cheaper conditions first when several unknowns could change
	// the plan.
	CostHint() float64

	// Evaluate determines the condition against the blackboard.
	Evaluate(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error)
}

// Forcer is an optional interface for evaluators whose full evaluation is
// expensive. Evaluate may return Unknown cheaply; Force performs the
// expensive evaluation and must come back concrete.
type Forcer interface {
	Force(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error)
}

// Determiner produces world-state snapshots for the planner.
type Determiner interface {
	// DetermineWorldState returns a snapshot where conditions may be
	// Unknown, meaning "expensive — evaluate only if necessary".
	DetermineWorldState(ctx context.Context) (goap.WorldState, error)

	// DetermineCondition forces a fresh, non-cached evaluation of exactly
	// one named condition. It must return True or False or an error, never
	// Unknown, and must never memoize an Unknown result.
	DetermineCondition(ctx context.Context, name string) (goap.ConditionDetermination, error)
}

// Func adapts plain functions into an Evaluator. Fn is the cheap evaluation
// and may return Unknown; ForceFn, when set, is the expensive on-demand
// evaluation used for forced calls. Without a ForceFn, forced calls fall
// back to Fn.
type Func struct {
	ConditionName string
	Hint          float64
	Fn            func(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error)
	ForceFn       func(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error)
}

// Name returns the condition name.
func (f Func) Name() string { return f.ConditionName }

// CostHint returns the evaluation cost hint.
func (f Func) CostHint() float64 { return f.Hint }

// Evaluate invokes the cheap evaluation function.
func (f Func) Evaluate(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error) {
	if f.Fn == nil {
		return goap.Unknown, ErrNoEvaluator
	}
	return f.Fn(ctx, bb)
}

// Force invokes the expensive evaluation function.
func (f Func) Force(ctx context.Context, bb *blackboard.Blackboard) (goap.ConditionDetermination, error) {
	if f.ForceFn != nil {
		return f.ForceFn(ctx, bb)
	}
	return f.Evaluate(ctx, bb)
}
